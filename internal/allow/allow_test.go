package allow

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/kanacheck/internal/model"
)

func TestExpand(t *testing.T) {
	got := Expand([]string{"$num$センチ", "ハマり", ""})
	assert.Equal(t, []string{"二センチ", "三センチ", "八センチ", "ハマり"}, got)
}

func TestExpandNormalizes(t *testing.T) {
	// ヘ + combining voiced mark composes to ベ
	got := Expand([]string{"\u30d8\u3099ル"})
	assert.Equal(t, []string{"ベル"}, got)
}

func TestResolve(t *testing.T) {
	def := Defaults()
	require.NotEmpty(t, def)

	assert.Equal(t, def, Resolve(nil))
	assert.Equal(t, []string{"ライ千"}, Resolve([]string{"ライ千"}))
	assert.Empty(t, Resolve([]string{}))

	merged := Resolve([]string{"ライ千", Recommend})
	assert.Len(t, merged, len(def)+1)
	assert.Contains(t, merged, "ライ千")
	assert.Contains(t, merged, "$num$センチ")
	assert.NotContains(t, merged, Recommend)
}

func TestDefaultsCoverKnownWords(t *testing.T) {
	entries := NewMatcher(nil).Entries()
	for _, want := range []string{"二センチ", "三センチ", "八センチ", "二クロム酸", "ハマり"} {
		assert.Contains(t, entries, want)
	}
	for _, e := range entries {
		assert.NotContains(t, e, Placeholder)
	}
}

func TestRanges(t *testing.T) {
	m := NewMatcher([]string{"$num$センチ", "ab"})
	got := m.Ranges("x二センチと三センチab")
	assert.ElementsMatch(t, []model.Range{
		{Start: 1, End: 5},
		{Start: 6, End: 10},
		{Start: 10, End: 12},
	}, got)
}

func TestRangesNonOverlapping(t *testing.T) {
	m := NewMatcher([]string{"ああ"})
	got := m.Ranges("あああ")
	assert.Equal(t, []model.Range{{Start: 0, End: 2}}, got)
}

func TestRangesEmpty(t *testing.T) {
	assert.Empty(t, NewMatcher(nil).Ranges(""))
	assert.Empty(t, NewMatcher([]string{}).Ranges("二センチ"))
}

func TestSuppressedBounds(t *testing.T) {
	ranges := []model.Range{{Start: 3, End: 6}}
	for i, want := range map[int]bool{2: false, 3: true, 4: true, 6: true, 7: false} {
		assert.Equal(t, want, Suppressed(ranges, i), "index %d", i)
	}
	assert.False(t, Suppressed(nil, 0))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "allow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("allow:\n  - ライ千\n"), 0o644))

	list, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ライ千"}, list)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFileWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "allow.txt")
	require.NoError(t, os.WriteFile(path, []byte("ライ千\n"), 0o644))

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"ライ千"}, f.List())

	changed := make(chan []string, 1)
	f.OnChange(func(list []string) {
		select {
		case changed <- list:
		default:
		}
	})
	require.NoError(t, f.Watch())

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte("ライ千\n三ント\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case list := <-changed:
		assert.Equal(t, []string{"ライ千", "三ント"}, list)
	case <-time.After(5 * time.Second):
		t.Fatal("allow file was not reloaded")
	}
	assert.Equal(t, []string{"ライ千", "三ント"}, f.List())
}
