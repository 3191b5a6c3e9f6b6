package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	// keep the user's config out of the tests
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLIText(t *testing.T) {
	out, err := run(t, "二クロム線\nコー匕ー\n")
	assert.ErrorIs(t, err, errFindings)
	assert.Equal(t,
		"<stdin>:1:1: 漢字の「二」はカタカナの「ニ」の誤りの可能性があります (kanji-in-katakana)\n"+
			"<stdin>:2:3: 漢字の「匕」はカタカナの「ヒ」の誤りの可能性があります (kanji-in-katakana)\n",
		out)
}

func TestCLIClean(t *testing.T) {
	out, err := run(t, "二センチメートル")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCLIFix(t *testing.T) {
	out, err := run(t, "アへン", "--fix", "--strict")
	require.NoError(t, err)
	assert.Equal(t, "アヘン", out)
}

func TestCLIJSON(t *testing.T) {
	out, err := run(t, "あヘん", "--format", "json")
	assert.ErrorIs(t, err, errFindings)

	var res struct {
		Name         string `json:"name"`
		FindingCount int    `json:"findingCount"`
		Corrected    string `json:"corrected"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "<stdin>", res.Name)
	assert.Equal(t, 1, res.FindingCount)
	assert.Equal(t, "あへん", res.Corrected)
}

func TestCLIAllow(t *testing.T) {
	_, err := run(t, "ライ千", "--allow", "ライ千")
	require.NoError(t, err)

	// the caller list replaced the defaults
	_, err = run(t, "二センチ", "--allow", "ライ千")
	assert.ErrorIs(t, err, errFindings)

	_, err = run(t, "二センチ", "--allow", "recommend", "--allow", "ライ千")
	require.NoError(t, err)
}

func TestCLIAllowFileAndWrite(t *testing.T) {
	dir := t.TempDir()
	allowPath := filepath.Join(dir, "allow.yaml")
	require.NoError(t, os.WriteFile(allowPath, []byte("allow:\n  - recommend\n  - ライ千\n"), 0o644))
	doc := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(doc, []byte("ライ千\n三ント\n"), 0o600))

	_, err := run(t, "", "--allow-file", allowPath, "--write", doc)
	require.NoError(t, err)

	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, "ライ千\nミント\n", string(data))
}

func TestCLIWriteKeepsShiftJIS(t *testing.T) {
	line := "三ントの葉をたくさん使いました。\n"
	raw, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(strings.Repeat(line, 4)))
	require.NoError(t, err)
	doc := filepath.Join(t.TempDir(), "sjis.txt")
	require.NoError(t, os.WriteFile(doc, raw, 0o600))

	_, err = run(t, "", "--write", doc)
	require.NoError(t, err)

	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	want, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(strings.Repeat("ミントの葉をたくさん使いました。\n", 4)))
	require.NoError(t, err)
	assert.Equal(t, want, data)
}

func TestCLIConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[check]\nstrict-mode = true\nallow = [\"recommend\"]\n"), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("アへン"))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "--fix"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "アヘン", out.String())
}

func TestCLIAllowlist(t *testing.T) {
	out, err := run(t, "", "allowlist", "--allow", "$num$ボルト")
	require.NoError(t, err)
	assert.Equal(t, "二ボルト\n三ボルト\n八ボルト\n", out)
}

func TestCLIBadFormat(t *testing.T) {
	_, err := run(t, "x", "--format", "xml")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errFindings)
}
