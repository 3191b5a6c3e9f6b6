// Package allow builds suppression ranges from allow-list templates.
package allow

import (
	_ "embed"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/Alfex4936/kanacheck/internal/model"
	"github.com/Alfex4936/kanacheck/internal/parse"
)

const (
	// Placeholder stands for one of Numerals in a template.
	Placeholder = "$num$"
	// Recommend in a caller's list merges it with the defaults.
	Recommend = "recommend"
)

// Numerals are the kanji numerals that read like katakana in units.
var Numerals = []string{"二", "三", "八"}

//go:embed dictionary.yaml
var dictionary []byte

var defaults = mustDecode(dictionary)

func mustDecode(data []byte) []string {
	list, err := parse.Decode(data, "dictionary.yaml")
	if err != nil {
		panic("allow: built-in dictionary: " + err.Error())
	}
	return list
}

// Defaults returns a copy of the built-in templates.
func Defaults() []string {
	out := make([]string, len(defaults))
	copy(out, defaults)
	return out
}

// Resolve picks the templates for a caller's allow option.
// nil means the defaults. A list holding Recommend is added to the
// defaults; any other list replaces them.
func Resolve(list []string) []string {
	if list == nil {
		return Defaults()
	}
	var out []string
	extra := make([]string, 0, len(list))
	for _, s := range list {
		if s == Recommend {
			out = Defaults()
			continue
		}
		extra = append(extra, s)
	}
	if out == nil {
		return extra
	}
	return append(out, extra...)
}

// Expand replaces the placeholder with every numeral. Templates are
// NFC-normalised; empty ones are dropped.
func Expand(templates []string) []string {
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		t = norm.NFC.String(t)
		if t == "" {
			continue
		}
		if !strings.Contains(t, Placeholder) {
			out = append(out, t)
			continue
		}
		for _, n := range Numerals {
			out = append(out, strings.ReplaceAll(t, Placeholder, n))
		}
	}
	return out
}

// Matcher finds expanded allow-list entries in text.
// It is immutable and safe for concurrent use.
type Matcher struct {
	entries []string
}

// NewMatcher resolves and expands list (see Resolve).
func NewMatcher(list []string) *Matcher {
	return &Matcher{entries: Expand(Resolve(list))}
}

// Entries returns the expanded entries.
func (m *Matcher) Entries() []string {
	out := make([]string, len(m.entries))
	copy(out, m.entries)
	return out
}

// Ranges returns one range per non-overlapping occurrence of every
// entry in text. Offsets are in runes.
func (m *Matcher) Ranges(text string) []model.Range {
	var out []model.Range
	for _, e := range m.entries {
		n := utf8.RuneCountInString(e)
		pos, runePos := 0, 0
		for {
			j := strings.Index(text[pos:], e)
			if j < 0 {
				break
			}
			runePos += utf8.RuneCountInString(text[pos : pos+j])
			out = append(out, model.Range{Start: runePos, End: runePos + n})
			pos += j + len(e)
			runePos += n
		}
	}
	return out
}

// Suppressed reports whether index lies in any range, bounds included.
func Suppressed(ranges []model.Range, index int) bool {
	for _, r := range ranges {
		if r.Start <= index && index <= r.End {
			return true
		}
	}
	return false
}
