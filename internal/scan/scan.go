// Package scan turns rule candidates into findings with fixes.
package scan

import (
	"sort"

	"github.com/Alfex4936/kanacheck/internal/allow"
	"github.com/Alfex4936/kanacheck/internal/model"
	"github.com/Alfex4936/kanacheck/internal/rules"
)

// Scan runs every rule over text. A candidate is dropped when its
// index is suppressed or when the rule has no correction for it.
// Findings come out grouped by rule, each group left to right.
func Scan(text []rune, ranges []model.Range, rs []rules.Rule, strict bool) []model.Finding {
	var out []model.Finding
	for _, rule := range rs {
		for _, span := range rule.Spans(text, strict) {
			if allow.Suppressed(ranges, span.Index) {
				continue
			}
			fixed, ok := rule.Correct(text[span.Index])
			if !ok {
				continue
			}
			out = append(out, newFinding(rule, span, string(fixed)))
		}
	}
	return out
}

func newFinding(rule rules.Rule, span model.Span, corrected string) model.Finding {
	return model.Finding{
		Rule:      rule.ID,
		Index:     span.Index,
		Length:    1,
		Original:  span.Text,
		Corrected: corrected,
		Message:   rule.Message(span.Text, corrected),
		Fix: model.Fix{
			Range: [2]int{span.Index, span.Index + 1},
			Text:  corrected,
		},
		Offset: span.Index,
	}
}

// SortByIndex orders findings left to right, keeping rule order for ties.
func SortByIndex(fs []model.Finding) {
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].Offset < fs[j].Offset })
}

// Apply replaces each fix range with its text.
// Applies right-to-left so earlier rune offsets stay valid; a fix that
// overlaps one already applied is skipped.
func Apply(text string, fs []model.Finding) string {
	if len(fs) == 0 {
		return text
	}
	sorted := make([]model.Finding, len(fs))
	copy(sorted, fs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Fix.Range[0] > sorted[j].Fix.Range[0] })

	runes := []rune(text)
	limit := len(runes)
	for _, f := range sorted {
		start, end := f.Fix.Range[0], f.Fix.Range[1]
		if start < 0 || end > limit || start > end {
			continue
		}
		repl := []rune(f.Fix.Text)
		runes = append(runes[:start], append(repl, runes[end:]...)...)
		limit = start
	}
	return string(runes)
}
