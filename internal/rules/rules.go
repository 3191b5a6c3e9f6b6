// Package rules holds the three confusable-character rules and the
// script tables they are built on.
//
// Each rule inspects a fixed window of neighbours around a candidate
// rune instead of using look-around patterns.
package rules

import (
	"fmt"
	"strings"

	"github.com/Alfex4936/kanacheck/internal/model"
)

// Kind tags a rule variant.
type Kind int

const (
	KanjiInKatakana Kind = iota
	HiraganaInKatakana
	KatakanaInHiragana
)

// Rule is one confusion direction expressed as data.
type Rule struct {
	ID   string
	Kind Kind

	// Match reports whether text[i] is a candidate in a qualifying context.
	Match func(text []rune, i int, strict bool) bool
	// Correct returns the replacement for a matched rune.
	Correct func(r rune) (rune, bool)

	message string // fmt template: original, corrected
}

// Message renders the rule's message for one finding.
func (r Rule) Message(original, corrected string) string {
	return fmt.Sprintf(r.message, original, corrected)
}

// Spans returns every matching rune of text, left to right.
func (r Rule) Spans(text []rune, strict bool) []model.Span {
	var out []model.Span
	for i, c := range text {
		if r.Match(text, i, strict) {
			out = append(out, model.Span{Text: string(c), Index: i})
		}
	}
	return out
}

const (
	kanjiCandidates        = "工力夕千卜二八匕三口"
	hiraganaCandidates     = "べぺり"
	hiraganaStrictOnly     = "へ"
	katakanaCandidates     = "ヘベペリ"
	hiraganaLeadCandidates = "べぺ"
)

func in(set string, r rune) bool { return strings.ContainsRune(set, r) }

// All returns the rules in their fixed reporting order.
func All() []Rule {
	return []Rule{
		{
			ID:      "kanji-in-katakana",
			Kind:    KanjiInKatakana,
			Match:   matchKanjiInKatakana,
			Correct: KanjiToKatakana,
			message: "漢字の「%s」はカタカナの「%s」の誤りの可能性があります",
		},
		{
			ID:      "hiragana-in-katakana",
			Kind:    HiraganaInKatakana,
			Match:   matchHiraganaInKatakana,
			Correct: HiraganaToKatakana,
			message: "ひらがなの「%s」はカタカナの「%s」の誤りの可能性があります",
		},
		{
			ID:      "katakana-in-hiragana",
			Kind:    KatakanaInHiragana,
			Match:   matchKatakanaInHiragana,
			Correct: KatakanaToHiragana,
			message: "カタカナの「%s」はひらがなの「%s」の誤りの可能性があります",
		},
	}
}

// A kanji is suspect at the start of the text when katakana follows,
// at the end when katakana precedes, and inside when katakana is on
// both sides.
func matchKanjiInKatakana(text []rune, i int, _ bool) bool {
	if !in(kanjiCandidates, text[i]) {
		return false
	}
	last := len(text) - 1
	switch {
	case i == 0 && is(text, 1, isKatakana):
		return true
	case is(text, i-1, isKatakana) && is(text, i+1, isKatakana):
		return true
	case i == last && is(text, i-1, isKatakana):
		return true
	}
	return false
}

// Hiragana inside katakana. A run of two katakana letters on one side
// is enough; り also counts with one letter on each side. へ is only
// checked in strict mode since it is usually the particle.
func matchHiraganaInKatakana(text []rune, i int, strict bool) bool {
	r := text[i]
	if strict && in(hiraganaStrictOnly, r) {
		return is(text, i-1, isKatakanaLetter) && is(text, i+1, isKatakanaLetter)
	}
	if !in(hiraganaCandidates, r) {
		return false
	}
	switch {
	case in(hiraganaLeadCandidates, r) && all(text, i+1, 2, isKatakanaLetter):
		return true
	case all(text, i-2, 2, isKatakanaLetter):
		return true
	case r == 'り' && is(text, i-1, isKatakanaLetter) && is(text, i+1, isKatakanaLetter):
		return true
	}
	return false
}

// Katakana inside hiragana: two hiragana on one side and a non-katakana
// rune on the other, or hiragana on both sides.
func matchKatakanaInHiragana(text []rune, i int, _ bool) bool {
	if !in(katakanaCandidates, text[i]) {
		return false
	}
	switch {
	case isNot(text, i-1, isKatakana) && all(text, i+1, 2, isHiragana):
		return true
	case all(text, i-2, 2, isHiragana) && isNot(text, i+1, isKatakana):
		return true
	case is(text, i-1, isHiragana) && is(text, i+1, isHiragana):
		return true
	}
	return false
}
