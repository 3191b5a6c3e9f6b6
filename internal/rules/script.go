package rules

// Script is the writing system a rune belongs to.
type Script int

const (
	Other Script = iota
	Hiragana
	Katakana
	Kanji
)

func (s Script) String() string {
	switch s {
	case Hiragana:
		return "hiragana"
	case Katakana:
		return "katakana"
	case Kanji:
		return "kanji"
	default:
		return "other"
	}
}

// Classify reports the script of r using Unicode block ranges.
func Classify(r rune) Script {
	switch {
	case isHiragana(r):
		return Hiragana
	case isKatakana(r):
		return Katakana
	case r >= 0x4E00 && r <= 0x9FFF, r >= 0x3400 && r <= 0x4DBF:
		return Kanji
	default:
		return Other
	}
}

// ァ..ヿ, prolonged sound mark and middle dot included.
func isKatakana(r rune) bool { return r >= 0x30A1 && r <= 0x30FF }

// Katakana without the prolonged sound mark ー.
func isKatakanaLetter(r rune) bool { return isKatakana(r) && r != 0x30FC }

// ぁ..ゟ
func isHiragana(r rune) bool { return r >= 0x3041 && r <= 0x309F }

// at reports text[i] and whether i is inside text.
func at(text []rune, i int) (rune, bool) {
	if i < 0 || i >= len(text) {
		return 0, false
	}
	return text[i], true
}

// all reports whether n runes starting at i exist and satisfy pred.
func all(text []rune, i, n int, pred func(rune) bool) bool {
	if i < 0 || i+n > len(text) {
		return false
	}
	for _, r := range text[i : i+n] {
		if !pred(r) {
			return false
		}
	}
	return true
}

// is reports whether text[i] exists and satisfies pred.
func is(text []rune, i int, pred func(rune) bool) bool {
	r, ok := at(text, i)
	return ok && pred(r)
}

// isNot reports whether text[i] exists and does not satisfy pred.
func isNot(text []rune, i int, pred func(rune) bool) bool {
	r, ok := at(text, i)
	return ok && !pred(r)
}
