package chunk

import "unicode/utf8"

// Unit is one line of a document. Offset is in runes.
type Unit struct {
	Text   string
	Offset int
	Line   int // 1-based
}

// Lines slices s at '\n' (a trailing '\r' stays out of Text) without
// copying. Every line is returned, empty ones included, so Line always
// matches the source.
func Lines(s string) []Unit {
	// Capacity hint: assume ~40-byte lines.
	res := make([]Unit, 0, len(s)/40+1)

	start, offset, line := 0, 0, 1
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' {
			continue
		}
		res = append(res, unit(s[start:i], offset, line))
		offset += utf8.RuneCountInString(s[start:i]) + 1
		start, line = i+1, line+1
	}
	// trailing slice (never empty because start ≤ len(s))
	res = append(res, unit(s[start:], offset, line))
	return res
}

func unit(text string, offset, line int) Unit {
	if n := len(text); n > 0 && text[n-1] == '\r' {
		text = text[:n-1]
	}
	return Unit{Text: text, Offset: offset, Line: line}
}
