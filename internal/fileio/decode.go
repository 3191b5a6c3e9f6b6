// Package fileio reads Japanese text files in legacy encodings.
package fileio

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// UTF8 is the charset name reported for UTF-8 input.
const UTF8 = "UTF-8"

var bom = []byte{0xEF, 0xBB, 0xBF}

var encodings = map[string]encoding.Encoding{
	"shift_jis":   japanese.ShiftJIS,
	"euc-jp":      japanese.EUCJP,
	"iso-2022-jp": japanese.ISO2022JP,
}

// Decode converts data to UTF-8 and reports the charset it was read as.
// Valid UTF-8 (with or without BOM) is taken as is. Anything else is run
// through the detector, then Shift_JIS and EUC-JP in turn; the first
// charset that decodes cleanly wins.
func Decode(data []byte) (string, string, error) {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, bom)), UTF8, nil
	}

	peek := data
	if len(peek) > 2048 {
		peek = peek[:2048]
	}
	tried := []string{}
	if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
		tried = append(tried, strings.ToLower(det.Charset))
	}
	tried = append(tried, "shift_jis", "euc-jp")

	for _, cs := range tried {
		enc, ok := encodings[cs]
		if !ok {
			continue
		}
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
			continue
		}
		return string(out), canonical(cs), nil
	}
	return "", "", fmt.Errorf("unknown text encoding")
}

// Encode converts text back to charset. UTF8 returns text unchanged.
func Encode(text, charset string) ([]byte, error) {
	if charset == UTF8 || charset == "" {
		return []byte(text), nil
	}
	enc, ok := encodings[strings.ToLower(charset)]
	if !ok {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", charset, err)
	}
	return out, nil
}

func canonical(cs string) string {
	switch cs {
	case "shift_jis":
		return "Shift_JIS"
	case "euc-jp":
		return "EUC-JP"
	case "iso-2022-jp":
		return "ISO-2022-JP"
	}
	return cs
}
