package rules

// KanaOffset is the distance between a hiragana and its katakana.
const KanaOffset = 0x60

// kanjiToKatakana maps kanji that look like katakana. There is no
// arithmetic relation, so this is a plain lookup.
var kanjiToKatakana = map[rune]rune{
	'工': 'エ',
	'力': 'カ',
	'夕': 'タ',
	'千': 'チ',
	'卜': 'ト',
	'二': 'ニ',
	'八': 'ハ',
	'匕': 'ヒ',
	'三': 'ミ',
	'口': 'ロ',
}

// KanjiToKatakana looks r up in the kanji table.
func KanjiToKatakana(r rune) (rune, bool) {
	k, ok := kanjiToKatakana[r]
	return k, ok
}

// Kana letters that have a counterpart at KanaOffset: ぁ..ゖ and ァ..ヶ.
// Marks and ー (ゟ゛゜ / ・ーヽヾ) have no letter on the other side.
func isHiraganaPair(r rune) bool { return r >= 0x3041 && r <= 0x3096 }
func isKatakanaPair(r rune) bool { return r >= 0x30A1 && r <= 0x30F6 }

// HiraganaToKatakana shifts r into the katakana block.
func HiraganaToKatakana(r rune) (rune, bool) {
	if !isHiraganaPair(r) {
		return 0, false
	}
	return r + KanaOffset, true
}

// KatakanaToHiragana shifts r into the hiragana block.
func KatakanaToHiragana(r rune) (rune, bool) {
	if !isKatakanaPair(r) {
		return 0, false
	}
	return r - KanaOffset, true
}
