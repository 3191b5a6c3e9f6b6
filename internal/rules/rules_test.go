package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleByKind(t *testing.T, k Kind) Rule {
	t.Helper()
	for _, r := range All() {
		if r.Kind == k {
			return r
		}
	}
	t.Fatalf("no rule of kind %d", k)
	return Rule{}
}

func indexes(r Rule, text string, strict bool) []int {
	var out []int
	for _, s := range r.Spans([]rune(text), strict) {
		out = append(out, s.Index)
	}
	return out
}

func TestKanjiInKatakana(t *testing.T) {
	rule := ruleByKind(t, KanjiInKatakana)
	tests := []struct {
		text string
		want []int
	}{
		{"二クロム線", []int{0}},
		{"タ二タ", []int{1}},
		{"タニ夕", []int{2}},
		{"工タニティ", []int{0}},
		{"力タストロフィ", []int{0}},
		{"ライ千", []int{2}},
		{"卜リニティ", []int{0}},
		{"三ント", []int{0}},
		{"八ーモニー", []int{0}},
		{"コー匕ー", []int{2}},
		{"口スト", []int{0}},
		{"二酸化マンガン", nil},
		{"二つに一つ", nil},
		{"入力チェック", nil},
		{"簡単な入力チェック", nil},
		{"二", nil},
		{"", nil},
		// katakana on one side only, in the middle of the text
		{"あ二ク", nil},
		{"ク二あ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, indexes(rule, tt.text, false))
		})
	}
}

func TestHiraganaInKatakana(t *testing.T) {
	rule := ruleByKind(t, HiraganaInKatakana)
	tests := []struct {
		text   string
		strict bool
		want   []int
	}{
		{"タぺストリー", false, []int{1}},
		{"スべスベ", false, []int{1}},
		{"アりエール", false, []int{1}},
		{"アへン", false, nil},
		{"アへン", true, []int{1}},
		{"フランスへ行く", true, nil},
		{"データベースへアクセス", false, nil},
		{"行ったりキタリ", false, nil},
		// ー is not a katakana letter for this rule
		{"ーべー", false, nil},
		{"ハマり", false, []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, indexes(rule, tt.text, tt.strict))
		})
	}
}

func TestKatakanaInHiragana(t *testing.T) {
	rule := ruleByKind(t, KatakanaInHiragana)
	tests := []struct {
		text string
		want []int
	}{
		{"あヘん", []int{1}},
		{"とらペじうむ", []int{2}},
		{"すベすべ", []int{1}},
		{"あリえーる", []int{1}},
		{"このリージョン", nil},
		{"文字列のリスト", nil},
		{"ペじう", nil}, // nothing before the candidate
		{"じうペ", nil}, // nothing after the candidate
		{"。ペじう", []int{1}},
		{"じうペ。", []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, indexes(rule, tt.text, false))
		})
	}
}

func TestCorrections(t *testing.T) {
	k, ok := KanjiToKatakana('二')
	require.True(t, ok)
	assert.Equal(t, 'ニ', k)

	_, ok = KanjiToKatakana('一')
	assert.False(t, ok)

	for _, pair := range [][2]rune{{'へ', 'ヘ'}, {'べ', 'ベ'}, {'ぺ', 'ペ'}, {'り', 'リ'}} {
		got, ok := HiraganaToKatakana(pair[0])
		require.True(t, ok)
		assert.Equal(t, pair[1], got)

		back, ok := KatakanaToHiragana(pair[1])
		require.True(t, ok)
		assert.Equal(t, pair[0], back)
	}

	// ・ ー ヽ and the voicing marks are not letters; no shift applies
	for _, r := range []rune{0x30FB, 0x30FC, 0x30FD, 0x30F7} {
		_, ok = KatakanaToHiragana(r)
		assert.False(t, ok, "%U", r)
	}
	for _, r := range []rune{0x3099, 0x309B, 0x309C, 0x309D, 0x309F} {
		_, ok = HiraganaToKatakana(r)
		assert.False(t, ok, "%U", r)
	}

	// ends of the paired ranges
	k, ok = HiraganaToKatakana('ゖ')
	require.True(t, ok)
	assert.Equal(t, 'ヶ', k)
	h, ok := KatakanaToHiragana('ァ')
	require.True(t, ok)
	assert.Equal(t, 'ぁ', h)
}

// Correcting a finding must take the rune out of the rule's candidates.
func TestCorrectionIsNotACandidate(t *testing.T) {
	sets := map[Kind]string{
		KanjiInKatakana:    kanjiCandidates,
		HiraganaInKatakana: hiraganaCandidates + hiraganaStrictOnly,
		KatakanaInHiragana: katakanaCandidates,
	}
	for _, rule := range All() {
		for _, c := range sets[rule.Kind] {
			fixed, ok := rule.Correct(c)
			require.True(t, ok, "%s: %q", rule.ID, c)
			assert.False(t, in(sets[rule.Kind], fixed), "%s: %q -> %q", rule.ID, c, fixed)

			again, _ := rule.Correct(c)
			assert.Equal(t, fixed, again)
		}
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Hiragana, Classify('あ'))
	assert.Equal(t, Katakana, Classify('ア'))
	assert.Equal(t, Katakana, Classify('ー'))
	assert.Equal(t, Kanji, Classify('漢'))
	assert.Equal(t, Other, Classify('a'))
	assert.Equal(t, "katakana", Katakana.String())
}

func TestMessage(t *testing.T) {
	rule := ruleByKind(t, KanjiInKatakana)
	assert.Equal(t, "漢字の「二」はカタカナの「ニ」の誤りの可能性があります", rule.Message("二", "ニ"))
}
