package model

// Span is one candidate rune found by a rule.
type Span struct {
	Text  string // the matched rune
	Index int    // rune offset
}

// Range is where an allow-list entry occurs in a text.
// End is Start plus the entry length; both bounds suppress.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Fix replaces the runes in [Range[0], Range[1]) with Text.
type Fix struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

// Finding is one likely mis-scripted character.
type Finding struct {
	Rule      string `json:"rule"`
	Index     int    `json:"index"`     // rune offset within the scanned unit
	Length    int    `json:"length"`    // always 1
	Original  string `json:"original"`  // 「二」
	Corrected string `json:"corrected"` // 「ニ」
	Message   string `json:"message"`
	Fix       Fix    `json:"fix"`

	// Document position, set by CheckDocument.
	Offset int `json:"offset"`           // rune offset in the whole document
	Line   int `json:"line,omitempty"`   // 1-based
	Column int `json:"column,omitempty"` // 1-based, in runes
}

// Unit is one line of a checked document.
type Unit struct {
	Idx      int       `json:"idx"`
	Offset   int       `json:"offset"` // rune offset of the unit start
	Line     int       `json:"line"`
	Input    string    `json:"input"`
	Findings []Finding `json:"findings"`
}

// Result is JSON-serialisable as-is.
type Result struct {
	Original     string `json:"original"`     // input text
	Corrected    string `json:"corrected"`    // every fix applied
	CharCount    int    `json:"charCount"`    // UTF-8 rune length
	UnitCount    int    `json:"unitCount"`    // lines scanned
	FindingCount int    `json:"findingCount"` // total findings
	Units        []Unit `json:"units"`        // only units with findings
}
