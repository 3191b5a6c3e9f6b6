// Package kanacheck finds Japanese characters that were likely typed in
// the wrong script: kanji that look like katakana (ライ千 → ライチ),
// hiragana inside katakana words (タぺストリー) and katakana inside
// hiragana words (あヘん).
//
// Every finding carries a single-rune fix. Known-good spellings such as
// numeral + unit (二センチ) are skipped through an allow list.
package kanacheck

import (
	"context"
	"encoding/json"
	"errors"
	"runtime"
	"sync"
	"unicode/utf8"

	"github.com/Alfex4936/kanacheck/internal/allow"
	"github.com/Alfex4936/kanacheck/internal/chunk"
	"github.com/Alfex4936/kanacheck/internal/model"
	"github.com/Alfex4936/kanacheck/internal/parse"
	"github.com/Alfex4936/kanacheck/internal/rules"
	"github.com/Alfex4936/kanacheck/internal/scan"
)

type (
	Finding = model.Finding
	Fix     = model.Fix
	Result  = model.Result
	Unit    = model.Unit
)

// Options configures a check.
type Options struct {
	// Allow lists exceptions; "$num$" stands for 二, 三 or 八.
	// nil uses the built-in list. A list containing "recommend" is added
	// to the built-in list, any other list replaces it.
	Allow []string `json:"allow,omitempty"`
	// StrictMode also flags へ between katakana (アへン).
	StrictMode bool `json:"strictMode,omitempty"`
}

// UnmarshalJSON rejects allow lists with non-string members.
func (o *Options) UnmarshalJSON(data []byte) error {
	var raw struct {
		Allow      json.RawMessage `json:"allow"`
		StrictMode bool            `json:"strictMode"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	list, err := parse.JSON(raw.Allow)
	if err != nil {
		return err
	}
	o.Allow, o.StrictMode = list, raw.StrictMode
	return nil
}

// Engine is a compiled Options. It holds no mutable state and may be
// shared between goroutines.
type Engine struct {
	matcher *allow.Matcher
	rules   []rules.Rule
	strict  bool
}

// NewEngine expands the allow list once for repeated checks.
func NewEngine(opts Options) *Engine {
	return &Engine{
		matcher: allow.NewMatcher(opts.Allow),
		rules:   rules.All(),
		strict:  opts.StrictMode,
	}
}

// Check scans one text unit. Findings are grouped by rule and then
// ordered by index; use SortFindings for a plain left-to-right order.
// Empty text yields no findings.
func (e *Engine) Check(text string) []Finding {
	if text == "" {
		return nil
	}
	return scan.Scan([]rune(text), e.matcher.Ranges(text), e.rules, e.strict)
}

// AllowEntries returns the expanded allow list the engine matches.
func (e *Engine) AllowEntries() []string { return e.matcher.Entries() }

// Check is the one-shot form of NewEngine(opts).Check(text).
func Check(text string, opts Options) []Finding {
	return NewEngine(opts).Check(text)
}

// CheckDocument splits text into lines, checks them in parallel
// (bounded by GOMAXPROCS) and merges the outcome. Finding offsets,
// lines, columns and fix ranges refer to the whole document.
//
// ctx only stops waiting for a free worker; a started line always
// finishes.
func (e *Engine) CheckDocument(ctx context.Context, text string) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("ctx is nil")
	}

	units := chunk.Lines(text)
	out := make([][]Finding, len(units))

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	var ctxErr error
	for i, u := range units {
		if u.Text == "" {
			continue
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			ctxErr = ctx.Err()
		}
		if ctxErr != nil {
			break
		}
		i, u := i, u
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			out[i] = e.Check(u.Text)
		}()
	}
	wg.Wait()
	if ctxErr != nil {
		return nil, ctxErr
	}

	res := &Result{
		Original:  text,
		CharCount: utf8.RuneCountInString(text),
		UnitCount: len(units),
	}
	var all []Finding
	for i, u := range units {
		fs := out[i]
		if len(fs) == 0 {
			continue
		}
		for j := range fs {
			place(&fs[j], u)
		}
		scan.SortByIndex(fs)
		res.Units = append(res.Units, Unit{
			Idx:      i,
			Offset:   u.Offset,
			Line:     u.Line,
			Input:    u.Text,
			Findings: fs,
		})
		all = append(all, fs...)
	}
	res.FindingCount = len(all)
	res.Corrected = scan.Apply(text, all)
	return res, nil
}

// CheckDocument is the one-shot form of NewEngine(opts).CheckDocument.
func CheckDocument(ctx context.Context, text string, opts Options) (*Result, error) {
	return NewEngine(opts).CheckDocument(ctx, text)
}

// place moves a unit-local finding to document coordinates.
func place(f *Finding, u chunk.Unit) {
	f.Offset = u.Offset + f.Index
	f.Line = u.Line
	f.Column = f.Index + 1
	f.Fix.Range = [2]int{f.Offset, f.Offset + f.Length}
}

// SortFindings orders findings by offset, keeping rule order for ties.
func SortFindings(fs []Finding) { scan.SortByIndex(fs) }

// ApplyFixes returns text with every finding's fix applied.
func ApplyFixes(text string, fs []Finding) string { return scan.Apply(text, fs) }

// DefaultAllow returns the built-in allow templates.
func DefaultAllow() []string { return allow.Defaults() }
