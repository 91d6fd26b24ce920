// Package skills finds known skill terms inside free text.
package skills

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gcbaptista/go-resume-matcher/internal/vocabulary"
)

// MatchMode selects how a skill term is located in text.
type MatchMode string

const (
	// MatchModeSubstring reports a term whenever it occurs anywhere in the lowercased text,
	// so "java" is also found inside "javascript".
	MatchModeSubstring MatchMode = "substring"
	// MatchModeWholeWord requires the term to be bounded by non-word characters.
	MatchModeWholeWord MatchMode = "whole_word"
)

// ParseMatchMode converts a configuration value into a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchModeSubstring:
		return MatchModeSubstring, nil
	case MatchModeWholeWord:
		return MatchModeWholeWord, nil
	default:
		return "", fmt.Errorf("unknown skill match mode %q (must be %q or %q)", s, MatchModeSubstring, MatchModeWholeWord)
	}
}

// Extractor scans text against a vocabulary. It holds no mutable state and is
// safe for concurrent use.
type Extractor struct {
	vocab    *vocabulary.Vocabulary
	terms    []string
	mode     MatchMode
	patterns []*regexp.Regexp // only populated for MatchModeWholeWord
}

// NewExtractor creates an extractor for the vocabulary. An empty mode means substring matching.
func NewExtractor(vocab *vocabulary.Vocabulary, mode MatchMode) *Extractor {
	if mode == "" {
		mode = MatchModeSubstring
	}

	e := &Extractor{
		vocab: vocab,
		terms: vocab.Terms(),
		mode:  mode,
	}

	if mode == MatchModeWholeWord {
		e.patterns = make([]*regexp.Regexp, len(e.terms))
		for i, term := range e.terms {
			e.patterns[i] = wholeWordPattern(term)
		}
	}
	return e
}

// wholeWordPattern builds a regexp that matches term between word boundaries.
// Spaces inside a multi-word term match any whitespace run.
func wholeWordPattern(term string) *regexp.Regexp {
	words := strings.Fields(term)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	const nonWord = `[^\p{L}\p{N}_]`
	return regexp.MustCompile(`(?:^|` + nonWord + `)` + strings.Join(words, `\s+`) + `(?:$|` + nonWord + `)`)
}

// Mode returns the configured match mode.
func (e *Extractor) Mode() MatchMode {
	return e.mode
}

// Vocabulary returns the vocabulary the extractor scans against.
func (e *Extractor) Vocabulary() *vocabulary.Vocabulary {
	return e.vocab
}

// Extract returns the vocabulary terms present in text, in vocabulary order.
// It never returns nil.
func (e *Extractor) Extract(text string) []string {
	found := make([]string, 0)
	if text == "" {
		return found
	}

	lowerText := strings.ToLower(text)
	for i, term := range e.terms {
		var ok bool
		switch e.mode {
		case MatchModeWholeWord:
			ok = e.patterns[i].MatchString(lowerText)
		default:
			ok = strings.Contains(lowerText, term)
		}
		if ok {
			found = append(found, term)
		}
	}
	return found
}

// Intersect returns the elements of a that are also in b, keeping a's order.
func Intersect(a, b []string) []string {
	inB := toSet(b)
	out := make([]string, 0)
	for _, s := range a {
		if _, ok := inB[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Difference returns the elements of a that are not in b, keeping a's order.
func Difference(a, b []string) []string {
	inB := toSet(b)
	out := make([]string, 0)
	for _, s := range a {
		if _, ok := inB[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}
