// Package vocabulary holds the fixed, read-only list of skill terms that the
// skill extractor recognizes.
package vocabulary

import (
	"strings"

	"github.com/gcbaptista/go-resume-matcher/internal/errors"
	"github.com/gcbaptista/go-resume-matcher/internal/tokenizer"
)

// DefaultSkills is the built-in skill list, in reporting order.
var DefaultSkills = []string{
	"python", "javascript", "java", "react", "html", "css", "sql", "aws",
	"docker", "machine learning", "communication", "leadership", "teamwork",
	"problem solving",
}

// Vocabulary is an ordered set of lowercase skill terms.
// It is never mutated after New returns, so one value can be shared freely.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// New builds a vocabulary from the given terms. Terms are trimmed, lowercased
// and internal whitespace is collapsed; duplicates keep their first position.
func New(terms ...string) (*Vocabulary, error) {
	if len(terms) == 0 {
		return nil, errors.NewVocabularyError(0, "", "vocabulary must contain at least one term")
	}

	v := &Vocabulary{
		terms: make([]string, 0, len(terms)),
		index: make(map[string]int, len(terms)),
	}
	for i, raw := range terms {
		term := tokenizer.NormalizeWhitespace(raw)
		if term == "" {
			return nil, errors.NewVocabularyError(i, raw, "term is blank")
		}
		if _, exists := v.index[term]; exists {
			continue
		}
		v.index[term] = len(v.terms)
		v.terms = append(v.terms, term)
	}
	return v, nil
}

// Default returns a vocabulary holding DefaultSkills.
func Default() *Vocabulary {
	v, err := New(DefaultSkills...)
	if err != nil {
		// DefaultSkills is a compile-time constant list
		panic(err)
	}
	return v
}

// Terms returns a copy of the terms in order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Contains reports whether term (case-insensitive) is part of the vocabulary.
func (v *Vocabulary) Contains(term string) bool {
	return v.Index(term) >= 0
}

// Index returns the position of term, or -1.
func (v *Vocabulary) Index(term string) int {
	if i, ok := v.index[tokenizer.NormalizeWhitespace(term)]; ok {
		return i
	}
	return -1
}

// String joins the terms with ", ".
func (v *Vocabulary) String() string {
	return strings.Join(v.terms, ", ")
}
