package tokenizer

import (
	"regexp"
	"strings"
)

// wordRegex matches runs of two or more Unicode word characters.
// Single-character tokens carry no topical weight and are dropped.
var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// whitespaceRegex matches runs of whitespace.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Tokenize converts a string into a slice of lowercase word tokens.
// The order of tokens follows the input and duplicates are kept.
func Tokenize(text string) []string {
	lowerText := strings.ToLower(text)

	matches := wordRegex.FindAllString(lowerText, -1)
	tokens := make([]string, 0, len(matches)) // Initialize as empty slice, not nil
	tokens = append(tokens, matches...)
	return tokens
}

// NormalizeWhitespace lowercases text and collapses every whitespace run into a single space.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(strings.ToLower(text), " "))
}

// Analyzer turns raw text into the terms used for vectorization.
type Analyzer struct {
	stopWords map[string]struct{}
}

// NewAnalyzer creates an analyzer that drops the given stop words.
// A nil or empty list keeps every token.
func NewAnalyzer(stopWords []string) *Analyzer {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Analyzer{stopWords: set}
}

// NewEnglishAnalyzer creates an analyzer using EnglishStopWords.
func NewEnglishAnalyzer() *Analyzer {
	return NewAnalyzer(EnglishStopWords)
}

// IsStopWord reports whether the token is removed by the analyzer.
func (a *Analyzer) IsStopWord(token string) bool {
	_, ok := a.stopWords[token]
	return ok
}

// Analyze tokenizes text and removes stop words.
func (a *Analyzer) Analyze(text string) []string {
	tokens := Tokenize(text)
	if len(a.stopWords) == 0 {
		return tokens
	}

	terms := tokens[:0]
	for _, token := range tokens {
		if !a.IsStopWord(token) {
			terms = append(terms, token)
		}
	}
	return terms
}
