package similarity

import (
	"math"
	"sort"

	"github.com/gcbaptista/go-resume-matcher/internal/errors"
	"github.com/gcbaptista/go-resume-matcher/internal/tokenizer"
)

// Vector is a dense, L2-normalized TF-IDF vector indexed by vocabulary position.
type Vector []float64

// Model is a TF-IDF fit over a small set of documents.
type Model struct {
	Vocabulary []string       // Terms sorted alphabetically
	TermIndex  map[string]int // Term -> position in Vocabulary
	IDF        []float64      // Smoothed inverse document frequency per term
	Vectors    []Vector       // One vector per input document, in input order
}

// Vectorizer builds TF-IDF vectors from raw documents.
type Vectorizer struct {
	analyzer *tokenizer.Analyzer
}

// NewVectorizer creates a new vectorizer using the given analyzer
func NewVectorizer(analyzer *tokenizer.Analyzer) *Vectorizer {
	return &Vectorizer{analyzer: analyzer}
}

// Fit analyzes docs, builds the joint vocabulary and returns one vector per document.
// It fails with ErrEmptyVocabulary when no document yields a single term.
func (v *Vectorizer) Fit(docs ...string) (*Model, error) {
	termCounts := make([]map[string]int, len(docs))
	docFreq := make(map[string]int)

	for i, doc := range docs {
		counts := make(map[string]int)
		for _, term := range v.analyzer.Analyze(doc) {
			counts[term]++
		}
		for term := range counts {
			docFreq[term]++
		}
		termCounts[i] = counts
	}

	if len(docFreq) == 0 {
		return nil, errors.NewComputationError("vectorize", errors.ErrEmptyVocabulary)
	}

	vocab := make([]string, 0, len(docFreq))
	for term := range docFreq {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	model := &Model{
		Vocabulary: vocab,
		TermIndex:  make(map[string]int, len(vocab)),
		IDF:        make([]float64, len(vocab)),
		Vectors:    make([]Vector, len(docs)),
	}

	n := float64(len(docs))
	for i, term := range vocab {
		model.TermIndex[term] = i
		model.IDF[i] = calculateIDF(n, float64(docFreq[term]))
	}

	for d, counts := range termCounts {
		vec := make(Vector, len(vocab))
		for term, count := range counts {
			idx := model.TermIndex[term]
			vec[idx] = float64(count) * model.IDF[idx]
		}
		normalize(vec)
		model.Vectors[d] = vec
	}

	return model, nil
}

// calculateIDF calculates the smoothed inverse document frequency
// IDF = ln((1 + N) / (1 + df)) + 1 where N = total documents, df = documents containing term
func calculateIDF(totalDocs, docFreq float64) float64 {
	return math.Log((1+totalDocs)/(1+docFreq)) + 1
}

// normalize scales vec to unit length in place. A zero vector is left untouched.
func normalize(vec Vector) {
	var sumSquares float64
	for _, w := range vec {
		sumSquares += w * w
	}
	if sumSquares == 0 {
		return
	}
	norm := math.Sqrt(sumSquares)
	for i, w := range vec {
		vec[i] = w / norm
	}
}

// Cosine returns the cosine of the angle between u and v. A shorter vector is
// treated as zero-padded. Zero-length vectors have similarity 0.
func Cosine(u, v Vector) float64 {
	var dot, normU, normV float64
	for i, w := range u {
		if i < len(v) {
			dot += w * v[i]
		}
		normU += w * w
	}
	for _, w := range v {
		normV += w * w
	}

	if normU == 0 || normV == 0 {
		return 0
	}
	return dot / (math.Sqrt(normU) * math.Sqrt(normV))
}
