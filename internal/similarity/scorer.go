// Package similarity scores how close two free-text documents are using
// TF-IDF vectors and cosine similarity.
package similarity

import (
	"math"
	"strings"

	"github.com/gcbaptista/go-resume-matcher/internal/errors"
	"github.com/gcbaptista/go-resume-matcher/internal/tokenizer"
)

const (
	// MinScore and MaxScore bound every score returned by Scorer.
	MinScore = 0.0
	MaxScore = 100.0
)

// Scorer computes similarity scores in the range [0, 100].
// It keeps no per-call state and is safe for concurrent use.
type Scorer struct {
	vectorizer *Vectorizer
}

// NewScorer creates a new scorer using the given analyzer
func NewScorer(analyzer *tokenizer.Analyzer) *Scorer {
	return &Scorer{vectorizer: NewVectorizer(analyzer)}
}

// NewEnglishScorer creates a scorer that ignores English stop words.
func NewEnglishScorer() *Scorer {
	return NewScorer(tokenizer.NewEnglishAnalyzer())
}

// Score returns the TF-IDF cosine similarity of a and b scaled to 0..100 and
// rounded to two decimals.
//
// A blank document on either side scores 0 with no error. Documents that share
// no terms also score 0 with no error. When neither document has a single
// non-stop-word term, or the arithmetic produces a non-finite value, Score
// returns 0 together with a *errors.ComputationError so the caller can tell a
// failed computation apart from genuinely unrelated text.
func (s *Scorer) Score(a, b string) (float64, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return MinScore, nil
	}

	model, err := s.vectorizer.Fit(a, b)
	if err != nil {
		return MinScore, err
	}

	cos := Cosine(model.Vectors[0], model.Vectors[1])
	if math.IsNaN(cos) || math.IsInf(cos, 0) {
		return MinScore, errors.NewComputationError("cosine", nil)
	}

	return scale(cos), nil
}

// Vectorize exposes the fitted TF-IDF model for the given documents.
func (s *Scorer) Vectorize(docs ...string) (*Model, error) {
	return s.vectorizer.Fit(docs...)
}

// scale converts a cosine in [0, 1] into a percentage rounded to two decimals.
func scale(cos float64) float64 {
	score := math.Round(cos*100*100) / 100
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
