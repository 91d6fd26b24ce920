package services

import (
	"context"

	"github.com/gcbaptista/go-resume-matcher/internal/metrics"
	"github.com/gcbaptista/go-resume-matcher/model"
)

// SimilarityScorer scores how close two documents are, in the range [0, 100].
type SimilarityScorer interface {
	Score(a, b string) (float64, error)
}

// Analyzer compares a resume with a job description.
type Analyzer interface {
	// Analyze validates the two texts and returns the match result.
	// A blank input yields an error matching errors.ErrInvalidInput.
	Analyze(ctx context.Context, resumeText, jobText string) (*model.MatchResult, error)
	// AnalyzeUploads converts uploaded files to text and analyzes them.
	// A nil upload falls back to the corresponding text argument.
	AnalyzeUploads(ctx context.Context, resumeText, jobText string, resume, job *model.Upload) (*model.MatchResult, error)
	// Score returns the raw similarity score without skill extraction.
	Score(ctx context.Context, resumeText, jobText string) (float64, error)
	// ExtractSkills returns the skills found in text.
	ExtractSkills(text string) []string
	// Vocabulary returns the configured skill terms in order.
	Vocabulary() []string
	// Metrics returns a snapshot of the analysis metrics.
	Metrics() metrics.AnalysisMetricsData
}
