// Package matcher compares resumes with job descriptions. It validates the
// input, scores text similarity, extracts skills on both sides and reports the
// overlap and the gaps.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-resume-matcher/config"
	apperrors "github.com/gcbaptista/go-resume-matcher/internal/errors"
	"github.com/gcbaptista/go-resume-matcher/internal/extract"
	"github.com/gcbaptista/go-resume-matcher/internal/logger"
	"github.com/gcbaptista/go-resume-matcher/internal/metrics"
	"github.com/gcbaptista/go-resume-matcher/internal/similarity"
	"github.com/gcbaptista/go-resume-matcher/internal/skills"
	"github.com/gcbaptista/go-resume-matcher/internal/tokenizer"
	"github.com/gcbaptista/go-resume-matcher/model"
	"github.com/gcbaptista/go-resume-matcher/services"
)

// Field names used in validation errors
const (
	FieldResumeText = "resume_text"
	FieldJobText    = "job_text"
	FieldResumeFile = "resume_file"
	FieldJobFile    = "job_file"
)

// Service implements services.Analyzer.
// Every call is independent; the only shared state is the read-only
// vocabulary inside the extractor and the metrics collector.
type Service struct {
	scorer        services.SimilarityScorer
	extractor     *skills.Extractor
	maxTextLength int
	metrics       *metrics.AnalysisMetrics
	logger        *zap.Logger
}

// NewService creates a Service from matcher settings.
func NewService(settings config.MatcherSettings, m *metrics.AnalysisMetrics, log *zap.Logger) (*Service, error) {
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid matcher settings: %s", strings.Join(problems, "; "))
	}

	extractor, err := settings.BuildExtractor()
	if err != nil {
		return nil, fmt.Errorf("building skill extractor: %w", err)
	}

	analyzer := tokenizer.NewEnglishAnalyzer()
	if settings.DisableStopWords {
		analyzer = tokenizer.NewAnalyzer(nil)
	}

	return NewServiceWithComponents(similarity.NewScorer(analyzer), extractor, settings.MaxTextLength, m, log)
}

// NewServiceWithComponents creates a Service from already built components.
// A nil metrics collector or logger is replaced by a no-op one.
func NewServiceWithComponents(scorer services.SimilarityScorer, extractor *skills.Extractor, maxTextLength int, m *metrics.AnalysisMetrics, log *zap.Logger) (*Service, error) {
	if scorer == nil {
		return nil, fmt.Errorf("scorer cannot be nil")
	}
	if extractor == nil {
		return nil, fmt.Errorf("skill extractor cannot be nil")
	}
	if m == nil {
		var err error
		if m, err = metrics.NewAnalysisMetrics(nil); err != nil {
			return nil, err
		}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		scorer:        scorer,
		extractor:     extractor,
		maxTextLength: maxTextLength,
		metrics:       m,
		logger:        log,
	}, nil
}

// ValidateInputs checks that both texts are present and within limits.
// It returns nil when both are valid. A maxTextLength of 0 disables the length check.
func ValidateInputs(resumeText, jobText string, maxTextLength int) *apperrors.ValidationError {
	result := &apperrors.ValidationError{}

	checks := []struct {
		field, label string
		doc          model.Document
	}{
		{FieldResumeText, "Resume", model.Document{Kind: model.DocumentKindResume, Text: resumeText}},
		{FieldJobText, "Job description", model.Document{Kind: model.DocumentKindJob, Text: jobText}},
	}
	for _, c := range checks {
		if c.doc.IsBlank() {
			result.Add(c.field, apperrors.CodeRequired, c.label+" is required and cannot be blank")
			continue
		}
		if maxTextLength > 0 && utf8.RuneCountInString(c.doc.Text) > maxTextLength {
			result.Add(c.field, apperrors.CodeTooLong, fmt.Sprintf("%s exceeds the maximum length of %d characters", c.label, maxTextLength))
		}
	}

	if result.HasErrors() {
		return result
	}
	return nil
}

// Analyze validates both texts, scores them and compares their skills.
func (s *Service) Analyze(ctx context.Context, resumeText, jobText string) (*model.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	analysisID := uuid.New().String()

	s.logger.Debug("received analysis request",
		zap.String("analysis_id", analysisID),
		logger.Preview("resume", resumeText),
		logger.Preview("job", jobText),
	)

	if verr := ValidateInputs(resumeText, jobText, s.maxTextLength); verr != nil {
		s.metrics.RecordEvent(model.AnalysisEvent{
			AnalysisID: analysisID,
			Outcome:    model.AnalysisOutcomeValidationFailed,
			Timestamp:  time.Now(),
		})
		return nil, verr
	}

	outcome := model.AnalysisOutcomeSucceeded
	score, err := s.scorer.Score(resumeText, jobText)
	if err != nil {
		// A failed computation is reported as 0 but flagged, never passed to the caller as an error
		s.logger.Warn("similarity computation failed; reporting score 0",
			zap.String("analysis_id", analysisID),
			zap.Error(err),
		)
		score = similarity.MinScore
		outcome = model.AnalysisOutcomeDegraded
	}

	resumeSkills := s.extractor.Extract(resumeText)
	jobSkills := s.extractor.Extract(jobText)

	elapsed := time.Since(startTime)
	result := &model.MatchResult{
		AnalysisID:      analysisID,
		Score:           score,
		MatchingSkills:  skills.Intersect(jobSkills, resumeSkills),
		MissingSkills:   skills.Difference(jobSkills, resumeSkills),
		ResumeSkills:    resumeSkills,
		JobSkills:       jobSkills,
		Recommendations: []string{},
		Feedback:        model.FeedbackForScore(score),
		Degraded:        outcome == model.AnalysisOutcomeDegraded,
		Took:            elapsed.Milliseconds(),
	}

	s.metrics.RecordEvent(model.AnalysisEvent{
		AnalysisID:   analysisID,
		Outcome:      outcome,
		Score:        score,
		ResponseTime: elapsed,
		Timestamp:    time.Now(),
	})

	s.logger.Info("analysis complete",
		zap.String("analysis_id", analysisID),
		zap.Float64("match_score", score),
		zap.Int("matching_skills", len(result.MatchingSkills)),
		zap.Int("missing_skills", len(result.MissingSkills)),
		zap.Duration("took", elapsed),
	)

	return result, nil
}

// AnalyzeUploads converts the uploads to text, falling back to the pasted text
// when an upload is nil, and analyzes the result.
func (s *Service) AnalyzeUploads(ctx context.Context, resumeText, jobText string, resume, job *model.Upload) (*model.MatchResult, error) {
	var err error
	if resumeText, err = s.uploadText(resumeText, resume, FieldResumeFile); err != nil {
		return nil, err
	}
	if jobText, err = s.uploadText(jobText, job, FieldJobFile); err != nil {
		return nil, err
	}
	return s.Analyze(ctx, resumeText, jobText)
}

// uploadText returns the text of upload, or fallback when there is no upload
// or the pasted text is already filled in.
func (s *Service) uploadText(fallback string, upload *model.Upload, field string) (string, error) {
	if upload == nil || strings.TrimSpace(fallback) != "" {
		return fallback, nil
	}

	text, err := extract.Text(upload.Filename, upload.Data)
	if err != nil {
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			fieldErr := &apperrors.ValidationError{}
			fieldErr.Add(field, apperrors.CodeRequired, verr.Fields[0].Message)
			return "", fieldErr
		}
		if errors.Is(err, apperrors.ErrUnreadableDocument) {
			s.logger.Debug("uploaded document could not be parsed",
				zap.String("field", field),
				zap.String("filename", upload.Filename),
				zap.Error(err),
			)
			fieldErr := &apperrors.ValidationError{}
			fieldErr.Add(field, apperrors.CodeInvalidFile, err.Error())
			return "", fieldErr
		}
		return "", fmt.Errorf("extracting text from %s: %w", field, err)
	}
	if strings.TrimSpace(text) == "" {
		fieldErr := &apperrors.ValidationError{}
		fieldErr.Add(field, apperrors.CodeInvalidFile,
			fmt.Sprintf("uploaded file '%s' contains no extractable text", upload.Filename))
		return "", fieldErr
	}

	s.logger.Debug("extracted uploaded document",
		zap.String("field", field),
		zap.String("filename", upload.Filename),
		zap.Int("bytes", len(upload.Data)),
		zap.Int("chars", utf8.RuneCountInString(text)),
	)
	return text, nil
}

// Score validates both texts and returns their similarity. Computation
// failures are logged and reported as 0.
func (s *Service) Score(ctx context.Context, resumeText, jobText string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if verr := ValidateInputs(resumeText, jobText, s.maxTextLength); verr != nil {
		return 0, verr
	}

	score, err := s.scorer.Score(resumeText, jobText)
	if err != nil {
		s.logger.Warn("similarity computation failed; reporting score 0", zap.Error(err))
		return similarity.MinScore, nil
	}
	return score, nil
}

// ExtractSkills returns the skills found in text, in vocabulary order.
func (s *Service) ExtractSkills(text string) []string {
	return s.extractor.Extract(text)
}

// Vocabulary returns the configured skill terms in order.
func (s *Service) Vocabulary() []string {
	return s.extractor.Vocabulary().Terms()
}

// Metrics returns a snapshot of the analysis metrics.
func (s *Service) Metrics() metrics.AnalysisMetricsData {
	return s.metrics.GetMetrics()
}

var _ services.Analyzer = (*Service)(nil)
