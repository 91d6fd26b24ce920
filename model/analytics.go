package model

import "time"

// AnalysisOutcome classifies how a single analysis ended
type AnalysisOutcome string

const (
	AnalysisOutcomeSucceeded        AnalysisOutcome = "succeeded"
	AnalysisOutcomeDegraded         AnalysisOutcome = "degraded" // score computation failed, reported as 0
	AnalysisOutcomeValidationFailed AnalysisOutcome = "validation_failed"
)

// AnalysisEvent represents a single analysis for metrics tracking
type AnalysisEvent struct {
	AnalysisID   string          `json:"analysis_id"`
	Outcome      AnalysisOutcome `json:"outcome"`
	Score        float64         `json:"score"`
	ResponseTime time.Duration   `json:"response_time"`
	Timestamp    time.Time       `json:"timestamp"`
}

// ScoreDistribution counts analyses per feedback tier
type ScoreDistribution struct {
	Excellent int64 `json:"excellent_80_plus"`
	Good      int64 `json:"good_60_80"`
	Moderate  int64 `json:"moderate_40_60"`
	Low       int64 `json:"low_below_40"`
}
