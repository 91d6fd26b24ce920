package model

// Feedback messages, keyed by the lower bound of the score tier they describe.
const (
	FeedbackExcellent = "Excellent match! You have most required skills."
	FeedbackGood      = "Good match! Consider developing a few more skills."
	FeedbackModerate  = "Moderate match. Focus on developing key missing skills."
	FeedbackLow       = "Low match. Significant skill development needed."
)

// MatchResult is the outcome of comparing a resume with a job description.
// MatchingSkills and MissingSkills are disjoint and both are subsets of the
// skill vocabulary; all skill lists follow vocabulary order.
type MatchResult struct {
	AnalysisID      string   `json:"analysis_id"`
	Score           float64  `json:"match_score"` // 0..100, two decimals
	MatchingSkills  []string `json:"matching_skills"`
	MissingSkills   []string `json:"missing_skills"`
	ResumeSkills    []string `json:"resume_skills"`
	JobSkills       []string `json:"job_skills"`
	Recommendations []string `json:"recommendations"` // Always empty for now, never null
	Feedback        string   `json:"feedback"`
	Degraded        bool     `json:"degraded,omitempty"` // Score fell back to 0 after a computation error
	Took            int64    `json:"took"`               // milliseconds
}

// FeedbackForScore returns the human readable tier for a score.
func FeedbackForScore(score float64) string {
	switch {
	case score >= 80:
		return FeedbackExcellent
	case score >= 60:
		return FeedbackGood
	case score >= 40:
		return FeedbackModerate
	default:
		return FeedbackLow
	}
}
