package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gcbaptista/go-resume-matcher/model"
)

// maxRecentDurations bounds the sliding window used for the recent average.
const maxRecentDurations = 100

// AnalysisMetricsData represents analysis metrics without mutex (safe for copying)
type AnalysisMetricsData struct {
	AnalysesTotal        int64                           `json:"analyses_total"`
	AnalysesSucceeded    int64                           `json:"analyses_succeeded"`
	AnalysesDegraded     int64                           `json:"analyses_degraded"`
	ValidationFailures   int64                           `json:"validation_failures"`
	TotalExecutionTime   time.Duration                   `json:"total_execution_time_ns"`
	AverageExecutionTime time.Duration                   `json:"average_execution_time_ns"`
	RecentAverageTime    time.Duration                   `json:"recent_average_time_ns"`
	AverageScore         float64                         `json:"average_score"`
	ScoreDistribution    model.ScoreDistribution         `json:"score_distribution"`
	AnalysesByOutcome    map[model.AnalysisOutcome]int64 `json:"analyses_by_outcome"`
	LastUpdated          time.Time                       `json:"last_updated"`
}

// AnalysisMetrics tracks analysis counts, timings and score distribution in
// process and mirrors them into Prometheus collectors.
type AnalysisMetrics struct {
	mu                 sync.RWMutex
	analysesTotal      int64
	scoredTotal        int64
	scoreSum           float64
	totalExecutionTime time.Duration
	recentDurations    []time.Duration
	distribution       model.ScoreDistribution
	byOutcome          map[model.AnalysisOutcome]int64
	lastUpdated        time.Time

	analysesCounter *prometheus.CounterVec
	durationHist    prometheus.Histogram
	scoreHist       prometheus.Histogram
}

// NewAnalysisMetrics creates a new metrics collector and registers its
// Prometheus collectors on reg. A nil reg skips registration.
func NewAnalysisMetrics(reg prometheus.Registerer) (*AnalysisMetrics, error) {
	m := &AnalysisMetrics{
		byOutcome:   make(map[model.AnalysisOutcome]int64),
		lastUpdated: time.Now(),
		analysesCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_matcher_analyses_total",
				Help: "Total number of resume analyses by outcome.",
			},
			[]string{"outcome"},
		),
		durationHist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "resume_matcher_analysis_duration_seconds",
			Help:    "Time spent computing a single analysis.",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		scoreHist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "resume_matcher_match_score",
			Help:    "Distribution of reported match scores (0-100).",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.analysesCounter, m.durationHist, m.scoreHist} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// RecordEvent records one finished (or rejected) analysis
func (m *AnalysisMetrics) RecordEvent(event model.AnalysisEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.analysesTotal++
	m.byOutcome[event.Outcome]++
	m.analysesCounter.WithLabelValues(string(event.Outcome)).Inc()

	if event.Outcome != model.AnalysisOutcomeValidationFailed {
		m.scoredTotal++
		m.scoreSum += event.Score
		m.totalExecutionTime += event.ResponseTime

		m.recentDurations = append(m.recentDurations, event.ResponseTime)
		// Keep only the last durations to prevent memory growth
		if len(m.recentDurations) > maxRecentDurations {
			m.recentDurations = m.recentDurations[1:]
		}

		switch model.FeedbackForScore(event.Score) {
		case model.FeedbackExcellent:
			m.distribution.Excellent++
		case model.FeedbackGood:
			m.distribution.Good++
		case model.FeedbackModerate:
			m.distribution.Moderate++
		default:
			m.distribution.Low++
		}

		m.durationHist.Observe(event.ResponseTime.Seconds())
		m.scoreHist.Observe(event.Score)
	}

	if event.Timestamp.IsZero() {
		m.lastUpdated = time.Now()
	} else {
		m.lastUpdated = event.Timestamp
	}
}

// GetMetrics returns a copy of current metrics without mutex (safe for copying)
func (m *AnalysisMetrics) GetMetrics() AnalysisMetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byOutcome := make(map[model.AnalysisOutcome]int64, len(m.byOutcome))
	for k, v := range m.byOutcome {
		byOutcome[k] = v
	}

	data := AnalysisMetricsData{
		AnalysesTotal:      m.analysesTotal,
		AnalysesSucceeded:  m.byOutcome[model.AnalysisOutcomeSucceeded],
		AnalysesDegraded:   m.byOutcome[model.AnalysisOutcomeDegraded],
		ValidationFailures: m.byOutcome[model.AnalysisOutcomeValidationFailed],
		TotalExecutionTime: m.totalExecutionTime,
		ScoreDistribution:  m.distribution,
		AnalysesByOutcome:  byOutcome,
		LastUpdated:        m.lastUpdated,
	}

	if m.scoredTotal > 0 {
		data.AverageExecutionTime = m.totalExecutionTime / time.Duration(m.scoredTotal)
		data.AverageScore = m.scoreSum / float64(m.scoredTotal)
	}

	if len(m.recentDurations) > 0 {
		var total time.Duration
		for _, d := range m.recentDurations {
			total += d
		}
		data.RecentAverageTime = total / time.Duration(len(m.recentDurations))
	}

	return data
}

// GetSuccessRate returns the share of scored analyses that did not degrade (0.0 to 1.0)
func (m *AnalysisMetrics) GetSuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.scoredTotal == 0 {
		return 1.0 // No analyses yet, assume 100% success
	}
	return float64(m.byOutcome[model.AnalysisOutcomeSucceeded]) / float64(m.scoredTotal)
}
