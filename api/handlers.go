package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-resume-matcher/model"
	"github.com/gcbaptista/go-resume-matcher/services"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "go-resume-matcher"

// API holds dependencies for API handlers, primarily the analyzer.
type API struct {
	analyzer  services.Analyzer
	version   string
	startTime time.Time
}

// NewAPI creates a new API handler structure.
func NewAPI(analyzer services.Analyzer, version string) *API {
	return &API{
		analyzer:  analyzer,
		version:   version,
		startTime: time.Now(),
	}
}

// RouteOptions configures the middleware stack installed by SetupRoutes.
type RouteOptions struct {
	Version string
	// Registry receives the HTTP request counter and is served on /metrics.
	// A nil Registry disables both.
	Registry     *prometheus.Registry
	Logger       *zap.Logger
	MaxBodyBytes int64 // 0 disables the limit
}

// AnalyzeResponse is the success body of POST /analyze.
type AnalyzeResponse struct {
	Success bool `json:"success"`
	*model.MatchResult
}

// SetupRoutes installs the middleware and defines all the API routes.
func SetupRoutes(router *gin.Engine, analyzer services.Analyzer, opts RouteOptions) error {
	apiHandler := NewAPI(analyzer, opts.Version)

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router.Use(RequestIDMiddleware(), RequestLoggerMiddleware(log), RecoveryMiddleware())
	if opts.Registry != nil {
		prom, err := NewPrometheusMiddleware(opts.Registry)
		if err != nil {
			return err
		}
		router.Use(prom.Handler())
	}
	router.Use(CORSMiddleware())
	if opts.MaxBodyBytes > 0 {
		router.Use(RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	}

	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/stats", apiHandler.StatsHandler)
	if opts.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	router.POST("/analyze", apiHandler.AnalyzeHandler)
	router.POST("/score", apiHandler.ScoreHandler)

	skillRoutes := router.Group("/skills")
	{
		skillRoutes.POST("", apiHandler.SkillsHandler)
		skillRoutes.GET("/vocabulary", apiHandler.VocabularyHandler)
	}

	return nil
}

// AnalyzeHandler compares a resume with a job description.
// Accepts a JSON body, an urlencoded form, or a multipart form with optional
// resume_file and job_file parts.
func (api *API) AnalyzeHandler(c *gin.Context) {
	in, err := bindAnalyzeRequest(c)
	if err != nil {
		SendBindingError(c, err)
		return
	}

	var result *model.MatchResult
	if in.ResumeFile != nil || in.JobFile != nil {
		result, err = api.analyzer.AnalyzeUploads(c.Request.Context(), in.ResumeText, in.JobText, in.ResumeFile, in.JobFile)
	} else {
		result, err = api.analyzer.Analyze(c.Request.Context(), in.ResumeText, in.JobText)
	}
	if err != nil {
		_ = c.Error(err)
		SendAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{Success: true, MatchResult: result})
}

// ScoreHandler returns only the similarity score of two texts.
func (api *API) ScoreHandler(c *gin.Context) {
	var req AnalyzeRequest
	if err := bindRequest(c, &req); err != nil {
		SendBindingError(c, err)
		return
	}

	score, err := api.analyzer.Score(c.Request.Context(), req.ResumeText, req.JobText)
	if err != nil {
		_ = c.Error(err)
		SendAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": score})
}

// SkillsHandler extracts vocabulary skills from a single text.
func (api *API) SkillsHandler(c *gin.Context) {
	var req SkillsRequest
	if err := bindRequest(c, &req); err != nil {
		SendBindingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": api.analyzer.ExtractSkills(req.Text)})
}

// VocabularyHandler lists the configured skill terms
func (api *API) VocabularyHandler(c *gin.Context) {
	terms := api.analyzer.Vocabulary()
	c.JSON(http.StatusOK, gin.H{
		"skills": terms,
		"total":  len(terms),
	})
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        ServiceName,
		"version":        api.version,
		"uptime_seconds": int64(time.Since(api.startTime).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

// StatsHandler returns the in-process analysis metrics.
func (api *API) StatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.analyzer.Metrics())
}
