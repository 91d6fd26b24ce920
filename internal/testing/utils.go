// Package testing provides utilities and helpers for testing the resume matcher.
package testing

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-resume-matcher/config"
	"github.com/gcbaptista/go-resume-matcher/internal/matcher"
	"github.com/gcbaptista/go-resume-matcher/services"
)

// CreateTestService creates an analyzer with default matcher settings, or
// with settings when given.
func CreateTestService(t *testing.T, settings ...config.MatcherSettings) *matcher.Service {
	t.Helper()

	var s config.MatcherSettings
	if len(settings) > 0 {
		s = settings[0]
	}

	svc, err := matcher.NewService(s, nil, zap.NewNop())
	require.NoError(t, err, "Failed to create test service")
	return svc
}

// MatchTestCase represents a test case for a resume/job analysis
type MatchTestCase struct {
	Name             string
	Resume           string
	Job              string
	ExpectedMatching []string
	ExpectedMissing  []string
	MinScore         float64
	MaxScore         float64 // 0 means no upper bound check
}

// RunMatchTests runs a suite of analyses against an analyzer
func RunMatchTests(t *testing.T, analyzer services.Analyzer, tests []MatchTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result, err := analyzer.Analyze(context.Background(), tt.Resume, tt.Job)
			require.NoError(t, err, "Analysis should not fail")

			if tt.ExpectedMatching != nil {
				assert.Equal(t, tt.ExpectedMatching, result.MatchingSkills, "Matching skills should match")
			}
			if tt.ExpectedMissing != nil {
				assert.Equal(t, tt.ExpectedMissing, result.MissingSkills, "Missing skills should match")
			}
			assert.GreaterOrEqual(t, result.Score, tt.MinScore, "Score below expected minimum")
			if tt.MaxScore > 0 {
				assert.LessOrEqual(t, result.Score, tt.MaxScore, "Score above expected maximum")
			}
		})
	}
}

// NewJSONRequest builds a JSON POST request. A string body is sent verbatim.
func NewJSONRequest(t *testing.T, path string, body any) *http.Request {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewFormRequest builds an urlencoded form POST request
func NewFormRequest(path string, fields map[string]string) *http.Request {
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// FormFile is a file part of a multipart request
type FormFile struct {
	Field    string
	Filename string
	Data     []byte
}

// NewMultipartRequest builds a multipart form POST request with text fields and file parts.
func NewMultipartRequest(t *testing.T, path string, fields map[string]string, files ...FormFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.Field, f.Filename)
		require.NoError(t, err)
		_, err = part.Write(f.Data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// Serve runs req through handler and returns the recorded response
func Serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// DecodeJSON decodes a recorded response body into a generic map
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "Response should be valid JSON: %s", w.Body.String())
	return body
}
