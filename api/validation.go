// Package api provides the HTTP surface of the resume matcher.
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/gcbaptista/go-resume-matcher/internal/matcher"
	"github.com/gcbaptista/go-resume-matcher/model"
)

// AnalyzeRequest carries the two texts to compare. It binds from JSON bodies
// and from urlencoded or multipart forms.
type AnalyzeRequest struct {
	ResumeText string `json:"resume_text" form:"resume_text"`
	JobText    string `json:"job_text" form:"job_text"`
}

// SkillsRequest carries a single text to extract skills from.
type SkillsRequest struct {
	Text string `json:"text" form:"text"`
}

// analyzeInput is a bound /analyze request with any uploaded documents.
type analyzeInput struct {
	AnalyzeRequest
	ResumeFile *model.Upload
	JobFile    *model.Upload
}

// bindingError marks a request that could not be decoded at all.
type bindingError struct {
	json bool
	err  error
}

func (e *bindingError) Error() string { return e.err.Error() }

func (e *bindingError) Unwrap() error { return e.err }

// bindRequest decodes the body into target using JSON or form binding
// depending on the request content type.
func bindRequest(c *gin.Context, target any) error {
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(target); err != nil {
			return &bindingError{json: true, err: err}
		}
		return nil
	}
	if err := c.ShouldBind(target); err != nil {
		return &bindingError{err: err}
	}
	return nil
}

// bindAnalyzeRequest binds the texts and, for multipart requests, reads the
// optional resume_file and job_file parts.
func bindAnalyzeRequest(c *gin.Context) (*analyzeInput, error) {
	in := &analyzeInput{}
	if err := bindRequest(c, &in.AnalyzeRequest); err != nil {
		return nil, err
	}
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return in, nil
	}

	var err error
	if in.ResumeFile, err = formUpload(c, matcher.FieldResumeFile, model.DocumentKindResume); err != nil {
		return nil, err
	}
	if in.JobFile, err = formUpload(c, matcher.FieldJobFile, model.DocumentKindJob); err != nil {
		return nil, err
	}
	return in, nil
}

// formUpload reads a multipart file part. A missing part yields a nil upload.
func formUpload(c *gin.Context, field string, kind model.DocumentKind) (*model.Upload, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, &bindingError{err: fmt.Errorf("reading %s: %w", field, err)}
	}

	file, err := header.Open()
	if err != nil {
		return nil, &bindingError{err: fmt.Errorf("opening %s: %w", field, err)}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &bindingError{err: fmt.Errorf("reading %s: %w", field, err)}
	}

	return &model.Upload{Kind: kind, Filename: header.Filename, Data: data}, nil
}

// SendBindingError maps a request decoding failure onto a response.
func SendBindingError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		SendPayloadTooLargeError(c, tooLarge.Limit)
		return
	}

	var berr *bindingError
	if errors.As(err, &berr) && berr.json {
		SendInvalidJSONError(c, berr.err)
		return
	}
	SendInvalidRequestError(c, err)
}
