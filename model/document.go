package model

import "strings"

// DocumentKind identifies which side of a comparison a document belongs to.
type DocumentKind string

const (
	DocumentKindResume DocumentKind = "resume"
	DocumentKindJob    DocumentKind = "job"
)

// Document is the request-scoped text of a resume or a job description.
// It has no identity beyond its content.
type Document struct {
	Kind DocumentKind `json:"kind"`
	Text string       `json:"text"`
}

// IsBlank reports whether the document has no content after trimming whitespace.
func (d Document) IsBlank() bool {
	return strings.TrimSpace(d.Text) == ""
}

// Upload is a raw file submitted in place of pasted text.
type Upload struct {
	Kind     DocumentKind `json:"kind"`
	Filename string       `json:"filename"`
	Data     []byte       `json:"-"`
}
