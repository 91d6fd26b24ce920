// Package extract converts uploaded resume and job description files into plain text.
package extract

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/gcbaptista/go-resume-matcher/internal/errors"
)

// Supported MIME types
const (
	MIMETextPlain = "text/plain"
	MIMEPDF       = "application/pdf"
	MIMEDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// paragraphEndRegex matches the end of a WordprocessingML paragraph or a line break.
	paragraphEndRegex = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	// xmlTagRegex matches any XML tag.
	xmlTagRegex = regexp.MustCompile(`<[^>]*>`)
)

// DetectMIME returns the detected content type of data without parameters.
func DetectMIME(data []byte) string {
	mtype := mimetype.Detect(data)
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(MIMETextPlain) {
			return MIMETextPlain
		}
	}
	mediaType, _, _ := strings.Cut(mtype.String(), ";")
	return mediaType
}

// Text extracts plain text from an uploaded file. The filename is only used in
// error messages; the content type is always detected from the bytes.
func Text(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.NewValidationError("file", fmt.Sprintf("uploaded file '%s' is empty", filename))
	}

	switch mimeType := DetectMIME(data); mimeType {
	case MIMETextPlain:
		return string(data), nil
	case MIMEPDF:
		text, err := pdfText(data)
		if err != nil {
			return "", errors.NewUnreadableDocumentError(filename, "pdf", err)
		}
		return text, nil
	case MIMEDocx:
		text, err := docxText(data)
		if err != nil {
			return "", errors.NewUnreadableDocumentError(filename, "docx", err)
		}
		return text, nil
	default:
		return "", errors.NewUnsupportedFileTypeError(filename, mimeType)
	}
}

func pdfText(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return stripWordXML(doc.Editable().GetContent()), nil
}

// stripWordXML turns WordprocessingML into plain text, one paragraph per line.
func stripWordXML(content string) string {
	content = paragraphEndRegex.ReplaceAllString(content, "\n")
	content = xmlTagRegex.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content))
}
