package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gcbaptista/go-resume-matcher/internal/errors"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Python developer</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Docker &amp; AWS</w:t></w:r></w:p>` +
	`</w:body></w:document>`

func buildDocx(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := []struct{ name, body string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`},
		{"word/document.xml", documentXML},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestText_PlainText(t *testing.T) {
	text, err := Text("resume.txt", []byte("Experienced in Python, AWS, and teamwork"))
	require.NoError(t, err)
	assert.Equal(t, "Experienced in Python, AWS, and teamwork", text)
}

func TestText_Empty(t *testing.T) {
	_, err := Text("resume.txt", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestText_Unsupported(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

	_, err := Text("photo.png", png)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFileType))

	var typeErr *apperrors.UnsupportedFileTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "image/png", typeErr.MIMEType)
	assert.Equal(t, "photo.png", typeErr.Filename)
}

func TestText_BrokenPDF(t *testing.T) {
	for _, data := range []string{
		"%PDF-1.4\nthis is not really a pdf",
		"%PDF-1.4\nnot really\n",
	} {
		_, err := Text("resume.pdf", []byte(data))
		require.Error(t, err)
		assert.False(t, errors.Is(err, apperrors.ErrUnsupportedFileType), "a PDF is supported even when it cannot be parsed")
		assert.True(t, errors.Is(err, apperrors.ErrUnreadableDocument))

		var docErr *apperrors.UnreadableDocumentError
		require.True(t, errors.As(err, &docErr))
		assert.Equal(t, "resume.pdf", docErr.Filename)
		assert.Equal(t, "pdf", docErr.Format)
	}
}

func TestText_Docx(t *testing.T) {
	data := buildDocx(t)
	assert.Equal(t, MIMEDocx, DetectMIME(data))

	text, err := Text("resume.docx", data)
	require.NoError(t, err)
	assert.Contains(t, text, "Python developer")
	assert.Contains(t, text, "Docker & AWS")
}

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, MIMETextPlain, DetectMIME([]byte("plain words")))
	assert.Equal(t, MIMEPDF, DetectMIME([]byte("%PDF-1.7\n")))
}

func TestStripWordXML(t *testing.T) {
	got := stripWordXML(`<w:p><w:r><w:t>Machine</w:t></w:r><w:br/><w:r><w:t>Learning &lt;ML&gt;</w:t></w:r></w:p><w:p><w:r><w:t>SQL</w:t></w:r></w:p>`)
	assert.Equal(t, "Machine\nLearning <ML>\nSQL", got)
}
