package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrassist/resume-screener/internal/models"
)

func TestDetectKind(t *testing.T) {
	t.Run("by extension", func(t *testing.T) {
		kind, err := DetectKind("resume.PDF", "")
		require.NoError(t, err)
		assert.Equal(t, KindPDF, kind)

		kind, err = DetectKind("resume.docx", "")
		require.NoError(t, err)
		assert.Equal(t, KindDOCX, kind)

		kind, err = DetectKind("resume.txt", "")
		require.NoError(t, err)
		assert.Equal(t, KindText, kind)
	})

	t.Run("by content type", func(t *testing.T) {
		kind, err := DetectKind("upload", "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, KindPDF, kind)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := DetectKind("resume.exe", "application/octet-stream")
		require.Error(t, err)

		var extraction *models.ExtractionError
		assert.ErrorAs(t, err, &extraction)
	})
}

func TestExtractTextPlain(t *testing.T) {
	extractor := NewTextExtractor()

	text, err := extractor.ExtractText([]byte("Jane Doe\n\n\n\nSenior Engineer  \n"), KindText)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nSenior Engineer", text)
}

func TestExtractTextDOCX(t *testing.T) {
	extractor := NewTextExtractor()

	t.Run("valid document", func(t *testing.T) {
		data := buildDOCX(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Senior </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>
  </w:body>
</w:document>`)

		text, err := extractor.ExtractText(data, KindDOCX)
		require.NoError(t, err)
		assert.Contains(t, text, "Jane Doe")
		assert.Contains(t, text, "Senior Engineer")
	})

	t.Run("not a zip", func(t *testing.T) {
		_, err := extractor.ExtractText([]byte("plainly not a docx"), KindDOCX)
		require.Error(t, err)

		var extraction *models.ExtractionError
		require.ErrorAs(t, err, &extraction)
		assert.Equal(t, string(KindDOCX), extraction.Kind)
	})

	t.Run("missing document body", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		part, err := w.Create("word/styles.xml")
		require.NoError(t, err)
		_, err = part.Write([]byte("<styles/>"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		_, err = extractor.ExtractText(buf.Bytes(), KindDOCX)
		require.Error(t, err)
	})
}

func TestExtractTextPDF(t *testing.T) {
	extractor := NewTextExtractor()

	t.Run("valid document", func(t *testing.T) {
		data := buildPDF("Jane Doe Senior Engineer")

		text, err := extractor.ExtractText(data, KindPDF)
		require.NoError(t, err)
		assert.Contains(t, text, "Jane Doe")
	})

	t.Run("corrupt document", func(t *testing.T) {
		_, err := extractor.ExtractText([]byte("%PDF-1.4 garbage"), KindPDF)
		require.Error(t, err)

		var extraction *models.ExtractionError
		assert.ErrorAs(t, err, &extraction)
	})
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	part, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = part.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// buildPDF assembles a single page document with one text run, computing the
// cross reference offsets as it goes.
func buildPDF(text string) []byte {
	content := fmt.Sprintf("BT /F0 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F0 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestCleanText(t *testing.T) {
	in := "  \nline one   \n\n\n\nline two\t\n\n"
	assert.Equal(t, "line one\n\nline two", CleanText(in))
}
