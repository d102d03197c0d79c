package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"hrassist/resume-screener/internal/models"
)

type FileKind string

const (
	KindPDF  FileKind = "pdf"
	KindDOCX FileKind = "docx"
	KindText FileKind = "txt"
)

var contentTypeKinds = map[string]FileKind{
	"application/pdf": KindPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": KindDOCX,
	"text/plain": KindText,
}

// DetectKind resolves the file kind from the filename extension, falling
// back to the declared content type. Unknown files are rejected before any
// bytes are parsed.
func DetectKind(filename, contentType string) (FileKind, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	case ".txt":
		return KindText, nil
	}
	if kind, ok := contentTypeKinds[contentType]; ok {
		return kind, nil
	}
	return "", &models.ExtractionError{
		Kind:   string(KindText),
		Reason: "unsupported file type: " + filename,
	}
}

type TextExtractor interface {
	ExtractText(data []byte, kind FileKind) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

func (e *textExtractor) ExtractText(data []byte, kind FileKind) (string, error) {
	switch kind {
	case KindPDF:
		return e.extractPDF(data)
	case KindDOCX:
		return e.extractDOCX(data)
	case KindText:
		return CleanText(string(data)), nil
	default:
		return "", &models.ExtractionError{Kind: string(kind), Reason: "unsupported file kind"}
	}
}

func (e *textExtractor) extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &models.ExtractionError{Kind: string(KindPDF), Reason: "failed to open document", Err: err}
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the document.
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	cleaned := CleanText(builder.String())
	if cleaned == "" {
		return "", &models.ExtractionError{Kind: string(KindPDF), Reason: "document contains no extractable text"}
	}
	return cleaned, nil
}

func (e *textExtractor) extractDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &models.ExtractionError{Kind: string(KindDOCX), Reason: "failed to open document", Err: err}
	}

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", &models.ExtractionError{Kind: string(KindDOCX), Reason: "failed to read document body", Err: err}
		}
		text, err := docxPartText(rc)
		rc.Close()
		if err != nil {
			return "", &models.ExtractionError{Kind: string(KindDOCX), Reason: "failed to parse document body", Err: err}
		}
		cleaned := CleanText(text)
		if cleaned == "" {
			return "", &models.ExtractionError{Kind: string(KindDOCX), Reason: "document contains no extractable text"}
		}
		return cleaned, nil
	}

	return "", &models.ExtractionError{Kind: string(KindDOCX), Reason: "document body not found"}
}

// docxPartText walks the WordprocessingML token stream collecting run text.
// Paragraph and table cell boundaries become newlines so section structure
// survives extraction.
func docxPartText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var builder strings.Builder
	inRun := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p", "tc":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inRun {
				builder.Write(t)
			}
		}
	}
	return builder.String(), nil
}

// CleanText collapses runs of blank lines and trims trailing whitespace from
// each line.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			if !blank && len(cleaned) > 0 {
				cleaned = append(cleaned, "")
			}
			blank = true
			continue
		}
		blank = false
		cleaned = append(cleaned, line)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
