package ingestion

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies the encoding of an input file
type Format string

const (
	// FormatText is plain text or markdown
	FormatText Format = "text"
	// FormatPDF is a PDF document
	FormatPDF Format = "pdf"
	// FormatDOCX is an Office Open XML word document
	FormatDOCX Format = "docx"
)

var (
	xmlParagraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTagPattern   = regexp.MustCompile(`<[^>]+>`)
)

// DetectFormat chooses the format from the file extension; unknown extensions are treated as text
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return FormatText
	}
}

// ExtractText decodes the raw bytes of a file into plain text according to its extension
func ExtractText(filename string, data []byte) (string, error) {
	switch format := DetectFormat(filename); format {
	case FormatPDF:
		return extractPDFText(data)
	case FormatDOCX:
		return extractDocxText(data)
	default:
		if !utf8.Valid(data) {
			return "", &ExtractionError{Format: format, Message: "file is not valid UTF-8 text"}
		}
		return string(data), nil
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatPDF, Message: "failed to read pdf", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Format: FormatPDF, Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Message: "failed to parse docx", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	// GetContent returns the document XML; paragraph ends become line breaks
	content := doc.Editable().GetContent()
	content = xmlParagraphEnd.ReplaceAllString(content, "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")

	return unescapeXML(content), nil
}

var xmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

func unescapeXML(s string) string {
	return xmlEntities.Replace(s)
}
