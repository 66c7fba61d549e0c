// Package ingestion turns uploaded resume and job files into cleaned plain text.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	innerSpacePattern = regexp.MustCompile(`\s+`)
	blankRunPattern   = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Non-breaking spaces and tabs behave like spaces
	content = strings.ReplaceAll(content, "\u00a0", " ")
	content = strings.ReplaceAll(content, "\t", " ")

	// 3. Process each line
	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	// 4. Join lines and remove excessive blank lines (max 2 consecutive)
	result := removeExcessiveBlankLines(strings.Join(cleanedLines, "\n"))

	// 5. Trim leading/trailing whitespace from entire content
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " ")

	if strings.TrimSpace(line) == "" {
		return ""
	}

	// Markdown headings lose their indentation
	trimmed := strings.TrimLeft(line, " ")
	if strings.HasPrefix(trimmed, "#") {
		return innerSpacePattern.ReplaceAllString(trimmed, " ")
	}

	// Bullets keep their indentation
	indent := len(line) - len(trimmed)
	content := innerSpacePattern.ReplaceAllString(strings.TrimSpace(line), " ")
	if indent > 0 && isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// removeExcessiveBlankLines reduces consecutive blank lines to max 2
func removeExcessiveBlankLines(content string) string {
	return blankRunPattern.ReplaceAllString(content, "\n\n")
}

// IngestFromFile reads a resume or job file, extracts and cleans its text and returns it with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := ExtractText(filepath.Base(path), data)
	if err != nil {
		return "", nil, err
	}

	cleanedText := CleanText(text)
	metadata := NewMetadata(cleanedText, path, DetectFormat(path))

	return cleanedText, metadata, nil
}
