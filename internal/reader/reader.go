// Package reader extracts plain text from the document formats that show
// up on the clipboard as file paths or markup. Callers treat every
// function here as best-effort and fall back to the raw payload on error.
package reader

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/jaytaylor/html2text"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/xuri/excelize/v2"
)

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// PDF returns the plain text of the PDF at path.
func PDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return buf.String(), nil
}

// Docx returns the paragraph text of the Word document at path.
func Docx(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer r.Close()

	return stripDocxXML(r.Editable().GetContent()), nil
}

// stripDocxXML reduces raw document XML to text: paragraph closers
// become newlines, remaining markup is dropped, entities are unescaped.
func stripDocxXML(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	text := xmlTagPattern.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(text))
}

// Xlsx returns the cell text of every sheet in the workbook at path,
// cells tab-separated, rows newline-separated.
func Xlsx(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteString("\n")
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// HTML reduces an HTML fragment to readable text.
func HTML(markup string) (string, error) {
	text, err := html2text.FromString(markup, html2text.Options{TextOnly: true})
	if err != nil {
		return "", fmt.Errorf("failed to convert html: %w", err)
	}
	return text, nil
}
