package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clipstash/clipstash/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want types.ContentKind
	}{
		{"PlainText", "just some words", types.KindText},
		{"PDFPath", "/home/user/docs/report.pdf", types.KindPDFPath},
		{"DocxPath", "/home/user/docs/letter.docx", types.KindDocxPath},
		{"XlsxPath", "/srv/data/budget.xlsx", types.KindXlsxPath},
		{"UppercaseExtension", "/home/user/docs/REPORT.PDF", types.KindPDFPath},
		{"PathWithWhitespaceAround", "  /home/user/docs/report.pdf\n", types.KindPDFPath},
		{"RelativePathIsText", "docs/report.pdf", types.KindText},
		{"UnsupportedExtensionIsText", "/home/user/notes.txt", types.KindText},
		{"HTMLFragment", "<html><body>hi</body></html>", types.KindHTML},
		{"HTMLMarkerCaseInsensitive", "leading text <HTML> trailing", types.KindHTML},
		{"HTMLMarkerWithoutTagIsText", "<div>no html marker</div>", types.KindText},
		{"PathBeatsHTMLMarker", "/home/user/page.pdf", types.KindPDFPath},
		{"URLIsText", "https://example.com/report.pdf", types.KindText},
		{"Empty", "", types.KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.raw))
		})
	}
}

func TestExtract(t *testing.T) {
	t.Run("PlainTextPassesThrough", func(t *testing.T) {
		x := NewExtractor(nil)
		x.readPDF = func(string) (string, error) {
			t.Fatal("reader called for plain text")
			return "", nil
		}

		text, kind := x.Extract("hello world")
		assert.Equal(t, "hello world", text)
		assert.Equal(t, types.KindText, kind)
	})

	t.Run("DocumentPathExtracted", func(t *testing.T) {
		x := NewExtractor(nil)
		x.readPDF = func(path string) (string, error) {
			assert.Equal(t, "/docs/report.pdf", path)
			return "report body", nil
		}

		text, kind := x.Extract("/docs/report.pdf")
		assert.Equal(t, "report body", text)
		assert.Equal(t, types.KindPDFPath, kind)
	})

	t.Run("PathTrimmedBeforeReading", func(t *testing.T) {
		x := NewExtractor(nil)
		x.readXlsx = func(path string) (string, error) {
			assert.Equal(t, "/docs/budget.xlsx", path)
			return "a\tb", nil
		}

		text, _ := x.Extract(" /docs/budget.xlsx \n")
		assert.Equal(t, "a\tb", text)
	})

	t.Run("ReaderFailureFallsBackToRaw", func(t *testing.T) {
		x := NewExtractor(nil)
		x.readDocx = func(string) (string, error) {
			return "", errors.New("corrupt file")
		}

		text, kind := x.Extract("/docs/letter.docx")
		assert.Equal(t, "/docs/letter.docx", text)
		assert.Equal(t, types.KindDocxPath, kind)
	})

	t.Run("EmptyExtractionFallsBackToRaw", func(t *testing.T) {
		x := NewExtractor(nil)
		x.readHTML = func(string) (string, error) {
			return "   \n", nil
		}

		raw := "<html><body></body></html>"
		text, kind := x.Extract(raw)
		assert.Equal(t, raw, text)
		assert.Equal(t, types.KindHTML, kind)
	})

	t.Run("HTMLReduced", func(t *testing.T) {
		x := NewExtractor(nil)
		x.readHTML = func(markup string) (string, error) {
			assert.Contains(t, markup, "<html>")
			return "just the text", nil
		}

		text, kind := x.Extract("<html><b>just the text</b></html>")
		assert.Equal(t, "just the text", text)
		assert.Equal(t, types.KindHTML, kind)
	})
}
