package clipboard

import (
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/clipstash/clipstash/internal/reader"
	"github.com/clipstash/clipstash/internal/types"
)

// documentPathPattern matches absolute paths to the document formats the
// extractor can read.
var documentPathPattern = regexp.MustCompile(`(?i)^(/[^/\x00]*)+/\S+\.(pdf|docx|xlsx)$`)

// Classify examines a raw payload and determines its content kind.
// Document paths win over markup; anything unrecognized is plain text.
func Classify(raw string) types.ContentKind {
	trimmed := strings.TrimSpace(raw)

	if documentPathPattern.MatchString(trimmed) {
		switch strings.ToLower(filepath.Ext(trimmed)) {
		case ".pdf":
			return types.KindPDFPath
		case ".docx":
			return types.KindDocxPath
		case ".xlsx":
			return types.KindXlsxPath
		}
	}

	if strings.Contains(strings.ToLower(raw), "<html>") {
		return types.KindHTML
	}

	return types.KindText
}

// Extractor turns raw clipboard payloads into the plain text to store.
type Extractor struct {
	logger *zap.Logger

	readPDF  func(path string) (string, error)
	readDocx func(path string) (string, error)
	readXlsx func(path string) (string, error)
	readHTML func(markup string) (string, error)
}

// NewExtractor returns an Extractor backed by the document readers.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		logger:   logger,
		readPDF:  reader.PDF,
		readDocx: reader.Docx,
		readXlsx: reader.Xlsx,
		readHTML: reader.HTML,
	}
}

// Extract classifies raw content and produces its plain-text form along
// with the detected kind. Every branch degrades to the raw payload: a
// reader failure or an empty extraction stores the original content
// rather than dropping the capture.
func (x *Extractor) Extract(raw string) (string, types.ContentKind) {
	kind := Classify(raw)

	var (
		text string
		err  error
	)
	switch kind {
	case types.KindPDFPath:
		text, err = x.readPDF(strings.TrimSpace(raw))
	case types.KindDocxPath:
		text, err = x.readDocx(strings.TrimSpace(raw))
	case types.KindXlsxPath:
		text, err = x.readXlsx(strings.TrimSpace(raw))
	case types.KindHTML:
		text, err = x.readHTML(raw)
	default:
		return raw, kind
	}

	if err != nil {
		x.logger.Warn("Extraction failed, storing raw payload",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return raw, kind
	}
	if strings.TrimSpace(text) == "" {
		x.logger.Warn("Extraction produced no text, storing raw payload",
			zap.String("kind", string(kind)))
		return raw, kind
	}
	return text, kind
}
