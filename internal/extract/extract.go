package extract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrUnsupportedType is returned when the uploaded file extension is not
	// one of the supported document types.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrNoText is returned when a document yields no extractable text.
	ErrNoText = errors.New("no readable text found in the document")
	// ErrCorruptFile is returned when a document cannot be parsed.
	ErrCorruptFile = errors.New("invalid or corrupted file")
)

// Text extracts plain text from an uploaded document. The file type is
// decided by the filename extension: .pdf, .md/.markdown and .txt are
// supported. The returned text is trimmed; a document with no extractable
// text is an error, not an empty result.
func Text(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = pdfText(data)
	case ".md", ".markdown":
		text, err = markdownText(data)
	case ".txt":
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// pdfText extracts the text of every page, joined with newlines. Pages
// without extractable text are skipped.
func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not invalidate the document.
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			pages = append(pages, pageText)
		}
	}

	return strings.Join(pages, "\n"), nil
}
