// ABOUTME: PDF text extraction for the ingestion pipeline
// ABOUTME: Opaque bytes-in/text-out contract; failures are never retried
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrExtractionFailed reports an unreadable source document. It aborts
// ingestion for that document only and is never retried.
var ErrExtractionFailed = errors.New("text extraction failed")

// Func converts raw document bytes into plain text.
type Func func(raw []byte) (string, error)

// PDF extracts the concatenated plain text of every page in a PDF.
func PDF(raw []byte) (text string, err error) {
	// The parser panics on some malformed files; surface those as
	// ExtractionFailed like any other bad input.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrExtractionFailed, i, err)
		}
		sb.WriteString(pageText)
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: no extractable text", ErrExtractionFailed)
	}
	return sb.String(), nil
}
