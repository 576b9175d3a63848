// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText indicates the document parsed but contained no extractable text.
var ErrNoText = errors.New("no extractable text in document")

// PDF extracts per-page text from raw PDF bytes. Pages that fail to decode
// are skipped; an error is returned only when the document itself is
// malformed or yields no text at all.
func PDF(content []byte) ([]string, error) {
	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	var pages []string
	numPages := pdfReader.NumPage()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return nil, ErrNoText
	}
	return pages, nil
}
