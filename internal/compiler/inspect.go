package compiler

import (
	"bytes"
	"fmt"

	pdflib "github.com/ledongthuc/pdf"
)

// PageCount reads the page tree of a compiled PDF.
func PageCount(pdf []byte) (n int, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("inspect pdf: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(pdf), int64(len(pdf)))
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	return reader.NumPage(), nil
}
