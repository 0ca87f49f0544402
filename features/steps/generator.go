package steps

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zip"
)

// codesArchive generates the archive Quandl serves for a database listing:
// a single CSV file named after the database
func codesArchive(database, csv string) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	f, err := w.Create(database + "-datasets-codes.csv")
	if err != nil {
		return nil, fmt.Errorf("failed to create archive entry: %w", err)
	}

	// godog docstrings lose the final newline
	if _, err := f.Write([]byte(strings.TrimSpace(csv) + "\n")); err != nil {
		return nil, fmt.Errorf("failed to write archive entry: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close archive: %w", err)
	}

	return buf.Bytes(), nil
}
