package quandl

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
)

const codeSeparator = "/"

// DatasetCode is one dataset listed in a database
type DatasetCode struct {
	// Code is the dataset code without its database prefix, e.g. MYS5Y
	Code string `json:"code"`
	Desc string `json:"desc"`
}

// Run sends the request to Quandl and returns the dataset codes in the
// order Quandl lists them. A single malformed row fails the whole listing.
func (r ListRequest) Run(ctx context.Context) ([]DatasetCode, error) {
	uri, err := r.URL()
	if err != nil {
		return nil, err
	}

	body, err := r.session.get(ctx, uri)
	if err != nil {
		return nil, err
	}

	return decodeCodes(body)
}

// decodeCodes reads a ZIP archive holding a single CSV file with rows of
// "DATABASE/CODE","description"
func decodeCodes(b []byte) ([]DatasetCode, error) {
	archive, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, &DecodeError{Format: "zip", err: err}
	}

	if n := len(archive.File); n != 1 {
		return nil, newStructureError(fmt.Sprintf("expected one file in archive, found %d", n))
	}

	f, err := archive.File[0].Open()
	if err != nil {
		return nil, &DecodeError{Format: "zip", err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	codes := []DatasetCode{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DecodeError{Format: "csv", err: err}
		}

		// everything after the last separator, even if the code has several
		i := strings.LastIndex(record[0], codeSeparator)
		if i < 0 {
			return nil, newStructureError(fmt.Sprintf("`%s` not found in `%s`", codeSeparator, record[0]))
		}

		codes = append(codes, DatasetCode{
			Code: record[0][i+1:],
			Desc: record[1],
		})
	}

	return codes, nil
}

func newStructureError(msg string) *APIError {
	return &APIError{Message: msg, msg: msg}
}
