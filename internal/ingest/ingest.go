// Package ingest parses uploaded tabular files into dataset frames. Column
// role inference happens downstream in the dataset package; this layer only
// delivers headers and string cells.
package ingest

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"edahub/domain/dataset"
	"edahub/internal/errors"
)

// Parse reads an uploaded file into a frame, dispatching on file extension.
func Parse(r io.Reader, filename string) (*dataset.Frame, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", "":
		return ParseCSV(r)
	case ".xlsx":
		return ParseXLSX(r)
	default:
		return nil, errors.Newf(errors.CodeValidation,
			"unsupported file type %q (expected .csv or .xlsx)", filepath.Ext(filename))
	}
}

// ParseCSV reads a comma-delimited file with a header row.
func ParseCSV(r io.Reader) (*dataset.Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // tolerate ragged rows; short rows read as empty cells

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.New(errors.CodeParse, err.Error()), "failed to read CSV data")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.CodeParse, "CSV file is empty")
	}

	headers := trimAll(records[0])
	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, trimAll(record))
	}
	return dataset.NewFrame(headers, rows), nil
}

// ParseXLSX reads the first sheet of a workbook with a header row.
func ParseXLSX(r io.Reader) (*dataset.Frame, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.New(errors.CodeParse, err.Error()), "failed to open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.CodeParse, "workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheets[0])
	}
	if len(records) == 0 {
		return nil, errors.New(errors.CodeParse, "workbook sheet is empty")
	}

	headers := trimAll(records[0])
	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, trimAll(record))
	}
	return dataset.NewFrame(headers, rows), nil
}

func trimAll(record []string) []string {
	out := make([]string, len(record))
	for i, v := range record {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
