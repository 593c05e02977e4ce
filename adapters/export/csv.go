// Package export renders the filtered dataset and the summary report into the
// downloadable formats: flat CSV, a paginated PDF document, an XLSX workbook,
// and Markdown. Each exporter renders independently from the same inputs.
package export

import (
	"encoding/csv"
	"io"

	"edahub/domain/dataset"
	"edahub/internal/errors"
)

// WriteCSV streams the view as comma-delimited UTF-8 with a header row.
// Data content only; no aggregation is applied.
func WriteCSV(w io.Writer, view dataset.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(view.Frame().Columns()); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	for _, row := range dataset.Rows(view) {
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "failed to write CSV row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush CSV output")
}
