package dataset

import (
	"strconv"
	"strings"
	"time"

	"edahub/internal/errors"
)

// classify assigns an initial role to every column: a column whose non-empty
// cells all parse as numbers is Numeric, everything else is Categorical.
// Runs once at load; later role changes go through PromoteTemporal.
func classify(f *Frame) {
	for i, col := range f.columns {
		f.roles[col] = inferRole(f.rows, i)
	}
}

func inferRole(rows [][]string, colIndex int) Role {
	numeric := 0
	nonEmpty := 0
	for _, row := range rows {
		if colIndex >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[colIndex])
		if v == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			numeric++
		}
	}
	if nonEmpty > 0 && numeric == nonEmpty {
		return RoleNumeric
	}
	return RoleCategorical
}

// dateLayouts are the formats accepted when promoting a column to Temporal.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

func parseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PromoteTemporal reparses a Categorical column as dates and promotes it to
// Temporal. Cells that fail to parse become missing markers. If not one cell
// of a non-empty column parses, the promotion fails, the role stays
// Categorical, and the caller gets a ParseError to surface as a warning.
// Re-applying to an already-Temporal column is a no-op; any other role is
// refused outright.
func (f *Frame) PromoteTemporal(col string) error {
	i, ok := f.index[col]
	if !ok {
		return errors.Newf(errors.CodeValidation, "column %q does not exist", col)
	}
	if f.roles[col] == RoleTemporal {
		return nil
	}
	if f.roles[col] != RoleCategorical {
		return errors.Newf(errors.CodeValidation,
			"column %q is %s and cannot be used as a date column", col, f.roles[col])
	}

	parsed := make([]*time.Time, len(f.rows))
	parsedCount := 0
	nonEmpty := 0
	for r, row := range f.rows {
		if i >= len(row) || strings.TrimSpace(row[i]) == "" {
			continue
		}
		nonEmpty++
		if t, ok := parseDate(row[i]); ok {
			tc := t
			parsed[r] = &tc
			parsedCount++
		}
	}

	if nonEmpty > 0 && parsedCount == 0 {
		return errors.Newf(errors.CodeParse,
			"could not convert column %q to dates; leaving it categorical", col)
	}

	f.dates[col] = parsed
	f.roles[col] = RoleTemporal
	return nil
}

// DateAt returns the parsed date of a temporal column at a row, or nil when
// the value is missing or the column was never promoted.
func (f *Frame) DateAt(row int, col string) *time.Time {
	parsed, ok := f.dates[col]
	if !ok || row < 0 || row >= len(parsed) {
		return nil
	}
	return parsed[row]
}
