package dataset

import (
	"fmt"
	"time"

	"edahub/internal/errors"
)

// Role is the semantic classification of a column, distinct from its raw
// storage type. Every column has exactly one role at any time; role changes
// are explicit user actions, never silent re-inference after load.
type Role string

const (
	RoleNumeric      Role = "numeric"
	RoleCategorical  Role = "categorical"
	RoleTemporal     Role = "temporal"
	RoleUnclassified Role = "unclassified"
)

// Frame is an in-memory tabular dataset: an ordered set of named columns over
// string cells, plus the role assigned to each column. Cells are kept raw;
// numeric and temporal reads coerce on access.
type Frame struct {
	columns []string
	rows    [][]string
	roles   map[string]Role
	index   map[string]int
	dates   map[string][]*time.Time // parsed values for temporal columns
}

// NewFrame builds a frame from a header and data rows and classifies every
// column. Short rows read as empty cells for the missing columns.
func NewFrame(columns []string, rows [][]string) *Frame {
	f := &Frame{
		columns: columns,
		rows:    rows,
		roles:   make(map[string]Role, len(columns)),
		index:   make(map[string]int, len(columns)),
		dates:   make(map[string][]*time.Time),
	}
	for i, c := range columns {
		f.index[c] = i
	}
	classify(f)
	return f
}

// Columns returns the column names in dataset order.
func (f *Frame) Columns() []string { return f.columns }

// RowCount returns the number of data rows.
func (f *Frame) RowCount() int { return len(f.rows) }

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Role returns the role of the named column, or RoleUnclassified if absent.
func (f *Frame) Role(name string) Role {
	if r, ok := f.roles[name]; ok {
		return r
	}
	return RoleUnclassified
}

// NumericColumns returns the Numeric columns in dataset order.
func (f *Frame) NumericColumns() []string { return f.columnsWithRole(RoleNumeric) }

// CategoricalColumns returns the Categorical columns in dataset order.
func (f *Frame) CategoricalColumns() []string { return f.columnsWithRole(RoleCategorical) }

// TemporalColumns returns the Temporal columns in dataset order.
func (f *Frame) TemporalColumns() []string { return f.columnsWithRole(RoleTemporal) }

func (f *Frame) columnsWithRole(role Role) []string {
	var out []string
	for _, c := range f.columns {
		if f.roles[c] == role {
			out = append(out, c)
		}
	}
	return out
}

func (f *Frame) cell(row int, col string) string {
	i, ok := f.index[col]
	if !ok || row < 0 || row >= len(f.rows) {
		return ""
	}
	r := f.rows[row]
	if i >= len(r) {
		return ""
	}
	return r[i]
}

// RoleSelection names the user-designated date, category, and measure columns.
// Empty string means the role is unset.
type RoleSelection struct {
	Date     string `json:"date_column,omitempty"`
	Category string `json:"category_column,omitempty"`
	Measure  string `json:"measure_column,omitempty"`
}

// Validate checks that each selected column exists with a compatible role.
func (s RoleSelection) Validate(f *Frame) error {
	if s.Date != "" && f.Role(s.Date) != RoleTemporal {
		return errors.Newf(errors.CodeValidation,
			"date column %q is not temporal (role: %s)", s.Date, f.Role(s.Date))
	}
	if s.Category != "" && !f.HasColumn(s.Category) {
		return errors.Newf(errors.CodeValidation, "category column %q does not exist", s.Category)
	}
	if s.Measure != "" && f.Role(s.Measure) != RoleNumeric {
		return errors.Newf(errors.CodeValidation,
			"measure column %q is not numeric (role: %s)", s.Measure, f.Role(s.Measure))
	}
	return nil
}

// DateRange is an inclusive [Min, Max] calendar-date pair.
type DateRange struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s - %s", r.Min.Format("2006-01-02"), r.Max.Format("2006-01-02"))
}
