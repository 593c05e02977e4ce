// Package query exposes an ad hoc SQL console over the filtered view. Every
// request loads the view into a throwaway in-memory SQLite database as table
// sales_data, runs the user's query, and discards the database. The engine's
// own state is never touched, and query errors surface verbatim.
package query

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"edahub/domain/dataset"
	"edahub/internal"
	"edahub/internal/errors"
)

// TableName is how the filtered view is exposed to queries.
const TableName = "sales_data"

// ResultTable is the console's answer: a flat grid of stringified values.
type ResultTable struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Truncated bool       `json:"truncated"`
}

// Console runs SQL against per-request in-memory databases.
type Console struct {
	maxRows int
	log     *internal.Logger
}

// NewConsole creates a console capped at maxRows result rows.
func NewConsole(maxRows int, log *internal.Logger) *Console {
	return &Console{maxRows: maxRows, log: log}
}

// Run loads the view and executes one query.
func (c *Console) Run(ctx context.Context, view dataset.View, queryText string) (*ResultTable, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, errors.New(errors.CodeQuery, "query must not be empty")
	}

	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open in-memory database")
	}
	defer db.Close()

	if err := c.load(ctx, db, view); err != nil {
		return nil, err
	}

	rows, err := db.QueryxContext(ctx, queryText)
	if err != nil {
		return nil, errors.New(errors.CodeQuery, err.Error())
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.New(errors.CodeQuery, err.Error())
	}

	result := &ResultTable{Columns: columns}
	for rows.Next() {
		if len(result.Rows) >= c.maxRows {
			result.Truncated = true
			break
		}
		values, err := rows.SliceScan()
		if err != nil {
			return nil, errors.New(errors.CodeQuery, err.Error())
		}
		result.Rows = append(result.Rows, stringify(values))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New(errors.CodeQuery, err.Error())
	}

	c.log.Debug("query returned %d rows (truncated=%v)", len(result.Rows), result.Truncated)
	return result, nil
}

// load creates sales_data and copies the view into it. Numeric-role columns
// become REAL, everything else TEXT; blank cells insert as NULL.
func (c *Console) load(ctx context.Context, db *sqlx.DB, view dataset.View) error {
	frame := view.Frame()
	cols := frame.Columns()
	if len(cols) == 0 {
		return errors.New(errors.CodeQuery, "the current view has no columns")
	}

	defs := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for i, col := range cols {
		sqlType := "TEXT"
		if frame.Role(col) == dataset.RoleNumeric {
			sqlType = "REAL"
		}
		defs[i] = fmt.Sprintf("%s %s", quoteIdent(col), sqlType)
		placeholders[i] = "?"
	}

	createStmt := fmt.Sprintf("CREATE TABLE %s (%s)", TableName, strings.Join(defs, ", "))
	if _, err := db.ExecContext(ctx, createStmt); err != nil {
		return errors.Wrap(err, "failed to create query table")
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin load transaction")
	}
	defer tx.Rollback()

	insertStmt := fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		TableName, strings.Join(placeholders, ", "))
	stmt, err := tx.PreparexContext(ctx, insertStmt)
	if err != nil {
		return errors.Wrap(err, "failed to prepare insert")
	}
	defer stmt.Close()

	args := make([]interface{}, len(cols))
	for i := 0; i < view.Len(); i++ {
		for j, col := range cols {
			cell := view.Cell(i, col)
			switch {
			case cell == "":
				args[j] = nil
			case frame.Role(col) == dataset.RoleNumeric:
				if n, ok := view.Number(i, col); ok {
					args[j] = n
				} else {
					args[j] = nil
				}
			default:
				args[j] = cell
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return errors.Wrapf(err, "failed to load row %d", i)
		}
	}
	return errors.Wrap(tx.Commit(), "failed to commit load transaction")
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func stringify(values []interface{}) []string {
	out := make([]string, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case nil:
			out[i] = ""
		case []byte:
			out[i] = string(val)
		case float64:
			out[i] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			out[i] = fmt.Sprint(val)
		}
	}
	return out
}
