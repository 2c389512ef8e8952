// Package storage loads output tables into an in-memory SQLite database so
// they can be explored with ad-hoc SQL. Nothing is persisted.
package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/pable/go-mm-features/internal/tabular"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB holding an in-memory database.
type DB struct {
	conn *sql.DB
}

// Open creates an empty in-memory database.
func Open() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Each pooled connection to :memory: would see its own empty database.
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Import creates table from the frame's header and bulk-inserts its rows in
// a transaction. Columns get NUMERIC affinity so numeric text compares as
// numbers; blank cells become NULL.
func (db *DB) Import(table string, f *tabular.Frame) error {
	if len(f.Columns) == 0 {
		return fmt.Errorf("import %s: no columns", table)
	}

	defs := make([]string, len(f.Columns))
	names := make([]string, len(f.Columns))
	marks := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = quoteIdent(c)
		defs[i] = names[i] + " NUMERIC"
		marks[i] = "?"
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(names, ", "), strings.Join(marks, ",")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(f.Columns))
	for r, row := range f.Rows {
		for i, cell := range row {
			if strings.TrimSpace(cell) == "" {
				args[i] = nil
			} else {
				args[i] = cell
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, r+1, err)
		}
	}
	return tx.Commit()
}

// QueryRaw runs an arbitrary query and returns column names and rows
// rendered as strings. NULL renders as an empty string.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			rec[i] = render(v)
		}
		out = append(out, rec)
	}
	return cols, out, rows.Err()
}

func render(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
