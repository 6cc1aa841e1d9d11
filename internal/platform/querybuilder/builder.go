// Package querybuilder renders the Postgres statements the export
// repositories need: multi-row inserts with $n placeholders and an optional
// ON CONFLICT suffix, and the ordered batch listing.
package querybuilder

import (
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// MaxBindParams is the Postgres wire protocol limit on parameters per statement.
const MaxBindParams = 65535

var ErrInvalidStatement = crerr.New("invalid statement")

func invalid(format string, args ...any) error {
	return crerr.Wrapf(ErrInvalidStatement, format, args...)
}

// statement accumulates SQL text and its positional arguments.
type statement struct {
	sql  strings.Builder
	args []any
}

func (s *statement) write(parts ...string) {
	for _, part := range parts {
		s.sql.WriteString(part)
	}
}

func (s *statement) list(items []string) {
	s.sql.WriteString(strings.Join(items, ", "))
}

func (s *statement) bind(value any) {
	s.args = append(s.args, value)
	s.sql.WriteByte('$')
	s.sql.WriteString(strconv.Itoa(len(s.args)))
}

func (s *statement) tuple(values []any) {
	s.sql.WriteByte('(')
	for i, value := range values {
		if i > 0 {
			s.sql.WriteString(", ")
		}
		s.bind(value)
	}
	s.sql.WriteByte(')')
}

type SelectBuilder struct {
	columns []string
	table   string
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = strings.TrimSpace(table)
	return b
}

func (b *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

// Limit of zero or less means no LIMIT clause.
func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, invalid("select without columns")
	case b.table == "":
		return "", nil, invalid("select without table")
	}

	var st statement
	st.write("SELECT ")
	st.list(b.columns)
	st.write(" FROM ", b.table)
	if len(b.orderBy) > 0 {
		st.write(" ORDER BY ")
		st.list(b.orderBy)
	}
	if b.limit > 0 {
		st.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	return st.sql.String(), st.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: strings.TrimSpace(table)}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values adds one row. Call it once per row for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, e.g. an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case b.table == "":
		return "", nil, invalid("insert without table")
	case len(b.columns) == 0:
		return "", nil, invalid("insert into %s without columns", b.table)
	case len(b.rows) == 0:
		return "", nil, invalid("insert into %s without rows", b.table)
	}
	if n := len(b.rows) * len(b.columns); n > MaxBindParams {
		return "", nil, invalid("insert into %s binds %d parameters, limit is %d", b.table, n, MaxBindParams)
	}

	st := statement{args: make([]any, 0, len(b.rows)*len(b.columns))}
	st.write("INSERT INTO ", b.table, " (")
	st.list(b.columns)
	st.write(") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, invalid("insert into %s row %d has %d values for %d columns", b.table, i, len(row), len(b.columns))
		}
		if i > 0 {
			st.write(", ")
		}
		st.tuple(row)
	}
	if b.suffix != "" {
		st.write(" ", b.suffix)
	}
	return st.sql.String(), st.args, nil
}
