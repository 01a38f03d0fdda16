// Package querybuilder renders the small set of parameterized Postgres
// statements the repositories issue. Values are always bound as $n
// placeholders; only identifiers and fixed SQL fragments are inlined.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

type binder struct {
	values []any
}

func (b *binder) bind(value any) string {
	b.values = append(b.values, value)
	return "$" + strconv.Itoa(len(b.values))
}

// Condition is one AND-ed term of a WHERE clause.
type Condition interface {
	render(sql *strings.Builder, b *binder)
}

type conditionFunc func(sql *strings.Builder, b *binder)

func (f conditionFunc) render(sql *strings.Builder, b *binder) {
	f(sql, b)
}

func Eq(column string, value any) Condition {
	return conditionFunc(func(sql *strings.Builder, b *binder) {
		sql.WriteString(column)
		sql.WriteString(" = ")
		sql.WriteString(b.bind(value))
	})
}

// AnyInt64 matches column against one bound bigint array, so the statement
// text does not grow with the number of ids.
func AnyInt64(column string, values []int64) Condition {
	return conditionFunc(func(sql *strings.Builder, b *binder) {
		sql.WriteString(column)
		sql.WriteString(" = ANY(")
		sql.WriteString(b.bind(pq.Array(values)))
		sql.WriteString(")")
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(sql *strings.Builder, _ *binder) {
		sql.WriteString(column)
		sql.WriteString(" IS NULL")
	})
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.where = append(s.where, conditions...)
	return s
}

func (s *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, parts...)
	return s
}

func (s *SelectBuilder) Limit(limit int) *SelectBuilder {
	s.limit = limit
	return s
}

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	if len(s.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(s.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var sql strings.Builder
	b := &binder{}
	sql.WriteString("SELECT ")
	sql.WriteString(strings.Join(s.columns, ", "))
	sql.WriteString(" FROM ")
	sql.WriteString(s.table)
	writeWhere(&sql, b, s.where)
	if len(s.orderBy) > 0 {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(s.orderBy, ", "))
	}
	if s.limit > 0 {
		sql.WriteString(" LIMIT ")
		sql.WriteString(strconv.Itoa(s.limit))
	}

	return sql.String(), b.values, nil
}

type InsertBuilder struct {
	table      string
	columns    []string
	rows       [][]any
	onConflict string
	returning  []string
	err        error
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = append([]string(nil), columns...)
	return i
}

func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.rows = append(i.rows, append([]any(nil), values...))
	return i
}

// OnConflictDoNothing skips rows violating the unique index on target.
func (i *InsertBuilder) OnConflictDoNothing(target ...string) *InsertBuilder {
	if len(target) == 0 {
		i.onConflict = "ON CONFLICT DO NOTHING"
		return i
	}
	i.onConflict = "ON CONFLICT (" + strings.Join(target, ", ") + ") DO NOTHING"
	return i
}

func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	i.returning = append(i.returning, columns...)
	return i
}

func (i *InsertBuilder) ToSQL() (string, []any, error) {
	if i.err != nil {
		return "", nil, i.err
	}
	if strings.TrimSpace(i.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(i.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(i.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var sql strings.Builder
	b := &binder{}
	sql.WriteString("INSERT INTO ")
	sql.WriteString(i.table)
	sql.WriteString(" (")
	sql.WriteString(strings.Join(i.columns, ", "))
	sql.WriteString(") VALUES ")
	for rowIdx, row := range i.rows {
		if len(row) != len(i.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(i.columns))
		}
		if rowIdx > 0 {
			sql.WriteString(", ")
		}
		sql.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				sql.WriteString(", ")
			}
			sql.WriteString(b.bind(value))
		}
		sql.WriteString(")")
	}
	if i.onConflict != "" {
		sql.WriteString(" ")
		sql.WriteString(i.onConflict)
	}
	if len(i.returning) > 0 {
		sql.WriteString(" RETURNING ")
		sql.WriteString(strings.Join(i.returning, ", "))
	}

	return sql.String(), b.values, nil
}

func writeWhere(sql *strings.Builder, b *binder, conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			sql.WriteString(" WHERE ")
		} else {
			sql.WriteString(" AND ")
		}
		c.render(sql, b)
	}
}
