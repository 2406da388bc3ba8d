package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ListQuery accumulates WHERE conditions with PostgreSQL-style positional
// placeholders. Conditions are written with a single "?" which is rewritten
// to the next $n.
//
//	q := dbx.NewListQuery()
//	q.Where("role = ?", "admin")
//	q.Where("(email ILIKE ? OR name ILIKE ?)", like, like)
//	sql := "SELECT ... FROM users" + q.WhereClause() + q.OrderBy(...) + q.Page(0, 20)
type ListQuery struct {
	conds []string
	args  []any
}

func NewListQuery() *ListQuery {
	return &ListQuery{}
}

// Where adds a condition. The number of "?" in cond must match len(args).
func (q *ListQuery) Where(cond string, args ...any) *ListQuery {
	var b strings.Builder
	n := 0
	for _, r := range cond {
		if r == '?' && n < len(args) {
			q.args = append(q.args, args[n])
			n++
			fmt.Fprintf(&b, "$%d", len(q.args))
			continue
		}
		b.WriteRune(r)
	}
	q.conds = append(q.conds, b.String())
	return q
}

// WhereIf adds the condition only when ok is true.
func (q *ListQuery) WhereIf(ok bool, cond string, args ...any) *ListQuery {
	if ok {
		q.Where(cond, args...)
	}
	return q
}

// WhereClause renders " WHERE a AND b" or "" when no conditions were added.
func (q *ListQuery) WhereClause() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}

// Args returns the positional arguments collected so far.
func (q *ListQuery) Args() []any {
	return q.args
}

// OrderBy renders an ORDER BY clause. sortBy is looked up in columns, so only
// whitelisted columns reach the SQL text; unknown keys fall back to def.
func (q *ListQuery) OrderBy(columns map[string]string, sortBy, def string, desc bool) string {
	col, ok := columns[sortBy]
	if !ok {
		col = def
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", col, dir)
}

// Page appends LIMIT/OFFSET placeholders for a zero-based page.
func (q *ListQuery) Page(page, size int) string {
	q.args = append(q.args, size, page*size)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(q.args)-1, len(q.args))
}

// Count runs SELECT COUNT(*) over from with the conditions collected so far.
// Call it before Page, which appends the LIMIT/OFFSET arguments.
func (q *ListQuery) Count(ctx context.Context, db DBTX, from string) (int64, error) {
	var n int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+from+q.WhereClause(), q.Args()...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Scanner is implemented by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// CollectRows scans every row with scan and closes rows. The result is
// never nil.
func CollectRows[T any](rows *sql.Rows, scan func(Scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
