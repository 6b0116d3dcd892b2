package database

import (
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// Paginate applies an optional limit and offset to a select query. SQLite
// rejects OFFSET without LIMIT, so an unbounded limit is added there when only
// an offset is given.
func Paginate(q *bun.SelectQuery, limit, offset *int) *bun.SelectQuery {
	if limit != nil {
		q = q.Limit(*limit)
	}
	if offset != nil && *offset > 0 {
		if limit == nil && q.Dialect().Name() == dialect.SQLite {
			q = q.Limit(-1)
		}
		q = q.Offset(*offset)
	}
	return q
}
