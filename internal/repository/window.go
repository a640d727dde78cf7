package repository

import (
	"fmt"

	"github.com/insyte-io/linktrack/internal/model"
)

// appendWindow adds half-open timestamp bounds to a query that already
// has a WHERE clause. Zero bounds are skipped entirely so unbounded
// windows scan the whole log.
func appendWindow(query, column string, w model.Window, args []any) (string, []any) {
	if !w.Start.IsZero() {
		args = append(args, w.Start)
		query += fmt.Sprintf(" AND %s >= $%d", column, len(args))
	}
	if !w.End.IsZero() {
		args = append(args, w.End)
		query += fmt.Sprintf(" AND %s < $%d", column, len(args))
	}
	return query, args
}
