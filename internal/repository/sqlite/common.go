package sqlite

import (
	"context"
	"database/sql"
	"errors"

	apperrors "timeguard/internal/errors"
)

// classifyError maps a driver error onto the application error types
func classifyError(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(operation, err)
	default:
		return apperrors.NewDatabaseError(operation, err)
	}
}

// bounded applies the repository query timeout to ctx when it is positive.
func (r *SQLiteRepository) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// insert runs an INSERT and returns the new row id
func insert(ctx context.Context, db *sql.DB, table, query string, args ...interface{}) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classifyError("insert into "+table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, classifyError("read id of "+table, err)
	}
	return id, nil
}

// queryAll scans every row selected by query
func queryAll[T any](ctx context.Context, db *sql.DB, entity, query string, scan func(Scanner) (*T, error), args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError("query "+entity, err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, classifyError("scan "+entity, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError("scan "+entity, err)
	}
	return out, nil
}
