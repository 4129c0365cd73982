package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"mcq-platform/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
// Queries are written with ? placeholders and passed through Rebind.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
}

const pgUniqueViolation = "23505"

// isUniqueViolation recognises duplicate-key failures from every supported driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
			strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
	}
	return strings.Contains(err.Error(), "ORA-00001")
}

// writeError wraps a failed insert or update, turning duplicate keys into CONFLICT.
func writeError(op string, err error) error {
	if isUniqueViolation(err) {
		return domain.NewConflictError("a record with the same unique value already exists", err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// expectAffected returns sql.ErrNoRows when an update or delete matched nothing.
func expectAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for %s: %w", op, err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
