package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation.
// When constraint is non-empty the violated constraint name must contain it.
func isDuplicateKeyError(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != "23505" {
			return false
		}
		return constraint == "" || strings.Contains(pgErr.ConstraintName, constraint)
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
