package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const pgUndefinedTable = "42P01"

// IsUniqueViolation reports whether the provided error references a Postgres
// unique violation constraint. When constraintName is provided, the helper looks
// for the constraint text in the error message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}

// IsRelationMissing reports whether the error means an expected table is
// absent (schema not migrated yet). Subsystems that depend on optional tables
// use this to disable themselves instead of crashing; matching stays
// string-based so the check also fires on errors that lost their driver type.
func IsRelationMissing(err error) bool {
	if err == nil {
		return false
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) && pgxErr.Code == pgUndefinedTable {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUndefinedTable {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, pgUndefinedTable) ||
		strings.Contains(msg, "does not exist") ||
		(strings.Contains(msg, "relation") && strings.Contains(msg, "exist")) ||
		strings.Contains(msg, "no such table")
}
