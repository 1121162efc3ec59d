package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE raised by Postgres on unique index violations.
const uniqueViolationCode = "23505"

// query runs a parameterized statement and scans every returned row into T.
// Arguments are bound positionally; never format values into sql.
func query[T any](db *gorm.DB, sql string, args ...interface{}) ([]T, error) {
	var rows []T
	if err := db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// exec runs a parameterized mutating statement and reports the affected row count.
func exec(db *gorm.DB, sql string, args ...interface{}) (int64, error) {
	result := db.Exec(sql, args...)
	return result.RowsAffected, result.Error
}

// IsUniqueViolation reports whether err came from a uniqueness constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}

	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
