package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"

	mysqlDuplicateEntry      = 1062
	mysqlNoReferencedRow     = 1452
	mysqlCheckConstraintFail = 3819
)

// IsUniqueViolation reports a unique constraint failure on any supported driver.
func IsUniqueViolation(err error) bool {
	return matches(err, pgUniqueViolation, mysqlDuplicateEntry, "unique constraint failed", "duplicate key value")
}

func IsForeignKeyViolation(err error) bool {
	return matches(err, pgForeignKeyViolation, mysqlNoReferencedRow, "foreign key constraint failed", "violates foreign key constraint")
}

func IsCheckViolation(err error) bool {
	return matches(err, pgCheckViolation, mysqlCheckConstraintFail, "check constraint failed", "violates check constraint")
}

func matches(err error, pgCode string, mysqlCode uint16, fallbacks ...string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCode
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlCode
	}

	// sqlite only exposes the failure through its message.
	msg := strings.ToLower(err.Error())
	for _, f := range fallbacks {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}
