package database_test

import (
	"errors"
	"fmt"
	"testing"

	"go-leave/internal/shared/database"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintViolations(t *testing.T) {
	pgFK := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	assert.True(t, database.IsForeignKeyViolation(pgFK))
	assert.False(t, database.IsUniqueViolation(pgFK))

	myDup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.True(t, database.IsUniqueViolation(myDup))

	myCheck := &mysql.MySQLError{Number: 3819}
	assert.True(t, database.IsCheckViolation(myCheck))

	sqliteCheck := errors.New("CHECK constraint failed: available_leaves >= 0")
	assert.True(t, database.IsCheckViolation(sqliteCheck))
	assert.False(t, database.IsForeignKeyViolation(sqliteCheck))

	assert.False(t, database.IsUniqueViolation(nil))
}
