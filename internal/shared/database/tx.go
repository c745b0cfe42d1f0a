package database

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Bind returns a gorm handle that runs its statements on tx. Repositories use
// it to join a transaction opened by the service layer.
func Bind(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	g := db.WithContext(ctx)
	if tx == nil {
		return g
	}
	g.Statement.ConnPool = tx
	return g
}

// NowUTC is the gorm clock. Timestamps stay comparable as text on sqlite.
func NowUTC() time.Time {
	return time.Now().UTC()
}
