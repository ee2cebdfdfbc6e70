// Package dbtest opens throwaway in-memory databases for package tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/EmpoweredVote/roster-backend/internal/db"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var seq atomic.Int64

// Open returns a fresh in-memory SQLite database with models migrated. The
// database is private to the calling test and closed on cleanup.
func Open(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	conn, err := db.Open(sqlite.Open(dsn), db.Options{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		Log:          zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })

	if len(models) > 0 {
		if err := conn.AutoMigrate(models...); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	return conn
}
