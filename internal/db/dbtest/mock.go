package dbtest

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/EmpoweredVote/roster-backend/internal/db"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Mock returns a gorm handle speaking the Postgres dialect to sqlmock.
// Queries are matched as regular expressions. Unmet expectations fail the
// test on cleanup.
func Mock(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}

	conn, err := db.Open(postgres.New(postgres.Config{Conn: sqlDB}), db.Options{Log: zerolog.Nop()})
	if err != nil {
		t.Fatalf("open mock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
		_ = sqlDB.Close()
	})
	return conn, mock
}
