package schema

import (
	"testing"

	"github.com/EmpoweredVote/roster-backend/internal/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	conn := dbtest.Open(t)
	require.NoError(t, Migrate(conn))
	// running twice is harmless
	require.NoError(t, Migrate(conn))

	for _, table := range []string{"users", "sessions", "designations", "addresses", "sample_users"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}
