package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	for _, name := range []string{"sqlite", "Postgres", "MYSQL"} {
		_, err := ParseDialect(name)
		assert.NoError(t, err, name)
	}

	_, err := ParseDialect("oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestRebind(t *testing.T) {
	q := "SELECT 1 FROM t WHERE a = ? AND b = ?"
	assert.Equal(t, q, SQLite.rebind(q))
	assert.Equal(t, q, MySQL.rebind(q))
	assert.Equal(t, "SELECT 1 FROM t WHERE a = $1 AND b = $2", Postgres.rebind(q))
}

func TestInsertIgnore(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO household_members (household_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		SQLite.insertIgnore("household_members", "household_id", "user_id"))
	assert.Equal(t,
		"INSERT IGNORE INTO household_members (household_id, user_id) VALUES (?, ?)",
		MySQL.insertIgnore("household_members", "household_id", "user_id"))
}

func TestLockHousehold(t *testing.T) {
	assert.NotContains(t, SQLite.lockHousehold(), "FOR UPDATE")
	assert.Contains(t, Postgres.lockHousehold(), "FOR UPDATE")
	assert.Contains(t, MySQL.lockHousehold(), "FOR UPDATE")
}
