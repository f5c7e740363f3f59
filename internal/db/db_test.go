package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations(t *testing.T) {
	conn, err := Connect(DriverSQLite, "file::memory:")
	require.NoError(t, err)
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	require.NoError(t, RunMigrations(conn))
	// Second run is a no-op
	require.NoError(t, RunMigrations(conn))

	var codes []string
	require.NoError(t, conn.Select(&codes, "SELECT code FROM prediction_types ORDER BY code"))
	assert.ElementsMatch(t, []string{"dnf", "fastest_lap", "pole", "podium", "top10", "winner"}, codes)

	var foreignKeys int
	require.NoError(t, conn.Get(&foreignKeys, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, foreignKeys)
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect("nope", "whatever")
	assert.Error(t, err)
}
