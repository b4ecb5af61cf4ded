package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestMigrationVersion(t *testing.T) {
	version, err := LatestMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestParseMigrationVersion(t *testing.T) {
	version, ok := parseMigrationVersion("000001_create_warehouse_tables.up.sql")
	require.True(t, ok)
	assert.Equal(t, uint(1), version)

	_, ok = parseMigrationVersion("bogus.up.sql")
	assert.False(t, ok)
}
