package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSQLiteDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want bool
	}{
		{"", true},
		{"memory", true},
		{"file:test?mode=memory&cache=shared", true},
		{"data/cassie.db", true},
		{"host=localhost user=cassie dbname=cassie sslmode=disable", false},
		{"postgres://cassie@localhost:5432/cassie", false},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSQLiteDSN(tt.dsn))
		})
	}
}

func TestOpenSQLiteFile(t *testing.T) {
	path := t.TempDir() + "/nested/cassie.db"

	db, err := Open(path)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.NoError(t, sqlDB.Ping())
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
