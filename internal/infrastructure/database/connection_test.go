package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HIMU202508/TicketingSystem/internal/shared/config"
)

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(&config.DatabaseConfig{
		Host:     "db.internal",
		Port:     3307,
		Username: "svc",
		Password: "p@ss",
		Database: "ticketing",
	})

	assert.Contains(t, dsn, "svc:p@ss@tcp(db.internal:3307)/ticketing")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "collation=utf8mb4_general_ci")
}

func TestDialector_UnknownDriver(t *testing.T) {
	_, err := Dialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestInit_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "ticketing.db"),
	}

	require.NoError(t, Init(context.Background(), cfg))
	t.Cleanup(func() { _ = Close() })

	require.NotNil(t, Get())
	assert.NoError(t, Ping(context.Background()))
}
