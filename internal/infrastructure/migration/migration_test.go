package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/database"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return gdb
}

func TestGooseStrategy_UpStatusDown(t *testing.T) {
	ctx := context.Background()
	gdb := openSQLite(t)
	s := NewGooseStrategy(database.DriverSQLite, logger.NewNopLogger())

	require.NoError(t, s.Migrate(ctx, gdb))
	assert.True(t, gdb.Migrator().HasTable("tickets"))
	assert.True(t, gdb.Migrator().HasTable("declined_tickets"))

	version, err := s.GetVersion(ctx, gdb)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	statuses, err := s.Status(ctx, gdb)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	for _, st := range statuses {
		assert.True(t, st.Applied, st.Path)
	}

	// second run is a no-op
	require.NoError(t, s.Migrate(ctx, gdb))

	n, err := s.MigrateDown(ctx, gdb, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, gdb.Migrator().HasTable("tickets"))
}

func TestGooseStrategy_RewritesCancelledStatus(t *testing.T) {
	ctx := context.Background()
	gdb := openSQLite(t)
	s := NewGooseStrategy(database.DriverSQLite, logger.NewNopLogger())

	p, err := s.provider(gdb)
	require.NoError(t, err)
	_, err = p.UpTo(ctx, 2)
	require.NoError(t, err)

	require.NoError(t, gdb.Exec(`INSERT INTO tickets
		(ticket_number, device_type, description, owner_name, facility, status, version, created_at, updated_at)
		VALUES ('MO250101001', 'Monitor', 'Flickers', 'R. Cruz', 'ER', 'cancelled', 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`).Error)

	require.NoError(t, s.Migrate(ctx, gdb))

	var status string
	require.NoError(t, gdb.Raw(`SELECT status FROM tickets WHERE ticket_number = ?`, "MO250101001").Scan(&status).Error)
	assert.Equal(t, "declined", status)
}

func TestScriptsFor_UnknownDriver(t *testing.T) {
	_, _, err := scriptsFor("postgres")
	assert.Error(t, err)
}

func TestNewManager_StrategyByEnvironment(t *testing.T) {
	log := logger.NewNopLogger()

	assert.Equal(t, "gorm_auto_migrate", NewManager("development", database.DriverSQLite, log).GetStrategy().GetName())
	assert.Equal(t, "goose", NewManager("production", database.DriverMySQL, log).GetStrategy().GetName())
}

func TestManager_AutoMigrate(t *testing.T) {
	gdb := openSQLite(t)
	m := NewManager("development", database.DriverSQLite, logger.NewNopLogger())

	require.NoError(t, m.Migrate(context.Background(), gdb))
	assert.True(t, gdb.Migrator().HasTable("tickets"))
	assert.True(t, gdb.Migrator().HasColumn("declined_tickets", "declined_by"))
}
