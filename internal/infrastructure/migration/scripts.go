package migration

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/database"
)

//go:embed scripts/mysql/*.sql scripts/sqlite/*.sql
var embeddedScripts embed.FS

// ScriptsDir is where `migrate create` writes new files, relative to the repository root.
func ScriptsDir(driver string) string {
	return "internal/infrastructure/migration/scripts/" + driver
}

func scriptsFor(driver string) (fs.FS, goose.Dialect, error) {
	var dialect goose.Dialect
	switch driver {
	case database.DriverMySQL:
		dialect = goose.DialectMySQL
	case database.DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, "", fmt.Errorf("no migrations for database driver %q", driver)
	}

	sub, err := fs.Sub(embeddedScripts, "scripts/"+driver)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return sub, dialect, nil
}
