package migrate

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/config"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/database"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/migration"
	"github.com/HIMU202508/TicketingSystem/internal/shared/biztime"
	"github.com/HIMU202508/TicketingSystem/internal/shared/logger"
)

var (
	env   string
	name  string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new SQL migration file for every supported database driver.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// initEnv loads configuration, the logger and the database, and returns the goose strategy
// for the configured driver.
func initEnv(ctx context.Context) (*migration.GooseStrategy, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(ctx, &cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return migration.NewGooseStrategy(cfg.Database.Driver, log), log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	strategy, log, err := initEnv(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env)

	if err := strategy.Migrate(ctx, database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	strategy, log, err := initEnv(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)

	rolledBack, err := strategy.MigrateDown(ctx, database.Get(), steps)
	if err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	fmt.Printf("Rolled back %d migration(s)\n", rolledBack)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	strategy, _, err := initEnv(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	version, err := strategy.GetVersion(ctx, database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	statuses, err := strategy.Status(ctx, database.Get())
	if err != nil {
		return fmt.Errorf("failed to get detailed status: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment:     %s\n", env)
	fmt.Printf("  Current Version: %d\n\n", version)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
	for _, st := range statuses {
		state := "pending"
		if st.Applied {
			state = "applied"
		}
		fmt.Fprintf(tw, "%05d\t%s\t%s\n", st.Version, state, st.Path)
	}
	return tw.Flush()
}

// runCreate needs no database; it writes into the source tree for each driver.
func runCreate(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger()

	for _, driver := range []string{database.DriverMySQL, database.DriverSQLite} {
		strategy := migration.NewGooseStrategy(driver, log)
		if err := strategy.Create(migration.ScriptsDir(driver), name); err != nil {
			return err
		}
	}

	fmt.Printf("Migration '%s' created for mysql and sqlite\n", name)
	return nil
}
