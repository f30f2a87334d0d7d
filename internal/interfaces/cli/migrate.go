package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/turtacn/LexConnect/internal/infrastructure/database/postgres"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// MigrationState is the schema version reported by `migrate status`.
type MigrationState struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

func (s MigrationState) String() string {
	if s.Dirty {
		return fmt.Sprintf("version %d (dirty)", s.Version)
	}
	return fmt.Sprintf("version %d", s.Version)
}

// Seams for tests.
var (
	runMigrations     = postgres.RunMigrations
	rollbackMigration = postgres.RollbackMigration
	migrationStatus   = postgres.MigrationStatus
	forceMigration    = postgres.ForceMigrationVersion
)

// NewMigrateCmd manages the PostgreSQL schema.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back PostgreSQL migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cliCtx, dsn, err := migrationTarget(cmd)
				if err != nil {
					return err
				}
				if err := runMigrations(dsn); err != nil {
					return err
				}
				cliCtx.Logger.Info("migrations applied")
				return printMigrationStatus(cmd, dsn)
			},
		},
		&cobra.Command{
			Use:   "down <steps>",
			Short: "Roll back the given number of migrations",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps, err := strconv.Atoi(args[0])
				if err != nil || steps <= 0 {
					return errors.InvalidParam("steps must be a positive integer").WithDetail("steps=" + args[0])
				}
				cliCtx, dsn, err := migrationTarget(cmd)
				if err != nil {
					return err
				}
				if err := rollbackMigration(dsn, steps); err != nil {
					return err
				}
				cliCtx.Logger.Info("migrations rolled back", logging.Int("steps", steps))
				return printMigrationStatus(cmd, dsn)
			},
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Record a schema version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil || v < 0 {
					return errors.InvalidParam("version must be a non-negative integer").WithDetail("version=" + args[0])
				}
				cliCtx, dsn, err := migrationTarget(cmd)
				if err != nil {
					return err
				}
				if err := forceMigration(dsn, v); err != nil {
					return err
				}
				cliCtx.Logger.Warn("migration version forced", logging.Int("version", v))
				return printMigrationStatus(cmd, dsn)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, dsn, err := migrationTarget(cmd)
				if err != nil {
					return err
				}
				return printMigrationStatus(cmd, dsn)
			},
		},
	)
	return cmd
}

func migrationTarget(cmd *cobra.Command) (*CLIContext, string, error) {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return nil, "", err
	}
	return cliCtx, postgres.BuildDSN(cliCtx.Config.Database), nil
}

func printMigrationStatus(cmd *cobra.Command, dsn string) error {
	version, dirty, err := migrationStatus(dsn)
	if err != nil {
		return err
	}
	return PrintResult(cmd, MigrationState{Version: version, Dirty: dirty})
}

//Personal.AI order the ending
