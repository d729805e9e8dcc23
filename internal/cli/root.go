// Package cli wires configuration, logging and the database into the
// moneymate subcommands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/leesanghooooon/moneymate-sub001/internal/config"
	"github.com/leesanghooooon/moneymate-sub001/internal/database"
	"github.com/leesanghooooon/moneymate-sub001/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "moneymate",
		Short:         "Household ledger server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ./config.yaml when present)")

	root.AddCommand(newServeCmd(&cfgPath), newMigrateCmd(&cfgPath))
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app is what every subcommand starts from.
type app struct {
	cfg *config.Config
	log zerolog.Logger
	db  *gorm.DB
}

// bootstrap loads and validates configuration, opens the database and
// brings schema, reference codes and calendar days up to date.
func bootstrap(ctx context.Context, cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.New(cfg.Log)

	db, err := database.Init(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := prepareSchema(ctx, cfg, log, db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return &app{cfg: cfg, log: log, db: db}, nil
}

func prepareSchema(ctx context.Context, cfg *config.Config, log zerolog.Logger, db *gorm.DB) error {
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	if err := database.Seed(ctx, db); err != nil {
		return fmt.Errorf("seed common codes: %w", err)
	}
	added, err := database.SeedCalendar(db, cfg.Calendar.FromYear, cfg.Calendar.ToYear)
	if err != nil {
		return fmt.Errorf("seed calendar: %w", err)
	}
	log.Info().
		Str("driver", db.Dialector.Name()).
		Int("from_year", cfg.Calendar.FromYear).
		Int("to_year", cfg.Calendar.ToYear).
		Int64("calendar_days_added", added).
		Msg("database ready")
	return nil
}
