package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/planet-api/internal/config"
	"github.com/phrazzld/planet-api/internal/platform/logger"
	"github.com/phrazzld/planet-api/internal/platform/migrations"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// execute runs the root command and returns the process exit code.
func execute() int {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "planet",
		Short:         "Users and groups service",
		Long:          "HTTP/JSON service managing users, groups and group memberships.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file (YAML, TOML or JSON); PLANET_* environment variables override it")

	rootCmd.AddCommand(
		newServeCmd(&configFile),
		newMigrateCmd(&configFile),
		newVersionCmd(),
	)
	return rootCmd
}

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log := logger.Setup(cfg.Server.LogLevel)
			log.Info("Server configuration loaded",
				"port", cfg.Server.Port,
				"log_level", cfg.Server.LogLevel,
				"backend", cfg.Database.Backend)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := newApplication(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.Run(ctx)
		},
	}
}

func newMigrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|reset|status|version]",
		Short:     "Apply or inspect database migrations",
		Long:      "Runs a goose migration command against the configured database. Defaults to up.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrations.Commands,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			cfg, err := config.Load(*configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log := logger.Setup(cfg.Server.LogLevel)

			return runMigrations(cmd.Context(), cfg, log, command)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "planet version %s (commit: %s)\n", version, commit)
			return err
		},
	}
}
