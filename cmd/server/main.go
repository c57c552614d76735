// Package main implements the entry point for the stockroom API server,
// which manages accounts and the products they own.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/stockroom-dev/stockroom-api/internal/config"
	"github.com/stockroom-dev/stockroom-api/internal/platform/logger"
	"github.com/stockroom-dev/stockroom-api/internal/platform/postgres"
)

// options are the command-line flags.
type options struct {
	configFile string
	migrate    string
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "stockroom-api: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags reads command-line flags.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("stockroom-api", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.configFile, "config", "c", "", "path to a config file (env vars take precedence)")
	fs.StringVar(&opts.migrate, "migrate", "", "run a migration command (up|down|status|version) and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch opts.migrate {
	case "", postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus, postgres.MigrateVersion:
	default:
		return options{}, fmt.Errorf("unknown migrate command %q", opts.migrate)
	}
	return opts, nil
}

// run loads configuration, connects to the database and either runs a
// migration command or serves HTTP until the process is signalled.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := initializeConfig(opts)
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("environment", cfg.Server.Environment))

	db, err := postgres.Open(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.migrate != "" {
		defer func() {
			if err := postgres.Close(db); err != nil {
				log.Error("failed to close database", slog.String("error", err.Error()))
			}
		}()
		return postgres.Migrate(ctx, db, opts.migrate, log)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = postgres.Close(db)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

func initializeConfig(opts options) (*config.Config, error) {
	var loadOpts []config.Option
	if opts.configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(opts.configFile))
	}
	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
