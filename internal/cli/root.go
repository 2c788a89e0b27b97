// Package cli командная строка планировщика поверх тех же сервисов и use case-ов, что и HTTP API.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SmartScheduler/internal/app"
	"github.com/m04kA/SMC-SmartScheduler/internal/config"
	"github.com/m04kA/SMC-SmartScheduler/pkg/logger"
)

const defaultConfigPath = "config.toml"

type options struct {
	configPath string
	sqlitePath string
	verbose    bool
	userID     int64
}

// NewRootCommand собирает дерево команд scheduler-cli
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "scheduler-cli",
		Short: "Smart Scheduler: tasks, free slots and conflicts from the terminal",
		Long: `scheduler-cli works against the same database as the HTTP service.

By default it uses the local SQLite file from config.toml and applies
migrations on first use.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "Path to config.toml")
	root.PersistentFlags().StringVar(&opts.sqlitePath, "db", "", "SQLite file, overrides the configured database")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log service calls to stderr")
	root.PersistentFlags().Int64Var(&opts.userID, "user", 0, "User whose work window is used (default from config)")

	root.AddCommand(newTaskCommand(opts))
	root.AddCommand(newScheduleCommand(opts))
	root.AddCommand(newStatsCommand(opts))
	root.AddCommand(newMigrateCommand(opts))

	return root
}

// Execute запускает CLI
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.sqlitePath != "" {
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.URL = ""
		cfg.Database.SQLitePath = o.sqlitePath
	}
	if o.userID <= 0 {
		o.userID = cfg.Schedule.DefaultUserID
	}
	return cfg, nil
}

func (o *options) logger(w io.Writer) (*logger.Logger, error) {
	level := "error"
	if o.verbose {
		level = "info"
	}
	return logger.NewWithWriter(w, level)
}

// withApp открывает базу, выполняет fn и закрывает соединение
func (o *options) withApp(cmd *cobra.Command, migrate bool, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	log, err := o.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, cfg, log, app.Options{Migrate: migrate && cfg.Database.AutoMigrate})
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
