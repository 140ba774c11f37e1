package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mickamy/ownq/internal/config"
	"github.com/mickamy/ownq/internal/store"
	"github.com/mickamy/ownq/orm"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configFile string
	logger     *slog.Logger
	db         *orm.DB
}

// flagKeys maps persistent flags to their config keys.
var flagKeys = map[string]string{
	"dialect":   "dialect",
	"driver":    "driver",
	"dsn":       "dsn",
	"debug":     "debug",
	"log-level": "log_level",
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ownq",
		Short: "Find items whose three collections share one owner",
		Long: `ownq stores items that reference three collections (slots A, B and C)
and finds the items whose collections all belong to a given owner.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.db == nil {
				return nil
			}
			return a.db.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	pf.String("dialect", "", "store dialect: sqlite, mysql or postgres (default sqlite)")
	pf.String("driver", "", "database/sql driver name (default depends on dialect)")
	pf.String("dsn", "", "data source name (default file:ownq.db)")
	pf.Bool("debug", false, "log every SQL statement")
	pf.String("log-level", "", "log level: debug, info, warn or error (default info)")

	root.AddCommand(
		newInitCmd(a),
		newSeedCmd(a),
		newFindCmd(a),
		newShowCmd(a),
		newDemoCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	v, err := config.New(a.configFile)
	if err != nil {
		return err
	}
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Log.Level}))

	db, err := store.Open(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	if cfg.Log.Debug {
		db = db.Debug(orm.SlogLogger{L: a.logger})
	}
	a.db = db
	a.logger.Debug("store opened", slog.String("dialect", cfg.Database.Dialect.Name()), slog.String("driver", cfg.Database.Driver))
	return nil
}
