package commands

import (
	"io"
	"log/slog"
	"time"

	"depositrecon/internal/config"
	"depositrecon/internal/repo"
	"depositrecon/internal/summary"
	"depositrecon/pkg/database"
	"depositrecon/pkg/utils"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

type globalOptions struct {
	configPath string
	envFile    string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "depositrecon",
		Short:   "Daily deposit reconciliation against the settlement API",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to depositrecon.yaml")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newFetchCommand(opts),
		newReportCommand(opts),
		newHistoryCommand(opts),
		newPurgeCommand(opts),
		newConfigCommand(opts),
	)

	return rootCmd
}

func (o *globalOptions) load(logOut io.Writer) error {
	if err := utils.LoadEnv(o.envFile); err != nil {
		return errors.Wrap(err, "loading env file")
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	return nil
}

func (o *globalOptions) openRepository() (*repo.Repository, func(), error) {
	db, err := database.New(
		database.WithLogger(o.logger),
		database.WithMaxOpenConns(o.cfg.Database.MaxOpenConns),
		database.WithPath(o.cfg.Database.Path),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening database")
	}

	repository, err := repo.New(db.Get())
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if err := repository.Migrate(); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "running migrations")
	}

	return repository, func() { db.Close() }, nil
}

func (o *globalOptions) aggregator() *summary.Aggregator {
	return summary.NewAggregator(
		summary.WithClassifier(summary.NewMarkerClassifier(o.cfg.Report.DeductionMarkers...)),
		summary.WithLogger(o.logger),
	)
}

// location is the schedule zone. Load has already validated it.
func (o *globalOptions) location() *time.Location {
	loc, err := o.cfg.Schedule.Location()
	if err != nil {
		return time.Local
	}
	return loc
}
