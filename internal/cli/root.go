// Package cli implements the placementwiz command line.
//
// Commands are built around an [App] that carries the loaded configuration
// and every dependency a command needs, so tests can swap in a temp store,
// a buffered printer or a scripted interactive runner.
//
// Failures print a message through the printer and return an [ExitError];
// [Execute] turns that into the process exit status.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"placementwiz/internal/config"
	"placementwiz/internal/flow"
	"placementwiz/internal/logging"
	"placementwiz/internal/manifest"
	"placementwiz/internal/output"
	"placementwiz/internal/posting"
	"placementwiz/internal/session"
	"placementwiz/internal/store"
	"placementwiz/internal/tui"
)

// InteractiveRunner runs a session interactively until submit or cancel.
type InteractiveRunner func(ctx context.Context, sess *session.Session) (*posting.Posting, error)

// App holds the dependencies shared by all commands.
type App struct {
	Config   *config.Config
	Store    store.Store
	Registry *flow.Registry
	Printer  *output.Printer
	Logger   *zap.Logger

	// Interactive runs the wizard for the new command. Defaults to the
	// Bubble Tea front end.
	Interactive InteractiveRunner

	// Now overrides the session clock. Nil uses time.Now.
	Now func() time.Time
}

// NewApp wires an [App] from configuration: logger, flow registry (from the
// configured manifest, or the built-in flows), store and printer.
//
// The caller owns the returned store and should close it.
func NewApp(cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	registry, err := loadRegistry(cfg.Flows)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, err
	}

	printer := output.NewPrinter()
	printer.SetTruncateLength(cfg.Output.TruncateLength)

	logger.Debug("App initialized",
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("manifest", cfg.Flows.ManifestPath))

	return &App{
		Config:   cfg,
		Store:    st,
		Registry: registry,
		Printer:  printer,
		Logger:   logger,
		Interactive: func(ctx context.Context, sess *session.Session) (*posting.Posting, error) {
			return tui.Run(ctx, sess)
		},
	}, nil
}

func loadRegistry(cfg config.FlowsConfig) (*flow.Registry, error) {
	if cfg.ManifestPath == "" {
		return flow.NewRegistry(), nil
	}
	m, err := manifest.ReadFromFile(cfg.ManifestPath)
	if err != nil {
		return nil, err
	}
	return flow.NewRegistryFromManifest(m)
}

func (app *App) logger() *zap.Logger {
	if app.Logger == nil {
		return zap.NewNop()
	}
	return app.Logger
}

// fail prints err and returns the exit error for it.
func (app *App) fail(err error) error {
	app.Printer.Error(err.Error())
	return NewExitError(1)
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "placementwiz",
		Short: "Create and review placement postings",
		Long: `placementwiz walks placement-cell staff through posting jobs,
internships and exams one section at a time, then keeps the submitted
postings in an approval queue.

Flows can be customised with a CSV or YAML flow manifest (flows.manifest_path).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newNewCommand(app),
		newStepsCommand(app),
		newKindsCommand(app),
		newListCommand(app),
		newQueueCommand(app),
		newShowCommand(app),
		newApproveCommand(app),
		newRejectCommand(app),
		newBookmarkCommand(app),
		newUnbookmarkCommand(app),
		newBookmarksCommand(app),
	)

	return rootCmd
}

// ExecuteResult is the outcome of a CLI run.
type ExecuteResult struct {
	ExitCode int
	Err      error
}

// RunWithConfig builds the app from cfg and runs the CLI with args.
func RunWithConfig(cfg *config.Config, args []string) ExecuteResult {
	app, err := NewApp(cfg)
	if err != nil {
		output.NewPrinterWithWriter(os.Stderr).Error(err.Error())
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	defer func() {
		_ = app.Logger.Sync()
		if err := app.Store.Close(); err != nil {
			app.Logger.Warn("Failed to close store", zap.Error(err))
		}
	}()

	return run(app, args)
}

func run(app *App, args []string) ExecuteResult {
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		// Cobra usage errors (unknown command, bad args) land here.
		app.Printer.Error(err.Error())
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return ExecuteResult{}
}

// Execute loads configuration, runs the CLI with os.Args and exits.
func Execute() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	result := RunWithConfig(cfg, os.Args[1:])
	os.Exit(result.ExitCode)
}
