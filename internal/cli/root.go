// Package cli implements the ayah command-line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/app"
	"derrclan.com/ayah-printer/internal/ayah"
	"derrclan.com/ayah-printer/internal/config"
	"derrclan.com/ayah-printer/internal/domain/entities"
	"derrclan.com/ayah-printer/internal/logger"
)

// Printer produces formatted ayat.
type Printer interface {
	Print(ctx context.Context, sel entities.Selection) (*ayah.Result, error)
	Random(ctx context.Context) (*ayah.Result, error)
	Today(ctx context.Context) (*ayah.Result, error)
}

// Deps are the collaborators the commands are built from.
type Deps struct {
	LoadConfig func() (*config.Config, error)
	NewPrinter func(cfg *config.Config, logger *zap.Logger) Printer
	Serve      func(ctx context.Context, cfg *config.Config, logger *zap.Logger) error
}

// DefaultDeps reads ./config and talks to the real API.
func DefaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewPrinter: func(cfg *config.Config, logger *zap.Logger) Printer {
			return app.NewPrinter(cfg, logger)
		},
		Serve: app.Serve,
	}
}

// errReported marks a failure whose message was already written to stderr.
var errReported = errors.New("error already reported")

type rootFlags struct {
	verbose     bool
	html        bool
	translation int
}

// NewRootCmd builds the command tree.
func NewRootCmd(deps Deps) *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "ayah",
		Short:         "Print ayat of the Qur'an with Arabic-Indic markers and a translation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log API calls to stderr")
	root.PersistentFlags().BoolVar(&flags.html, "html", false, "print HTML instead of plain text")
	root.PersistentFlags().IntVarP(&flags.translation, "translation", "t", 0, "quran.com translation id (default from config)")

	root.AddCommand(
		newShowCmd(deps, &flags),
		newRandomCmd(deps, &flags),
		newTodayCmd(deps, &flags),
		newServeCmd(deps),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and reports errors on stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd(DefaultDeps())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return err
	}
	return nil
}

// setup loads configuration and builds the printer for one command run.
func setup(deps Deps, flags *rootFlags) (Printer, *zap.Logger, error) {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags.translation > 0 {
		cfg.Quran.TranslationID = flags.translation
	}

	log := zap.NewNop()
	if flags.verbose {
		if log, err = logger.New(cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	return deps.NewPrinter(cfg, log), log, nil
}
