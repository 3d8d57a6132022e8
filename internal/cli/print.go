package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"derrclan.com/ayah-printer/internal/ayah"
	"derrclan.com/ayah-printer/internal/domain/entities"
)

type showArgs struct {
	surah string
	ayah  string
}

func newShowCmd(deps Deps, flags *rootFlags) *cobra.Command {
	var args showArgs

	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print an ayah or a range of ayat",
		Example: "  ayah show -s 2 -a 255\n  ayah show -s 1 -a 1-7",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, deps, flags, entities.ModeExplicit, func(ctx context.Context, p Printer) (*ayah.Result, error) {
				return p.Print(ctx, entities.Selection{Chapter: args.surah, Ayah: args.ayah, Mode: entities.ModeExplicit})
			})
		},
	}
	cmd.Flags().StringVarP(&args.surah, "surah", "s", "", "surah number (1-114)")
	cmd.Flags().StringVarP(&args.ayah, "ayah", "a", "", "ayah number or range, e.g. 5 or 5-10")
	_ = cmd.MarkFlagRequired("surah")
	_ = cmd.MarkFlagRequired("ayah")

	return cmd
}

func newRandomCmd(deps Deps, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Print a random ayah",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, deps, flags, entities.ModeRandom, func(ctx context.Context, p Printer) (*ayah.Result, error) {
				return p.Random(ctx)
			})
		},
	}
}

func newTodayCmd(deps Deps, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Print the ayah of the day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, deps, flags, entities.ModeDaily, func(ctx context.Context, p Printer) (*ayah.Result, error) {
				return p.Today(ctx)
			})
		},
	}
}

// run prints one selection. Failures are written to stderr as the single
// user-facing message for mode.
func run(cmd *cobra.Command, deps Deps, flags *rootFlags, mode entities.Mode, fetch func(context.Context, Printer) (*ayah.Result, error)) error {
	printer, log, err := setup(deps, flags)
	if err != nil {
		return err
	}
	defer log.Sync()

	res, err := fetch(cmd.Context(), printer)
	if err != nil {
		log.Debug("print failed", zap.String("mode", string(mode)), zap.Error(err))
		fmt.Fprintln(cmd.ErrOrStderr(), ayah.UserMessage(err, mode))
		return errReported
	}

	var renderer ayah.Renderer = ayah.TextRenderer{}
	if flags.html {
		renderer = ayah.HTMLRenderer{}
	}
	fmt.Fprintln(cmd.OutOrStdout(), ayah.Format(res, renderer))
	return nil
}
