package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uvm-testgen/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <spec> [output_dir]",
		Short: "Regenerate whenever the spec file changes",
		Long: `Generates once, then regenerates every time the spec file is saved.
Build errors are logged and the watch continues. Stop with Ctrl-C.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			specPath, outDir := a.paths(args)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			regenerate := func() {
				res, err := a.generate(specPath, outDir)
				if err != nil {
					a.logger.Error("generation failed", zap.Error(err))
					return
				}

				printSummary(cmd.OutOrStdout(), res)
			}

			regenerate()

			return watch.Run(ctx, specPath, watch.Options{Debounce: debounce, Logger: a.logger}, regenerate)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before regenerating")

	return cmd
}
