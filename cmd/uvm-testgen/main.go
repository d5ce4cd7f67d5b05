// Package main provides the CLI entrypoint for uvm-testgen.
//
// uvm-testgen turns a declarative verification spec (ports, data width and
// constrained test scenarios) into UVM stimulus code:
//   - One transaction class shared by all scenarios
//   - A config and a sequence class per scenario
//   - A test class that scopes every config and starts every sequence
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"uvm-testgen/internal/config"
)

// app holds state shared by all commands of one invocation.
type app struct {
	// Global flags
	verbose    bool
	strict     bool
	configPath string

	cfg    config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. A logger already set on a is kept,
// which lets tests inject zap.NewNop().
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uvm-testgen <spec> [output_dir]",
		Short: "Generate UVM stimulus classes from a verification spec",
		Long: `Reads a JSON (or YAML) verification spec and writes, into output_dir:

  <dut>_transaction.sv        shared sequence item
  <scenario>_config.sv        per-scenario bounds and knobs
  <scenario>_seq.sv           per-scenario randomized sequence
  <dut>_test.sv               test that configures and runs every scenario

Constraint keys <field>_min / <field>_max declare ranged fields; keys with a
flag prefix (enable_, flag_) declare boolean knobs. Missing bounds default to
[0, 2^data_width-1].`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			specPath, outDir := a.paths(args)

			res, err := a.generate(specPath, outDir)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), res)

			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.strict, "strict", false, "fail instead of generating when the spec has warnings")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultFile, "generator settings file (YAML)")

	rootCmd.AddCommand(newWatchCmd(a))

	return rootCmd
}

// setup initializes the logger and loads generator settings.
func (a *app) setup() error {
	if a.logger == nil {
		zcfg := zap.NewProductionConfig()
		if a.verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		logger, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		a.logger = logger
	}

	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return err
	}

	a.cfg = cfg

	return nil
}

// paths returns the spec path and the output directory for args.
func (a *app) paths(args []string) (string, string) {
	if len(args) > 1 {
		return args[0], args[1]
	}

	return args[0], a.cfg.OutputDir
}
