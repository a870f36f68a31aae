package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_fuzzypath/internal/adapters/logger"
	"github.com/baditaflorin/go_fuzzypath/internal/adapters/normalizer"
	"github.com/baditaflorin/go_fuzzypath/internal/adapters/stream/lineprocessor"
	"github.com/baditaflorin/go_fuzzypath/internal/ports"
)

// errDifferent makes compare exit with status 1 without printing an error.
var errDifferent = errors.New("paths differ")

type commandContext struct {
	jsonOutput bool
	verbose    bool
	logger     ports.Logger
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{logger: logger.NewNopLogger()}

	rootCmd := &cobra.Command{
		Use:           "fuzzypath",
		Short:         "Normalize and compare path-like strings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !ctx.verbose {
				return nil
			}
			cfg := logger.DefaultConfig(cmd.ErrOrStderr())
			cfg.AsyncWrite = false
			cfg.Metrics = false
			log, err := logger.NewCustomStdLogger(cfg)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			ctx.logger = log
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&ctx.jsonOutput, "json", false, "Write JSON output")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Log each step to stderr")

	rootCmd.AddCommand(newNormalizeCommand(ctx))
	rootCmd.AddCommand(newCompareCommand(ctx))
	rootCmd.AddCommand(newDedupeCommand(ctx))

	return rootCmd
}

// readInputs returns args, or the non-empty lines of stdin when no args are
// given. Stdin is split exactly like the streaming normalize path splits it.
func readInputs(cmd *cobra.Command, log ports.Logger, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	proc := lineprocessor.NewProcessor(log, normalizer.NewDefaultNormalizer(), lineprocessor.ProcessingConfig{})
	inputs, err := proc.ReadLines(cmd.Context(), cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return inputs, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
