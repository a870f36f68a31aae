package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	fuzzypath "github.com/baditaflorin/go_fuzzypath"
	"github.com/baditaflorin/go_fuzzypath/internal/adapters/normalizer"
	"github.com/baditaflorin/go_fuzzypath/internal/adapters/stream/lineprocessor"
)

type normalizedEntry struct {
	Input string         `json:"input"`
	Path  fuzzypath.Path `json:"path"`
}

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "normalize [path...]",
		Short: "Print the normalized form of each path (reads stdin without arguments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !ctx.jsonOutput {
				// Stream stdin so large path lists never sit in memory.
				proc := lineprocessor.NewProcessor(ctx.logger,
					normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.OptimizedNormalizerType),
					lineprocessor.ProcessingConfig{Workers: workers},
				)
				_, err := proc.ProcessLines(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
				return err
			}

			inputs, err := readInputs(cmd, ctx.logger, args)
			if err != nil {
				return err
			}

			entries := make([]normalizedEntry, len(inputs))
			for i, in := range inputs {
				entries[i] = normalizedEntry{Input: in, Path: fuzzypath.New(in)}
				ctx.logger.Debug("Normalized path", "input", in, "path", entries[i].Path.String())
			}

			out := cmd.OutOrStdout()
			if ctx.jsonOutput {
				return writeJSON(out, entries)
			}
			for _, e := range entries {
				fmt.Fprintln(out, e.Path)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "Normalize stdin with this many goroutines")
	return cmd
}

type compareResult struct {
	A     fuzzypath.Path `json:"a"`
	B     fuzzypath.Path `json:"b"`
	Equal bool           `json:"equal"`
	Order int            `json:"order"`
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two paths; exits with status 1 when they differ",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b := fuzzypath.New(args[0]), fuzzypath.New(args[1])
			res := compareResult{A: a, B: b, Equal: a.Equal(b), Order: a.Compare(b)}
			ctx.logger.Info("Compared paths", "a", a.String(), "b", b.String(), "equal", res.Equal)

			out := cmd.OutOrStdout()
			if ctx.jsonOutput {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else if res.Equal {
				fmt.Fprintln(out, "equal")
			} else {
				fmt.Fprintf(out, "different\n  %s\n  %s\n", a, b)
			}

			if !res.Equal {
				return errDifferent
			}
			return nil
		},
	}
}

func newDedupeCommand(ctx *commandContext) *cobra.Command {
	var onlyDuplicates bool

	cmd := &cobra.Command{
		Use:   "dedupe [path...]",
		Short: "Group paths that normalize to the same value (reads stdin without arguments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd, ctx.logger, args)
			if err != nil {
				return err
			}

			groups := fuzzypath.GroupInputs(inputs)
			if onlyDuplicates {
				groups = fuzzypath.Duplicates(groups)
			}
			ctx.logger.Info("Grouped paths", "inputs", len(inputs), "groups", len(groups))

			out := cmd.OutOrStdout()
			switch {
			case ctx.jsonOutput:
				return writeJSON(out, groups)
			case isTerminal(out):
				fmt.Fprintln(out, renderGroups(groups))
			default:
				for _, g := range groups {
					fmt.Fprintf(out, "%s\t%d\t%s\n", g.Path, len(g.Inputs), strings.Join(g.Inputs, "\t"))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&onlyDuplicates, "duplicates", "d", false, "Only show paths with more than one input")
	return cmd
}
