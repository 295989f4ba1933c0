package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"silver/internal/diag"
	"silver/internal/diagfmt"
	"silver/internal/observ"
	"silver/internal/source"
)

// cliOptions are the root flags every subcommand needs.
type cliOptions struct {
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
}

func readCLIOptions(cmd *cobra.Command) (cliOptions, error) {
	var opts cliOptions
	var err error
	flags := cmd.Root().PersistentFlags()
	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.diagFormat, err = flags.GetString("diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	switch opts.diagFormat {
	case "pretty", "short", "json":
	default:
		return opts, fmt.Errorf("invalid --diagnostics value %q (expected pretty|short|json)", opts.diagFormat)
	}
	if opts.maxDiagnostics < 0 {
		return opts, fmt.Errorf("--max-diagnostics must not be negative")
	}
	return opts, nil
}

// printDiagnostics writes bag in the selected format. Nothing is written for
// an empty bag.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, format string) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	switch format {
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			IncludeNotes:     true,
		})
	case "short":
		_, err := fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Items(), fs, true))
		return err
	default:
		base, _ := os.Getwd()
		return diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     !color.NoColor,
			PathMode:  diagfmt.PathModeAuto,
			BaseDir:   base,
			ShowNotes: true,
		})
	}
}

func printTimings(w io.Writer, report observ.Report) {
	if len(report.Phases) == 0 {
		return
	}
	fmt.Fprint(w, report.Summary())
}
