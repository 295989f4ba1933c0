package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"silver/internal/driver"
	"silver/internal/observ"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] path...",
	Short: "Evaluate Silver source files",
	Long: `Run evaluates every given file, and every .sv file under given directories,
in parallel. Each file gets its own variables.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntP("jobs", "j", 0, "max parallel files (0 = GOMAXPROCS)")
	runCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cli, err := readCLIOptions(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", driver.SourceExt)
	}

	opts := driver.Options{MaxDiagnostics: cli.maxDiagnostics}
	var results []driver.FileResult
	if shouldUseTUI(mode, len(files)) && !cli.quiet {
		_, results, err = runBatchWithUI(cmd.Context(), "run", files, jobs, opts)
	} else {
		_, results, err = driver.EvaluateFiles(cmd.Context(), files, jobs, opts, nil)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	var total observ.Report
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			continue
		}
		total.Merge(r.Result.Timing)
		if err := printDiagnostics(os.Stderr, r.Result.Bag, r.Result.FileSet, cli.diagFormat); err != nil {
			return err
		}
		if !r.Result.OK {
			failed++
			continue
		}
		if len(results) == 1 {
			fmt.Fprintln(out, r.Result.Value.String())
		} else {
			fmt.Fprintf(out, "%s: %s\n", r.Path, r.Result.Value.String())
		}
	}
	if cli.timings {
		printTimings(os.Stderr, total)
	}
	if !cli.quiet && len(results) > 1 {
		fmt.Fprintf(os.Stderr, "%d files, %d failed\n", len(results), failed)
	}
	if failed > 0 {
		return errReported
	}
	return nil
}

// collectFiles expands directories into their source files and keeps
// explicit file arguments as given.
func collectFiles(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		files = append(files, clean)
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		found, err := driver.ListSourceFiles(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}
