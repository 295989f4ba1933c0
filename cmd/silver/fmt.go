package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"silver/internal/format"
	"silver/internal/source"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] path...",
	Short: "Format Silver source files",
	Long: `Fmt rewrites expressions with canonical spacing. Without --write the
formatted text goes to stdout; --check only lists files that would change.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "write the result back to the source files")
	fmtCmd.Flags().Bool("check", false, "exit with an error if any file is not formatted")
	fmtCmd.Flags().Bool("minimal", false, "drop redundant parentheses")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cli, err := readCLIOptions(cmd)
	if err != nil {
		return err
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	minimal, err := cmd.Flags().GetBool("minimal")
	if err != nil {
		return fmt.Errorf("failed to get minimal flag: %w", err)
	}
	if write && check {
		return fmt.Errorf("--write and --check are mutually exclusive")
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	out := cmd.OutOrStdout()
	failed, unformatted := 0, 0
	for _, path := range files {
		id, err := fs.Load(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		formatted, bag, err := format.FormatFile(fs, id, format.Options{Minimal: minimal}, cli.maxDiagnostics)
		if errors.Is(err, format.ErrSyntax) {
			failed++
			if perr := printDiagnostics(os.Stderr, bag, fs, cli.diagFormat); perr != nil {
				return perr
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		original := fs.Get(id).Content
		switch {
		case check:
			if !bytes.Equal(original, formatted) {
				unformatted++
				fmt.Fprintln(out, path)
			}
		case write:
			if bytes.Equal(original, formatted) {
				continue
			}
			if err := os.WriteFile(path, formatted, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			if !cli.quiet {
				fmt.Fprintf(os.Stderr, "formatted %s\n", path)
			}
		default:
			if _, err := out.Write(formatted); err != nil {
				return err
			}
		}
	}
	if failed > 0 || unformatted > 0 {
		return errReported
	}
	return nil
}
