package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"silver/internal/driver"
	"silver/internal/symbols"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] expression...",
	Short: "Evaluate a Silver expression",
	Long: `Eval binds and evaluates one expression and prints its value.
The arguments are joined with spaces, so "silver eval 1 + 2" works without quoting.
Use --file to evaluate a source file instead.`,
	Example: `  silver eval '(1 + 2) * 3'
  silver eval --session vars.msgpack 'x = 10'
  silver eval --file expr.sv --tree`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringP("file", "f", "", "evaluate the contents of a file")
	evalCmd.Flags().Bool("tree", false, "print the syntax tree before the value")
	evalCmd.Flags().String("session", "", "load variables from and save them to this file")
}

func runEval(cmd *cobra.Command, args []string) error {
	cli, err := readCLIOptions(cmd)
	if err != nil {
		return err
	}
	filePath, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	showTree, err := cmd.Flags().GetBool("tree")
	if err != nil {
		return fmt.Errorf("failed to get tree flag: %w", err)
	}
	sessionPath, err := cmd.Flags().GetString("session")
	if err != nil {
		return fmt.Errorf("failed to get session flag: %w", err)
	}
	if filePath == "" && len(args) == 0 {
		return fmt.Errorf("nothing to evaluate: pass an expression or --file")
	}
	if filePath != "" && len(args) > 0 {
		return fmt.Errorf("--file and an expression argument are mutually exclusive")
	}

	store := symbols.NewStore()
	if sessionPath != "" {
		if store, err = driver.LoadSession(sessionPath); err != nil {
			return err
		}
	}

	opts := driver.Options{MaxDiagnostics: cli.maxDiagnostics}
	var res *driver.EvalResult
	if filePath != "" {
		if res, err = driver.EvalFile(cmd.Context(), filePath, store, opts); err != nil {
			return fmt.Errorf("failed to read %s: %w", filePath, err)
		}
	} else {
		res = driver.EvalText(cmd.Context(), "<expr>", strings.Join(args, " "), store, opts)
	}

	out := cmd.OutOrStdout()
	if showTree {
		if err := res.Tree.PrettyPrint(out); err != nil {
			return err
		}
	}
	if err := printDiagnostics(os.Stderr, res.Bag, res.FileSet, cli.diagFormat); err != nil {
		return err
	}
	if cli.timings {
		printTimings(os.Stderr, res.Timing)
	}
	if !res.OK {
		return errReported
	}
	fmt.Fprintln(out, res.Value.String())

	if sessionPath != "" {
		if err := driver.SaveSession(sessionPath, store); err != nil {
			return err
		}
	}
	return nil
}
