package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"silver/internal/diagfmt"
	"silver/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.sv",
	Short: "Parse a Silver source file and print its syntax tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
	parseCmd.Flags().StringP("expr", "e", "", "parse this text instead of a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	cli, err := readCLIOptions(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	expr, err := cmd.Flags().GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}

	var result *driver.ParseResult
	switch {
	case len(args) == 1 && expr == "":
		result, err = driver.Parse(cmd.Context(), args[0], cli.maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	case len(args) == 0 && cmd.Flags().Changed("expr"):
		result = driver.ParseText(cmd.Context(), "<expr>", expr, cli.maxDiagnostics)
	default:
		return fmt.Errorf("pass exactly one of a file or --expr")
	}

	if err := printDiagnostics(os.Stderr, result.Bag, result.FileSet, cli.diagFormat); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		err = result.Tree.PrettyPrint(out)
	case "json":
		err = diagfmt.FormatTreeJSON(out, result.Tree)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}
