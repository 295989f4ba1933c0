package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"silver/internal/diagfmt"
	"silver/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.sv",
	Short: "Tokenize a Silver source file",
	Long:  `Tokenize breaks a Silver source file (or --expr text) into its tokens`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().StringP("expr", "e", "", "tokenize this text instead of a file")
}

func runTokenize(cmd *cobra.Command, args []string) error {
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

	var result *driver.TokenizeResult
	switch {
	case len(args) == 1 && expr == "":
		result, err = driver.Tokenize(args[0], cli.maxDiagnostics)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	case len(args) == 0 && cmd.Flags().Changed("expr"):
		result = driver.TokenizeText("<expr>", expr, cli.maxDiagnostics)
	default:
		return fmt.Errorf("pass exactly one of a file or --expr")
	}

	// Диагностика в stderr, токены в stdout
	if err := printDiagnostics(os.Stderr, result.Bag, result.FileSet, cli.diagFormat); err != nil {
		return err
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
