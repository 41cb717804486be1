package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pylift/internal/diagfmt"
	"pylift/internal/driver"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [flags] file.py",
	Short: "Dump the identifier table built during lexing",
	Long:  `Symbols lexes a source file and prints every identifier the lexer recorded, grouped by the scope it was first seen in`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbols,
}

func init() {
	symbolsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts, err := resolveOptions(cmd, filepath.Dir(path))
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Tokenize(path, opts.driver)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		if _, err := reportDiagnostics(result.Bag, result.FileSet, opts, "pretty"); err != nil {
			return err
		}
	}

	switch format {
	case "pretty":
		diagfmt.FormatSymbolsPretty(os.Stdout, result.Symbols)
		return nil
	case "json":
		return diagfmt.FormatSymbolsJSON(os.Stdout, result.Symbols)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
