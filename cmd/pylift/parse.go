package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pylift/internal/diagfmt"
	"pylift/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.py",
	Short: "Parse a source file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|plain)")
	parseCmd.Flags().Bool("no-tree", false, "report diagnostics only, skip the tree dump")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts, err := resolveOptions(cmd, filepath.Dir(path))
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	noTree, err := cmd.Flags().GetBool("no-tree")
	if err != nil {
		return fmt.Errorf("failed to get no-tree flag: %w", err)
	}

	result, err := driver.Parse(path, opts.driver)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	errors, err := reportDiagnostics(result.Bag, result.FileSet, opts, format)
	if err != nil {
		return err
	}

	if !noTree {
		diagfmt.DumpProgram(os.Stdout, result.Program, result.Tree)
	}
	if errors > 0 {
		return fmt.Errorf("%d error(s)", errors)
	}
	return nil
}
