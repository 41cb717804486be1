package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pylift/internal/dialect"
	"pylift/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.py",
	Short: "Run the full front end over a source file",
	Long:  `Check lexes, parses and semantically analyzes a source file, reporting every diagnostic without producing output`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|plain)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts, err := resolveOptions(cmd, filepath.Dir(path))
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Check(path, opts.driver)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	errors, err := reportDiagnostics(result.Bag, result.FileSet, opts, format)
	if err != nil {
		return err
	}

	if !opts.quiet && format == "pretty" {
		if result.Dialect.Kind != dialect.Unknown {
			fmt.Fprintf(os.Stdout, "%s: %s dialect (confidence %.0f%%, %d signals)\n",
				path, result.Dialect.Kind, result.Dialect.Confidence*100, result.Dialect.ObservedSignals)
		}
		fmt.Fprintf(os.Stdout, "%s: %d diagnostic(s), %d error(s)\n", path, result.Bag.Len(), errors)
	}
	if errors > 0 {
		return fmt.Errorf("%d error(s)", errors)
	}
	return nil
}
