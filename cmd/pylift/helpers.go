package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pylift/internal/diag"
	"pylift/internal/diagfmt"
	"pylift/internal/driver"
	"pylift/internal/project"
	"pylift/internal/source"
)

// loadedOptions carries the resolved configuration for one invocation:
// manifest values overridden by command-line flags.
type loadedOptions struct {
	driver   driver.Options
	manifest *project.Manifest
	quiet    bool
	color    bool
}

func resolveOptions(cmd *cobra.Command, startDir string) (*loadedOptions, error) {
	manifest, _, err := project.Load(startDir)
	if err != nil {
		return nil, err
	}
	cfg := manifest.Config

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = cfg.Translate.MaxDiagnostics
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}

	return &loadedOptions{
		driver: driver.Options{
			MaxDiagnostics: maxDiagnostics,
			TabWidth:       cfg.Translate.TabWidth,
			Timings:        timings,
		},
		manifest: manifest,
		quiet:    quiet,
		color:    colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr)),
	}, nil
}

// reportDiagnostics prints the bag to stderr in the requested format and
// returns how many errors it held.
func reportDiagnostics(bag *diag.Bag, fs *source.FileSet, opts *loadedOptions, format string) (int, error) {
	bag.Sort()
	switch format {
	case "json":
		if err := diagfmt.JSON(os.Stderr, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return 0, err
		}
	case "plain":
		diagfmt.Plain(os.Stderr, bag, fs)
	default:
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     opts.color,
			ShowNotes: true,
		})
	}
	errors := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			errors++
		}
	}
	return errors, nil
}

func errorCount(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

// outputPath derives where a translated file is written:
// src/app.py with suffix ".modern" becomes src/app.modern.py.
func outputPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + suffix + ext
}
