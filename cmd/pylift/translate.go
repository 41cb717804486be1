package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pylift/internal/driver"
	"pylift/internal/ui"
)

var translateCmd = &cobra.Command{
	Use:   "translate [flags] file.py|dir",
	Short: "Translate legacy sources to the modern dialect",
	Long: `Translate runs the whole pipeline over a file or a directory tree.
Single files print to stdout unless --write or --output is given;
directories are always written next to their sources.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().StringP("output", "o", "", "write a single file's output to this path")
	translateCmd.Flags().Bool("write", false, "write output next to the source, using the manifest's output suffix")
	translateCmd.Flags().Int("jobs", 0, "number of parallel workers for directories (0 = all CPUs)")
	translateCmd.Flags().Bool("no-cache", false, "bypass the translation cache")
	translateCmd.Flags().Bool("no-optimize", false, "skip constant folding and dead-branch elimination")
	translateCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|plain)")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	startDir := target
	if !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	opts, err := resolveOptions(cmd, startDir)
	if err != nil {
		return err
	}

	noOptimize, err := cmd.Flags().GetBool("no-optimize")
	if err != nil {
		return fmt.Errorf("failed to get no-optimize flag: %w", err)
	}
	opts.driver.SkipOptimize = noOptimize

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if !noCache && opts.manifest.Config.Cache.Enabled {
		cache, err := driver.OpenDiskCache("pylift", opts.manifest.Config.Cache.Dir)
		if err == nil {
			opts.driver.Cache = cache
		}
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	if info.IsDir() {
		return translateDir(cmd, target, opts)
	}
	return translateFile(cmd, target, opts, format)
}

func translateFile(cmd *cobra.Command, path string, opts *loadedOptions, format string) error {
	result, err := driver.Translate(path, opts.driver)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	errors, err := reportDiagnostics(result.Bag, result.FileSet, opts, format)
	if err != nil {
		return err
	}
	if result.Timing != nil && !opts.quiet {
		printTimings(result)
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}

	switch {
	case output != "":
		if err := os.WriteFile(output, []byte(result.Output), 0o644); err != nil {
			return err
		}
	case write:
		dest := outputPath(path, opts.manifest.Config.Translate.OutputSuffix)
		if err := os.WriteFile(dest, []byte(result.Output), 0o644); err != nil {
			return err
		}
		if !opts.quiet {
			fmt.Fprintf(os.Stdout, "%s -> %s\n", path, dest)
		}
	default:
		fmt.Fprint(os.Stdout, result.Output)
	}

	if errors > 0 {
		return fmt.Errorf("%d error(s)", errors)
	}
	return nil
}

func translateDir(cmd *cobra.Command, dir string, opts *loadedOptions) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !opts.quiet {
			fmt.Fprintf(os.Stdout, "no source files under %s\n", dir)
		}
		return nil
	}

	var results []*driver.TranslateResult
	if !opts.quiet && isTerminal(os.Stdout) {
		results, err = translateDirWithUI(cmd.Context(), dir, files, opts, jobs)
	} else {
		results, err = driver.TranslateDir(cmd.Context(), dir, opts.driver, jobs, nil)
	}
	if err != nil {
		return err
	}

	suffix := opts.manifest.Config.Translate.OutputSuffix
	totalErrors := 0
	for _, res := range results {
		if n := errorCount(res.Bag); n > 0 {
			totalErrors += n
			if _, err := reportDiagnostics(res.Bag, res.FileSet, opts, "pretty"); err != nil {
				return err
			}
			continue
		}
		dest := outputPath(res.Path, suffix)
		if err := os.WriteFile(dest, []byte(res.Output), 0o644); err != nil {
			return err
		}
	}

	if !opts.quiet {
		fmt.Fprintf(os.Stdout, "%d file(s) translated, %d error(s)\n", len(results)-countBroken(results), totalErrors)
	}
	if totalErrors > 0 {
		return fmt.Errorf("%d error(s)", totalErrors)
	}
	return nil
}

type dirOutcome struct {
	results []*driver.TranslateResult
	err     error
}

func translateDirWithUI(ctx context.Context, dir string, files []string, opts *loadedOptions, jobs int) ([]*driver.TranslateResult, error) {
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		results, err := driver.TranslateDir(ctx, dir, opts.driver, jobs, func(path string, done, total int) {
			events <- ui.Event{Path: path, Status: ui.StatusDone}
		})
		outcomeCh <- dirOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("translating "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	results, err := awaitResults(events, outcomeCh)
	if uiErr != nil {
		return results, uiErr
	}
	return results, err
}

// awaitResults waits for the background translation to finish once the
// progress UI has exited. Events the UI left unread are drained so workers
// blocked on a full channel can still complete.
func awaitResults(events <-chan ui.Event, outcomes <-chan dirOutcome) ([]*driver.TranslateResult, error) {
	for range events {
	}
	out := <-outcomes
	return out.results, out.err
}

func countBroken(results []*driver.TranslateResult) int {
	n := 0
	for _, res := range results {
		if res.Bag.HasErrors() {
			n++
		}
	}
	return n
}

func printTimings(result *driver.TranslateResult) {
	fmt.Fprintf(os.Stderr, "timings: %s\n", result.Path)
	for _, phase := range result.Timing.Phases {
		fmt.Fprintf(os.Stderr, "  %-10s %7.2f ms", phase.Name, phase.DurationMS)
		if phase.Note != "" {
			fmt.Fprintf(os.Stderr, "  // %s", phase.Note)
		}
		fmt.Fprintln(os.Stderr)
	}
	fmt.Fprintf(os.Stderr, "  %-10s %7.2f ms\n", "total", result.Timing.TotalMS)
}
