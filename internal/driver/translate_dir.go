package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"pylift/internal/diag"
	"pylift/internal/source"
)

// ListSourceFiles returns every *.py file under dir, sorted for
// deterministic result order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".py") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Progress receives per-file completion events from TranslateDir. Calls
// arrive from worker goroutines.
type Progress func(path string, done, total int)

// TranslateDir translates every *.py file under dir concurrently. Results
// come back ordered by path regardless of completion order. A file that
// fails to load is reported through its diagnostic bag, not as a run error.
func TranslateDir(ctx context.Context, dir string, opts Options, jobs int, progress Progress) ([]*TranslateResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes only its own index.
	results := make([]*TranslateResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	completions := make(chan string, len(files))
	reported := make(chan struct{})
	go func() {
		defer close(reported)
		done := 0
		for path := range completions {
			done++
			if progress != nil {
				progress(path, done, len(files))
			}
		}
	}()

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res, err := Translate(path, opts)
			if err != nil {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.New(diag.SevError, diag.DrvLoadFile, source.Span{},
					"failed to load file: "+err.Error()))
				res = &TranslateResult{Path: path, FileSet: source.NewFileSet(), Bag: bag}
			}
			results[i] = res
			completions <- path
			return nil
		})
	}

	err = g.Wait()
	close(completions)
	<-reported
	if err != nil {
		return nil, err
	}
	return results, nil
}
