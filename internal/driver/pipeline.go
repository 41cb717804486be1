// Package driver wires the translation stages together: it loads files,
// runs lexing, parsing, checking, optimization and emission, and collects
// diagnostics plus timings for the CLI.
package driver

import (
	"fmt"

	"pylift/internal/ast"
	"pylift/internal/diag"
	"pylift/internal/dialect"
	"pylift/internal/emit"
	"pylift/internal/lexer"
	"pylift/internal/observ"
	"pylift/internal/optimize"
	"pylift/internal/parser"
	"pylift/internal/sema"
	"pylift/internal/source"
	"pylift/internal/symtab"
	"pylift/internal/token"
)

// Options configures a pipeline run.
type Options struct {
	// MaxDiagnostics caps the per-file diagnostic bag.
	MaxDiagnostics int
	// TabWidth is the indentation weight of a tab character.
	TabWidth int
	// SkipOptimize leaves the parsed tree untouched before emission.
	SkipOptimize bool
	// Cache, when non-nil, short-circuits Translate for unchanged sources.
	Cache *DiskCache
	// Timings enables phase timing, reported on each result.
	Timings bool
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 50
	}
	return o.MaxDiagnostics
}

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Symbols *symtab.Table
	Bag     *diag.Bag
}

// Tokenize loads one file and runs the lexer over it.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.maxDiagnostics())
	tokens, symbols := lexer.Tokenize(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
		TabWidth: opts.TabWidth,
	})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Symbols: symbols,
		Bag:     bag,
	}, nil
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Program ast.Program
	Tree    *ast.Builder
	Symbols *symtab.Table
	Bag     *diag.Bag
}

// Parse tokenizes and parses one file.
func Parse(path string, opts Options) (*ParseResult, error) {
	tr, err := Tokenize(path, opts)
	if err != nil {
		return nil, err
	}
	res := parser.Parse(tr.Tokens, parser.Options{
		Reporter: diag.BagReporter{Bag: tr.Bag},
	})
	return &ParseResult{
		FileSet: tr.FileSet,
		File:    tr.File,
		Tokens:  tr.Tokens,
		Program: res.Program,
		Tree:    res.Tree,
		Symbols: tr.Symbols,
		Bag:     tr.Bag,
	}, nil
}

type CheckResult struct {
	*ParseResult
	Dialect dialect.Classification
}

// Check runs the full front end: lex, parse, semantic analysis, plus the
// dialect classifier.
func Check(path string, opts Options) (*CheckResult, error) {
	pr, err := Parse(path, opts)
	if err != nil {
		return nil, err
	}
	sema.Check(pr.Program, pr.Tree, sema.Options{
		Reporter: diag.BagReporter{Bag: pr.Bag},
	})
	cls := dialect.Classifier{}.Classify(dialect.Collect(pr.Tokens))
	return &CheckResult{ParseResult: pr, Dialect: cls}, nil
}

type TranslateResult struct {
	Path    string
	FileSet *source.FileSet
	Output  string
	Dialect dialect.Classification
	Bag     *diag.Bag
	Timing  *observ.Report
	Cached  bool
}

// Translate runs the whole pipeline over one file and returns the
// modern-dialect text. Emission happens even when diagnostics were
// reported, so partially broken input still produces best-effort output.
func Translate(path string, opts Options) (*TranslateResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	if opts.Cache != nil {
		var payload CachePayload
		if ok, _ := opts.Cache.Get(file.Hash, &payload); ok {
			return &TranslateResult{
				Path:    path,
				FileSet: fs,
				Output:  payload.Output,
				Dialect: dialect.Classification{Kind: dialect.Kind(payload.Dialect)},
				Bag:     diag.NewBag(opts.maxDiagnostics()),
				Cached:  true,
			}, nil
		}
	}

	result := translateFile(file, opts)
	result.Path = path
	result.FileSet = fs

	if opts.Cache != nil && !result.Bag.HasErrors() {
		_ = opts.Cache.Put(file.Hash, &CachePayload{
			Schema:  cacheSchemaVersion,
			Output:  result.Output,
			Dialect: uint8(result.Dialect.Kind),
		})
	}
	return result, nil
}

// translateFile runs the stages over an already loaded file.
func translateFile(file *source.File, opts Options) *TranslateResult {
	bag := diag.NewBag(opts.maxDiagnostics())
	timer := observ.NewTimer()

	phase := timer.Begin("lex")
	tokens, _ := lexer.Tokenize(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
		TabWidth: opts.TabWidth,
	})
	timer.End(phase, fmt.Sprintf("%d tokens", len(tokens)))

	phase = timer.Begin("parse")
	parsed := parser.Parse(tokens, parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	timer.End(phase, fmt.Sprintf("%d statements", len(parsed.Program.Body)))

	phase = timer.Begin("check")
	sema.Check(parsed.Program, parsed.Tree, sema.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	timer.End(phase, "")

	cls := dialect.Classifier{}.Classify(dialect.Collect(tokens))
	if cls.Kind == dialect.Modern {
		bag.Add(diag.New(diag.SevInfo, diag.DrvAlreadyModern, source.Span{File: file.ID},
			fmt.Sprintf("input already looks modern (confidence %.0f%%)", cls.Confidence*100)))
	}

	program, tree := parsed.Program, parsed.Tree
	if !opts.SkipOptimize {
		phase = timer.Begin("optimize")
		opt := optimize.Optimize(program, tree)
		program, tree = opt.Program, opt.Tree
		timer.End(phase, fmt.Sprintf("%d rewrites", opt.Applied))
	}

	phase = timer.Begin("emit")
	output := emit.Emit(program, tree)
	timer.End(phase, fmt.Sprintf("%d bytes", len(output)))

	result := &TranslateResult{
		Output:  output,
		Dialect: cls,
		Bag:     bag,
	}
	if opts.Timings {
		report := timer.Report()
		result.Timing = &report
	}
	return result
}
