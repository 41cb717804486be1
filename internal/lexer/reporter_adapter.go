package lexer

import (
	"pylift/internal/diag"
	"pylift/internal/source"
)

// Reporter is the thin diagnostics contract the lexer needs. It matches
// diag.Reporter so a BagReporter can be passed straight through.
type Reporter interface {
	Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
