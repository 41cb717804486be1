package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pylift/internal/diag"
	"pylift/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	gutterColor  = color.New(color.FgHiBlack)
	caretColor   = color.New(color.FgHiRed)
)

// Pretty renders every diagnostic in the bag as
//
//	path:line:col: error PL2001 [SYN_EXPECT_COLON]: message
//	   3 | if x
//	     |    ^~~
//
// with the source line and a caret underline below it. Callers should
// Sort the bag first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for _, d := range items {
		writeHeader(w, d, fs, opts)
		writeContext(w, d.Primary, fs, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  note: %s\n", n.Msg)
				if !n.Span.Empty() {
					writeContext(w, n.Span, fs, opts)
				}
			}
		}
	}
}

func writeHeader(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	pos, _ := fs.Resolve(d.Primary)
	path := displayPath(fs, d.Primary.File, opts.PathMode)

	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s [%s]: %s\n",
		path, pos.Line, pos.Col, sev, d.Code.String(), d.Code.ID(), d.Message)
}

func writeContext(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts) {
	if sp.Empty() && sp.Start == 0 {
		return
	}
	file := fs.Get(sp.File)
	if file == nil {
		return
	}
	start, end := fs.Resolve(sp)
	line := file.GetLine(start.Line)
	if line == "" && start.Line == 0 {
		return
	}

	gutter := fmt.Sprintf("%4d | ", start.Line)
	pad := strings.Repeat(" ", len(gutter)-2) + "| "
	if opts.Color {
		gutter = gutterColor.Sprint(gutter)
		pad = gutterColor.Sprint(pad)
	}
	fmt.Fprintf(w, "%s%s\n", gutter, strings.ReplaceAll(line, "\t", " "))

	// Underline only the portion of the span on the first line.
	startCol := int(start.Col) - 1
	if startCol > len(line) {
		startCol = len(line)
	}
	endCol := len(line)
	if end.Line == start.Line && int(end.Col)-1 < endCol {
		endCol = int(end.Col) - 1
	}
	if endCol < startCol {
		endCol = startCol
	}

	prefix := runewidth.StringWidth(strings.ReplaceAll(line[:startCol], "\t", " "))
	width := runewidth.StringWidth(line[startCol:endCol])
	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	if opts.Color {
		underline = caretColor.Sprint(underline)
	}
	fmt.Fprintf(w, "%s%s%s\n", pad, strings.Repeat(" ", prefix), underline)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	file := fs.Get(id)
	if file == nil {
		return "<unknown>"
	}
	if mode == PathModeBasename {
		return filepath.Base(file.Path)
	}
	return file.Path
}

// Plain writes one record per line: severity, line, column, message.
// Meant for machine consumption by calling UIs.
func Plain(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	for _, d := range bag.Items() {
		pos, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s,%d,%d,%s\n", d.Severity, pos.Line, pos.Col, d.Message)
	}
}
