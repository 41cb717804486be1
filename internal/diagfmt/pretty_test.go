package diagfmt

import (
	"strings"
	"testing"

	"pylift/internal/diag"
	"pylift/internal/source"
)

func makeFixture() (*source.FileSet, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.py", []byte("x = 1\nif y\n    z = 2\n"))
	bag := diag.NewBag(10)
	// "y" on line 2 occupies bytes 9..10.
	bag.Add(diag.NewError(diag.SynExpectColon, source.Span{File: id, Start: 9, End: 10},
		"expected ':' to open block"))
	return fs, bag
}

func TestPrettyHeaderAndCaret(t *testing.T) {
	fs, bag := makeFixture()
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "demo.py:2:4: ERROR PL2002 [SYN_EXPECT_COLON]: expected ':' to open block") {
		t.Errorf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "if y") {
		t.Errorf("context line missing:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("caret missing:\n%s", out)
	}
}

func TestPrettyCaretColumn(t *testing.T) {
	fs, bag := makeFixture()
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})

	lines := strings.Split(sb.String(), "\n")
	var caretLine string
	for _, l := range lines {
		if strings.Contains(l, "^") {
			caretLine = l
		}
	}
	if caretLine == "" {
		t.Fatal("no caret line")
	}
	// The caret must sit under the 'y' of "if y".
	if idx := strings.Index(caretLine, "^"); idx != strings.Index("   3 | if y", "y") {
		t.Errorf("caret at column %d in %q", idx, caretLine)
	}
}

func TestPrettyMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.py", []byte("a\nb\nc\n"))
	bag := diag.NewBag(10)
	for i := 0; i < 3; i++ {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id}, "boom"))
	}
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{Max: 1})
	if got := strings.Count(sb.String(), "boom"); got != 1 {
		t.Errorf("printed %d diagnostics, want 1", got)
	}
}

func TestPlainOneRecordPerLine(t *testing.T) {
	fs, bag := makeFixture()
	var sb strings.Builder
	Plain(&sb, bag, fs)
	if got := strings.TrimSpace(sb.String()); got != "ERROR,2,4,expected ':' to open block" {
		t.Errorf("plain record = %q", got)
	}
}

func TestJSONOutput(t *testing.T) {
	fs, bag := makeFixture()
	var sb strings.Builder
	if err := JSON(&sb, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		`"code": "SYN_EXPECT_COLON"`,
		`"stage": "syntactic"`,
		`"start_line": 2`,
		`"count": 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %s:\n%s", want, out)
		}
	}
}
