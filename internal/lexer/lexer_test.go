package lexer

import (
	"testing"

	"pylift/internal/diag"
	"pylift/internal/source"
	"pylift/internal/token"
)

type testReporter struct {
	codes []diag.Code
}

func (r *testReporter) Report(code diag.Code, _ diag.Severity, _ source.Span, _ string, _ []diag.Note) {
	r.codes = append(r.codes, code)
}

func lexAll(t *testing.T, src string) ([]token.Token, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	rep := &testReporter{}
	tokens, _ := Tokenize(fs.Get(id), Options{Reporter: rep})
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		t.Fatalf("token stream not terminated by EOF: %v", tokens)
	}
	return tokens, rep
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func expectKinds(t *testing.T, got []token.Token, want []token.Kind) {
	t.Helper()
	gotKinds := kinds(got)
	if len(gotKinds) != len(want) {
		t.Fatalf("kind count mismatch: got %v, want %v", gotKinds, want)
	}
	for i := range want {
		if gotKinds[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s (stream %v)", i, gotKinds[i], want[i], gotKinds)
		}
	}
}

func TestTokenizeSimpleExpression(t *testing.T) {
	tokens, rep := lexAll(t, "x = 1 + 2\n")
	expectKinds(t, tokens, []token.Kind{
		token.Ident, token.Assign, token.Number, token.Plus, token.Number,
		token.Newline, token.EOF,
	})
	if len(rep.codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes)
	}
	if tokens[0].Text != "x" || tokens[2].Text != "1" {
		t.Fatalf("token text wrong: %q %q", tokens[0].Text, tokens[2].Text)
	}
}

func TestIndentDedentBalance(t *testing.T) {
	src := "def f():\n    if x:\n        y = 1\n    z = 2\n"
	tokens, rep := lexAll(t, src)
	if len(rep.codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes)
	}
	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Indent:
			depth++
		case token.Dedent:
			depth--
		}
		if depth < 0 {
			t.Fatalf("dedent below zero")
		}
	}
	if depth != 0 {
		t.Fatalf("unbalanced indentation: depth %d at EOF", depth)
	}
}

func TestDedentToEOFPopsAllLevels(t *testing.T) {
	tokens, _ := lexAll(t, "if x:\n    if y:\n        pass")
	indents, dedents := 0, 0
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Indent:
			indents++
		case token.Dedent:
			dedents++
		}
	}
	if indents != 2 || dedents != 2 {
		t.Fatalf("got %d indents, %d dedents; want 2 and 2", indents, dedents)
	}
}

func TestBlankAndCommentLinesDoNotAffectIndent(t *testing.T) {
	src := "if x:\n    a = 1\n\n# comment at column zero\n    b = 2\n"
	tokens, rep := lexAll(t, src)
	if len(rep.codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes)
	}
	dedents := 0
	for i, tok := range tokens {
		if tok.Kind == token.Dedent && i != len(tokens)-2 {
			t.Fatalf("dedent emitted mid-block at token %d: %v", i, kinds(tokens))
		}
		if tok.Kind == token.Dedent {
			dedents++
		}
	}
	if dedents != 1 {
		t.Fatalf("got %d dedents, want 1", dedents)
	}
}

func TestIndentChangeAcrossBlankLines(t *testing.T) {
	src := "if x:\n# leading comment\n    a = 1\n\nb = 2\n"
	tokens, rep := lexAll(t, src)
	if len(rep.codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes)
	}
	expectKinds(t, tokens, []token.Kind{
		token.KwIf, token.Ident, token.Colon, token.Newline,
		token.Indent, token.Ident, token.Assign, token.Number, token.Newline,
		token.Dedent,
		token.Ident, token.Assign, token.Number, token.Newline, token.EOF,
	})
}

func TestInconsistentIndentReported(t *testing.T) {
	src := "if x:\n        a = 1\n    b = 2\n"
	_, rep := lexAll(t, src)
	found := false
	for _, code := range rep.codes {
		if code == diag.LexInconsistentIndent {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected inconsistent indent diagnostic, got %v", rep.codes)
	}
}

func TestTabsWeighFour(t *testing.T) {
	// One tab and four spaces are the same indent level.
	src := "if x:\n\ta = 1\n    b = 2\n"
	_, rep := lexAll(t, src)
	if len(rep.codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes)
	}
}

func TestKeywordsBothDialects(t *testing.T) {
	tokens, _ := lexAll(t, "print exec async await nonlocal\n")
	expectKinds(t, tokens, []token.Kind{
		token.KwPrint, token.KwExec, token.KwAsync, token.KwAwait, token.KwNonlocal,
		token.Newline, token.EOF,
	})
}

func TestOperators(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"<>", token.LtGt},
		{"!=", token.BangEq},
		{"==", token.EqEq},
		{"<=", token.LtEq},
		{">=", token.GtEq},
		{"//", token.SlashSlash},
		{"**", token.StarStar},
		{"->", token.Arrow},
		{"+=", token.PlusAssign},
		{"-=", token.MinusAssign},
		{"*=", token.StarAssign},
		{"/=", token.SlashAssign},
		{"%=", token.PercentAssign},
		{"<", token.Lt},
		{"=", token.Assign},
		{";", token.Semicolon},
	}
	for _, tc := range cases {
		tokens, rep := lexAll(t, tc.src+"\n")
		if tokens[0].Kind != tc.kind {
			t.Errorf("%q: got %s, want %s", tc.src, tokens[0].Kind, tc.kind)
		}
		if len(rep.codes) != 0 {
			t.Errorf("%q: unexpected diagnostics %v", tc.src, rep.codes)
		}
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		src  string
		text string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{"1e10", "1e10"},
		{"2.5e-3", "2.5e-3"},
		{"0x1F", "0x1F"},
		{"0b101", "0b101"},
		{"0o755", "0o755"},
		{"123L", "123L"},
	}
	for _, tc := range cases {
		tokens, rep := lexAll(t, tc.src+"\n")
		if tokens[0].Kind != token.Number {
			t.Errorf("%q: got %s, want Number", tc.src, tokens[0].Kind)
			continue
		}
		if tokens[0].Text != tc.text {
			t.Errorf("%q: text %q, want %q", tc.src, tokens[0].Text, tc.text)
		}
		if len(rep.codes) != 0 {
			t.Errorf("%q: unexpected diagnostics %v", tc.src, rep.codes)
		}
	}
}

func TestBadNumberReported(t *testing.T) {
	tokens, rep := lexAll(t, "0x\n")
	if tokens[0].Kind != token.Unknown {
		t.Fatalf("got %s, want Unknown", tokens[0].Kind)
	}
	if len(rep.codes) != 1 || rep.codes[0] != diag.LexBadNumber {
		t.Fatalf("expected bad number diagnostic, got %v", rep.codes)
	}

	tokens, rep = lexAll(t, "12ab\n")
	if tokens[0].Kind != token.Unknown || len(rep.codes) != 1 {
		t.Fatalf("digits running into letters should be one bad literal: %v %v", kinds(tokens), rep.codes)
	}
}

func TestStrings(t *testing.T) {
	cases := []struct {
		src  string
		text string
	}{
		{`"hello"`, "hello"},
		{`'world'`, "world"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"quote\"in"`, `quote"in`},
		{`'it\'s'`, "it's"},
		{`"""multi
line"""`, "multi\nline"},
	}
	for _, tc := range cases {
		tokens, rep := lexAll(t, tc.src+"\n")
		if tokens[0].Kind != token.String {
			t.Errorf("%q: got %s, want String", tc.src, tokens[0].Kind)
			continue
		}
		if tokens[0].Text != tc.text {
			t.Errorf("%q: text %q, want %q", tc.src, tokens[0].Text, tc.text)
		}
		if len(rep.codes) != 0 {
			t.Errorf("%q: unexpected diagnostics %v", tc.src, rep.codes)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	_, rep := lexAll(t, "\"abc\n")
	if len(rep.codes) != 1 || rep.codes[0] != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string diagnostic, got %v", rep.codes)
	}

	_, rep = lexAll(t, "'''never closed\nstill open")
	if len(rep.codes) != 1 || rep.codes[0] != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated triple string diagnostic, got %v", rep.codes)
	}
}

func TestUnknownCharReported(t *testing.T) {
	tokens, rep := lexAll(t, "a $ b\n")
	if len(rep.codes) != 1 || rep.codes[0] != diag.LexUnknownChar {
		t.Fatalf("expected unknown char diagnostic, got %v", rep.codes)
	}
	expectKinds(t, tokens, []token.Kind{
		token.Ident, token.Unknown, token.Ident, token.Newline, token.EOF,
	})
}

func TestCommentsSkipped(t *testing.T) {
	tokens, rep := lexAll(t, "a = 1  # trailing comment\n")
	expectKinds(t, tokens, []token.Kind{
		token.Ident, token.Assign, token.Number, token.Newline, token.EOF,
	})
	if len(rep.codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes)
	}
}

func TestSymbolTableScopes(t *testing.T) {
	src := "top = 1\ndef f():\n    inner = 2\nafter = 3\n"
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	_, table := Tokenize(fs.Get(id), Options{})

	entry := table.Search("top")
	if entry == nil || entry.Scope != "0" {
		t.Fatalf("top: got %+v, want scope 0", entry)
	}
	if entry := table.Search("after"); entry == nil || entry.Scope != "0" {
		t.Fatalf("after: got %+v, want scope 0", entry)
	}
	// inner was declared at depth 1; it is still enumerable even though
	// that scope has been exited.
	found := false
	for _, e := range table.AllEntries() {
		if e.Name == "inner" && e.Scope == "1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("inner not recorded under scope 1: %+v", table.AllEntries())
	}
}

func TestLegacyProgramEndToEnd(t *testing.T) {
	src := "def add(a, b):\n    return a + b\n\nprint add(1, 2)\n"
	tokens, rep := lexAll(t, src)
	if len(rep.codes) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.codes)
	}
	expectKinds(t, tokens, []token.Kind{
		token.KwDef, token.Ident, token.LParen, token.Ident, token.Comma,
		token.Ident, token.RParen, token.Colon, token.Newline,
		token.Indent, token.KwReturn, token.Ident, token.Plus, token.Ident,
		token.Newline, token.Dedent,
		token.KwPrint, token.Ident, token.LParen, token.Number, token.Comma,
		token.Number, token.RParen, token.Newline, token.EOF,
	})
}
