package source

import (
	"testing"
)

func TestLineColResolution(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.py", []byte("abc\ndef\n\nxy"))

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},  // 'a'
		{2, 1, 3},  // 'c'
		{4, 2, 1},  // 'd'
		{6, 2, 3},  // 'f'
		{9, 4, 1},  // 'x'
		{10, 4, 2}, // 'y'
	}
	for _, tc := range cases {
		pos := fs.Position(id, tc.off)
		if pos.Line != tc.line || pos.Col != tc.col {
			t.Errorf("offset %d: got %d:%d, want %d:%d", tc.off, pos.Line, pos.Col, tc.line, tc.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.py", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Errorf("line 1 = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("line 2 = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Errorf("line 3 = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("line 4 = %q, want empty", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc\n"))
	if !changed {
		t.Fatal("expected change")
	}
	if string(out) != "a\nb\rc\n" {
		t.Errorf("got %q", out)
	}

	out, changed = normalizeCRLF([]byte("plain\n"))
	if changed {
		t.Fatal("unexpected change")
	}
	if string(out) != "plain\n" {
		t.Errorf("got %q", out)
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.Intern("bar")
	if a == b {
		t.Fatal("distinct strings share an ID")
	}
	if in.Intern("foo") != a {
		t.Fatal("re-intern returned a different ID")
	}
	if s := in.MustLookup(a); s != "foo" {
		t.Errorf("lookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(999)); ok {
		t.Error("lookup of invalid ID succeeded")
	}
	if in.Intern("") != NoStringID {
		t.Error("empty string must map to NoStringID")
	}
}
