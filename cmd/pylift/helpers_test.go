package main

import (
	"testing"
	"time"

	"pylift/internal/diag"
	"pylift/internal/source"
	"pylift/internal/ui"
)

func TestOutputPath(t *testing.T) {
	cases := []struct {
		path   string
		suffix string
		want   string
	}{
		{"src/app.py", ".modern", "src/app.modern.py"},
		{"main.py", ".out", "main.out.py"},
		{"noext", ".modern", "noext.modern"},
		{"a/b/c.tool.py", ".modern", "a/b/c.tool.modern.py"},
	}
	for _, tc := range cases {
		got := outputPath(tc.path, tc.suffix)
		if got != tc.want {
			t.Fatalf("outputPath(%q, %q) = %q, want %q", tc.path, tc.suffix, got, tc.want)
		}
	}
}

func TestErrorCount(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynExpectColon, source.Span{}, "expected ':'"))
	bag.Add(diag.NewWarning(diag.LexInconsistentIndent, source.Span{}, "inconsistent indentation"))
	bag.Add(diag.NewError(diag.SemUndeclaredIdentifier, source.Span{}, "undeclared identifier"))
	if got := errorCount(bag); got != 2 {
		t.Fatalf("errorCount = %d, want 2", got)
	}
}

func TestAwaitResultsDrainsUnreadEvents(t *testing.T) {
	// A small buffer and many completions model the UI exiting early while
	// workers still report; awaitResults must not deadlock.
	events := make(chan ui.Event, 4)
	outcomes := make(chan dirOutcome, 1)
	go func() {
		for i := 0; i < 64; i++ {
			events <- ui.Event{Path: "f.py", Status: ui.StatusDone}
		}
		outcomes <- dirOutcome{}
		close(events)
	}()

	done := make(chan struct{})
	go func() {
		if _, err := awaitResults(events, outcomes); err != nil {
			t.Error(err)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("awaitResults did not return; unread events were not drained")
	}
}
