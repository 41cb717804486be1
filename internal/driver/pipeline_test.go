package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"pylift/internal/diag"
	"pylift/internal/dialect"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenizeFile(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.py", "x = 1\n")
	res, err := Tokenize(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tokens) == 0 {
		t.Fatal("no tokens")
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if res.Symbols.Search("x") == nil {
		t.Error("symbol table missing x")
	}
}

func TestTranslateLegacyFile(t *testing.T) {
	src := "def greet(name):\n" +
		"    print \"hello\", name\n" +
		"\n" +
		"for i in xrange(1 + 2):\n" +
		"    greet(i)\n"
	path := writeSource(t, t.TempDir(), "greet.py", src)

	res, err := Translate(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if res.Dialect.Kind != dialect.Legacy {
		t.Errorf("dialect = %s, want legacy", res.Dialect.Kind)
	}
	if !strings.Contains(res.Output, "print(\"hello\", name)") {
		t.Errorf("print statement not translated:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "range(3)") {
		t.Errorf("xrange not renamed or constant not folded:\n%s", res.Output)
	}
}

func TestTranslateBrokenFileStillEmits(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.py", "def (:\nx = 1\n")
	res, err := Translate(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected syntax diagnostics")
	}
	if !strings.Contains(res.Output, "x = 1") {
		t.Errorf("recovered statement missing from output:\n%s", res.Output)
	}
}

func TestTranslateReportsTimings(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.py", "x = 1\n")
	res, err := Translate(path, Options{Timings: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Timing == nil || len(res.Timing.Phases) == 0 {
		t.Fatal("timings requested but not reported")
	}
}

func TestTranslateUsesCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCache("pylift-test", filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, dir, "a.py", "print \"hi\"\n")

	first, err := Translate(path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first run must miss the cache")
	}
	second, err := Translate(path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatal("second run should hit the cache")
	}
	if second.Output != first.Output {
		t.Errorf("cached output differs:\n%s\nvs\n%s", second.Output, first.Output)
	}
}

func TestTranslateDirOrdered(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.py", "x = 2\n")
	writeSource(t, dir, "a.py", "x = 1\n")
	sub := filepath.Join(dir, "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSource(t, sub, "c.py", "x = 3\n")
	writeSource(t, dir, "notes.txt", "not a source file\n")

	var mu sync.Mutex
	seen := 0
	results, err := TranslateDir(context.Background(), dir, Options{}, 2, func(string, int, int) {
		mu.Lock()
		seen++
		mu.Unlock()
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if seen != 3 {
		t.Errorf("progress called %d times", seen)
	}
	for i, want := range []string{"a.py", "b.py", "c.py"} {
		if filepath.Base(results[i].Path) != want {
			t.Errorf("result %d = %s, want %s", i, results[i].Path, want)
		}
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache("pylift-test", filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	key := [32]byte{1, 2, 3}
	in := &CachePayload{Schema: cacheSchemaVersion, Output: "x = 1\n", Dialect: 1}
	if err := cache.Put(key, in); err != nil {
		t.Fatal(err)
	}
	var out CachePayload
	ok, err := cache.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if out.Output != in.Output || out.Dialect != in.Dialect {
		t.Errorf("round trip mismatch: %+v", out)
	}

	var miss CachePayload
	if ok, _ := cache.Get([32]byte{9}, &miss); ok {
		t.Error("unknown key should miss")
	}
}

func TestCacheIgnoresStaleSchema(t *testing.T) {
	cache, err := OpenDiskCache("pylift-test", filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	key := [32]byte{7}
	if err := cache.Put(key, &CachePayload{Schema: cacheSchemaVersion + 1, Output: "old"}); err != nil {
		t.Fatal(err)
	}
	var out CachePayload
	if ok, _ := cache.Get(key, &out); ok {
		t.Error("stale schema entry should be a miss")
	}
}

func TestCheckReportsSemaDiagnostics(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.py", "return 1\n")
	res, err := Check(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SemReturnOutsideFunction {
			found = true
		}
	}
	if !found {
		t.Fatal("return outside function not reported")
	}
}
