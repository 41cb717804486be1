package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[package]\nname = \"demo\"\n")
	cfg, err := Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package.Name != "demo" {
		t.Errorf("name = %q", cfg.Package.Name)
	}
	if cfg.Translate.TabWidth != 4 || cfg.Translate.OutputSuffix != ".modern" {
		t.Errorf("defaults not applied: %+v", cfg.Translate)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should default to enabled")
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	cases := []string{
		"[package]\nname = \"\"\n",
		"[translate]\ntab_width = 0\n",
		"[translate]\nmax_diagnostics = -1\n",
	}
	for _, content := range cases {
		path := writeManifest(t, dir, content)
		if _, err := Parse(path); err == nil {
			t.Errorf("%q: expected parse error", content)
		}
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "src", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want manifest in %q", path, root)
	}
}

func TestLoadWithoutManifestUsesDefaults(t *testing.T) {
	m, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("no manifest should be present")
	}
	if m.Config.Translate.TabWidth != 4 {
		t.Errorf("expected defaults, got %+v", m.Config)
	}
}

func TestScaffoldRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	if _, err := Scaffold(dir, "demo"); err != nil {
		t.Fatal(err)
	}
	cfg, err := Parse(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package.Name != "demo" {
		t.Errorf("scaffolded name = %q", cfg.Package.Name)
	}
	if _, err := Scaffold(dir, "demo"); err == nil {
		t.Fatal("second scaffold should fail")
	}
}
