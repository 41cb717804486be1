// Package project locates and parses the pylift.toml manifest that
// configures translation for a source tree.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const ManifestName = "pylift.toml"

// Manifest is a parsed pylift.toml together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the TOML layout of pylift.toml.
type Config struct {
	Package   PackageConfig   `toml:"package"`
	Translate TranslateConfig `toml:"translate"`
	Cache     CacheConfig     `toml:"cache"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type TranslateConfig struct {
	// TabWidth is the indentation weight of a tab character.
	TabWidth int `toml:"tab_width"`
	// MaxDiagnostics caps how many diagnostics are printed per file.
	MaxDiagnostics int `toml:"max_diagnostics"`
	// OutputSuffix is appended before the extension of translated files.
	OutputSuffix string `toml:"output_suffix"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// DefaultConfig returns the configuration used when no manifest exists.
func DefaultConfig() Config {
	return Config{
		Translate: TranslateConfig{
			TabWidth:       4,
			MaxDiagnostics: 50,
			OutputSuffix:   ".modern",
		},
		Cache: CacheConfig{Enabled: true},
	}
}

// FindManifest walks up from startDir looking for pylift.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the manifest governing startDir. When none exists
// it returns a manifest holding DefaultConfig with ok=false.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{Config: DefaultConfig()}, false, nil
	}
	cfg, err := Parse(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// Parse decodes one pylift.toml. Absent keys keep their defaults; present
// but malformed values are errors.
func Parse(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("package", "name") && strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: [package].name must not be empty", path)
	}
	if cfg.Translate.TabWidth <= 0 {
		return Config{}, fmt.Errorf("%s: [translate].tab_width must be positive", path)
	}
	if cfg.Translate.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [translate].max_diagnostics must not be negative", path)
	}
	return cfg, nil
}

// Scaffold writes a starter manifest for a new project. It refuses to
// overwrite an existing file.
func Scaffold(dir, name string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	content := fmt.Sprintf(`[package]
name = %q

[translate]
tab_width = 4
max_diagnostics = 50
output_suffix = ".modern"

[cache]
enabled = true
`, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", path, err)
	}
	return path, nil
}
