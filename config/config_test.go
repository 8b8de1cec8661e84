package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/minios-linux/keycheck/catalog"
)

// clearEnv removes KEYCHECK_* variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvMarkup, EnvCatalog, EnvLocales, EnvBlockMode, EnvBaseline} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	f, err := LoadFile(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if f != nil {
		t.Fatalf("LoadFile() = %#v, want nil", f)
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "locales: [en, es\n")

	if _, err := LoadFile(dir); err == nil {
		t.Fatal("LoadFile() succeeded on invalid YAML")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(dir, File{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !reflect.DeepEqual(cfg.Locales, []string{"en", "es", "pl"}) {
		t.Errorf("Locales = %#v", cfg.Locales)
	}
	if cfg.Markup != filepath.Join(cfg.Root, DefaultMarkup) {
		t.Errorf("Markup = %q", cfg.Markup)
	}
	if cfg.Format != catalog.FormatScript {
		t.Errorf("Format = %q, want script", cfg.Format)
	}
	if cfg.Mode != catalog.ModeBalanced {
		t.Errorf("Mode = %q, want balanced", cfg.Mode)
	}
	if cfg.FromFile {
		t.Error("FromFile = true without a config file")
	}
	if cfg.Baseline != "" {
		t.Errorf("Baseline = %q, want empty", cfg.Baseline)
	}
}

func TestLoadLayering(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
markup: web/index.html
catalog: web/i18n.yaml
locales: [en, de]
block_mode: first-close
baseline: keycheck.baseline.yaml
`)

	cfg, err := Load(dir, File{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.FromFile {
		t.Error("FromFile = false")
	}
	if cfg.Format != catalog.FormatYAML {
		t.Errorf("Format = %q, want yaml (from extension)", cfg.Format)
	}
	if cfg.Mode != catalog.ModeFirstClose {
		t.Errorf("Mode = %q", cfg.Mode)
	}
	if !reflect.DeepEqual(cfg.Locales, []string{"en", "de"}) {
		t.Errorf("Locales = %#v", cfg.Locales)
	}
	if cfg.Baseline != filepath.Join(cfg.Root, "keycheck.baseline.yaml") {
		t.Errorf("Baseline = %q", cfg.Baseline)
	}

	t.Setenv(EnvLocales, " fr, ,it ")
	t.Setenv(EnvCatalog, "/abs/catalog.js")
	cfg, err = Load(dir, File{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Locales, []string{"fr", "it"}) {
		t.Errorf("env Locales = %#v", cfg.Locales)
	}
	if cfg.Catalog != "/abs/catalog.js" {
		t.Errorf("env Catalog = %q", cfg.Catalog)
	}
	if cfg.Format != catalog.FormatScript {
		t.Errorf("env Format = %q", cfg.Format)
	}

	cfg, err = Load(dir, File{Locales: []string{"pl"}, Markup: "-"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Locales, []string{"pl"}) {
		t.Errorf("flag Locales = %#v", cfg.Locales)
	}
	if cfg.Markup != "-" {
		t.Errorf("flag Markup = %q, want stdin", cfg.Markup)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, EnvFileName, "KEYCHECK_LOCALES=en,ru\nKEYCHECK_BLOCK_MODE=first-close\n")

	cfg, err := Load(dir, File{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Locales, []string{"en", "ru"}) {
		t.Errorf("Locales = %#v", cfg.Locales)
	}
	if cfg.Mode != catalog.ModeFirstClose {
		t.Errorf("Mode = %q", cfg.Mode)
	}
}

func TestResolveErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		file File
		want string
	}{
		{name: "bad mode", file: File{Locales: []string{"en"}, BlockMode: "greedy"}, want: "block mode"},
		{name: "bad format", file: File{Locales: []string{"en"}, CatalogFormat: "xml"}, want: "catalog format"},
		{name: "no locales", file: File{Locales: []string{" "}}, want: "no locales"},
		{name: "bad locale", file: File{Locales: []string{"en:x"}}, want: "invalid locale"},
		{name: "both stdin", file: File{Locales: []string{"en"}, Markup: "-", Catalog: "-"}, want: "standard input"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.file.Resolve(dir)
			if err == nil {
				t.Fatalf("Resolve() succeeded, want error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Resolve() error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestLoadBadModeFromFlagsOrEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(dir, File{BlockMode: "greedy"})
	if err == nil {
		t.Fatal("Load() accepted an unknown --block-mode")
	}
	if strings.Contains(err.Error(), FileName) {
		t.Errorf("flag error blames %s: %v", FileName, err)
	}

	t.Setenv(EnvBlockMode, "greedy")
	_, err = Load(dir, File{})
	if err == nil {
		t.Fatalf("Load() accepted an unknown %s", EnvBlockMode)
	}
	if strings.Contains(err.Error(), FileName) {
		t.Errorf("env error blames %s: %v", FileName, err)
	}

	os.Unsetenv(EnvBlockMode)
	_, err = Load(dir, File{CatalogFormat: "xml"})
	if err == nil || strings.Contains(err.Error(), FileName) {
		t.Errorf("Load() with --format xml error = %v", err)
	}
}

func TestValidateLocales(t *testing.T) {
	locales, warnings, err := ValidateLocales([]string{" en ", "pt_BR", "en", "", "primary"})
	if err != nil {
		t.Fatalf("ValidateLocales() error: %v", err)
	}
	if !reflect.DeepEqual(locales, []string{"en", "pt_BR", "primary"}) {
		t.Fatalf("locales = %#v", locales)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "primary") {
		t.Fatalf("warnings = %#v, want one for primary", warnings)
	}
}
