// Package config — .keycheck.yaml configuration file support.
//
// Settings are layered: built-in defaults, then .keycheck.yaml in the
// project root, then KEYCHECK_* environment variables (a .env file in the
// root is loaded first when present), then command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/keycheck/catalog"
	"github.com/minios-linux/keycheck/markup"
	"github.com/minios-linux/keycheck/source"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .keycheck.yaml structure.
type File struct {
	// Markup is the markup document referencing translation keys.
	Markup string `yaml:"markup,omitempty"`
	// Catalog is the source defining per-locale translation tables.
	Catalog string `yaml:"catalog,omitempty"`
	// CatalogFormat: "script", "yaml" or "toml" (default: from extension).
	CatalogFormat string `yaml:"catalog_format,omitempty"`
	// Locales is the fixed list of locales to check, in report order.
	Locales []string `yaml:"locales,omitempty"`
	// Attributes are the markup attributes that introduce a required key.
	Attributes []string `yaml:"attributes,omitempty"`
	// BlockMode: "balanced" or "first-close".
	BlockMode string `yaml:"block_mode,omitempty"`
	// Baseline is the file of accepted gaps (optional).
	Baseline string `yaml:"baseline,omitempty"`
}

// FileName is the default config file name.
const FileName = ".keycheck.yaml"

// EnvFileName is the optional dotenv file read from the project root.
const EnvFileName = ".env"

// Environment variables that override file settings.
const (
	EnvMarkup    = "KEYCHECK_MARKUP"
	EnvCatalog   = "KEYCHECK_CATALOG"
	EnvLocales   = "KEYCHECK_LOCALES"
	EnvBlockMode = "KEYCHECK_BLOCK_MODE"
	EnvBaseline  = "KEYCHECK_BASELINE"
)

// Built-in defaults.
const (
	DefaultMarkup  = "public/index.html"
	DefaultCatalog = "public/script.js"
)

// DefaultLocales is the locale list used when none is configured.
var DefaultLocales = []string{"en", "es", "pl"}

// Defaults returns the built-in settings.
func Defaults() File {
	return File{
		Markup:     DefaultMarkup,
		Catalog:    DefaultCatalog,
		Locales:    append([]string(nil), DefaultLocales...),
		Attributes: append([]string(nil), markup.DefaultAttributes...),
		BlockMode:  string(catalog.DefaultMode),
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// LoadFile loads .keycheck.yaml from the given directory.
// Returns nil if no .keycheck.yaml exists.
func LoadFile(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// FromEnv reads KEYCHECK_* overrides. A .env file in rootDir is loaded
// first; variables already set in the process environment win.
func FromEnv(rootDir string) (File, error) {
	envPath := filepath.Join(rootDir, EnvFileName)
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return File{}, fmt.Errorf("loading %s: %w", envPath, err)
		}
	}

	f := File{
		Markup:    strings.TrimSpace(os.Getenv(EnvMarkup)),
		Catalog:   strings.TrimSpace(os.Getenv(EnvCatalog)),
		BlockMode: strings.TrimSpace(os.Getenv(EnvBlockMode)),
		Baseline:  strings.TrimSpace(os.Getenv(EnvBaseline)),
	}
	if v := os.Getenv(EnvLocales); v != "" {
		f.Locales = SplitList(v)
	}
	return f, nil
}

// Merge overlays the non-empty fields of o onto f.
func (f *File) Merge(o File) {
	if o.Markup != "" {
		f.Markup = o.Markup
	}
	if o.Catalog != "" {
		f.Catalog = o.Catalog
	}
	if o.CatalogFormat != "" {
		f.CatalogFormat = o.CatalogFormat
	}
	if len(o.Locales) > 0 {
		f.Locales = o.Locales
	}
	if len(o.Attributes) > 0 {
		f.Attributes = o.Attributes
	}
	if o.BlockMode != "" {
		f.BlockMode = o.BlockMode
	}
	if o.Baseline != "" {
		f.Baseline = o.Baseline
	}
}

// Load builds the effective configuration for rootDir from defaults, the
// config file, the environment and the given flag overrides.
func Load(rootDir string, flags File) (*Config, error) {
	f := Defaults()

	fromFile, err := LoadFile(rootDir)
	if err != nil {
		return nil, err
	}
	if fromFile != nil {
		f.Merge(*fromFile)
	}

	fromEnv, err := FromEnv(rootDir)
	if err != nil {
		return nil, err
	}
	f.Merge(fromEnv)
	f.Merge(flags)

	cfg, err := f.Resolve(rootDir)
	if err != nil {
		return nil, err
	}
	cfg.FromFile = fromFile != nil
	return cfg, nil
}

// ---------------------------------------------------------------------------
// Resolving
// ---------------------------------------------------------------------------

// Config is the validated, path-resolved configuration.
type Config struct {
	Root       string
	Markup     string
	Catalog    string
	Format     catalog.Format
	Mode       catalog.Mode
	Locales    []string
	Attributes []string
	Baseline   string
	// FromFile reports whether .keycheck.yaml was present.
	FromFile bool
	// Warnings are non-fatal findings, e.g. locales that are not BCP 47 tags.
	Warnings []string
}

// Resolve validates f and resolves its paths against rootDir.
func (f File) Resolve(rootDir string) (*Config, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}

	mode, err := catalog.ParseMode(f.BlockMode)
	if err != nil {
		return nil, err
	}

	format, err := catalog.ParseFormat(f.CatalogFormat)
	if err != nil {
		return nil, err
	}
	if format == "" {
		format = catalog.DetectFormat(f.Catalog)
	}

	locales, warnings, err := ValidateLocales(f.Locales)
	if err != nil {
		return nil, err
	}
	if len(locales) == 0 {
		return nil, fmt.Errorf("no locales configured")
	}

	cfg := &Config{
		Root:       absRoot,
		Markup:     resolvePath(absRoot, f.Markup),
		Catalog:    resolvePath(absRoot, f.Catalog),
		Format:     format,
		Mode:       mode,
		Locales:    locales,
		Attributes: cleanList(f.Attributes),
		Warnings:   warnings,
	}
	if f.Baseline != "" {
		cfg.Baseline = resolvePath(absRoot, f.Baseline)
	}
	if cfg.Markup == source.Stdin && cfg.Catalog == source.Stdin {
		return nil, fmt.Errorf("markup and catalog cannot both be read from standard input")
	}
	return cfg, nil
}

// ValidateLocales trims and deduplicates locale identifiers, keeping the
// first occurrence order. Identifiers are matched literally against catalog
// labels and are never rewritten; ones that are not valid BCP 47 tags only
// produce a warning.
func ValidateLocales(in []string) ([]string, []string, error) {
	seen := make(map[string]bool)
	var (
		out      []string
		warnings []string
	)
	for _, raw := range in {
		loc := strings.TrimSpace(raw)
		if loc == "" || seen[loc] {
			continue
		}
		if strings.ContainsAny(loc, " \t\n\"'`{}:,") {
			return nil, nil, fmt.Errorf("invalid locale identifier %q", raw)
		}
		seen[loc] = true
		out = append(out, loc)

		if _, err := language.Parse(loc); err != nil {
			warnings = append(warnings, fmt.Sprintf("locale %q is not a recognized language tag", loc))
		}
	}
	return out, warnings, nil
}

// SplitList splits a comma-separated list, dropping empty items.
func SplitList(s string) []string {
	return cleanList(strings.Split(s, ","))
}

func cleanList(in []string) []string {
	var out []string
	for _, item := range in {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func resolvePath(root, p string) string {
	if p == "" || p == source.Stdin || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
