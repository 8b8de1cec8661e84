// Package baseline implements keycheck.baseline.yaml, a record of
// missing keys that have been accepted. With a baseline, a check only
// fails on gaps that are not yet recorded, so an existing project can adopt
// keycheck without fixing every locale first.
package baseline

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/keycheck/reconcile"
)

// FileName is the default baseline file name.
const FileName = "keycheck.baseline.yaml"

// Version is the baseline file format version.
const Version = 1

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Baseline holds accepted missing keys per locale.
type Baseline struct {
	Version int                 `yaml:"version"`
	Missing map[string][]string `yaml:"missing"` // locale -> sorted keys

	path string `yaml:"-"`
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads a baseline from path.
// Returns an empty baseline if the file doesn't exist.
func Load(path string) (*Baseline, error) {
	b := &Baseline{
		Version: Version,
		Missing: make(map[string][]string),
		path:    path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	b.path = path

	if b.Version > Version {
		return nil, fmt.Errorf("%s: unsupported baseline version %d", path, b.Version)
	}
	if b.Missing == nil {
		b.Missing = make(map[string][]string)
	}
	for loc, keys := range b.Missing {
		b.Missing[loc] = normalize(keys)
	}

	return b, nil
}

// Save writes the baseline to disk.
func (b *Baseline) Save() error {
	if b.path == "" {
		return fmt.Errorf("baseline path not set")
	}

	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshaling baseline: %w", err)
	}

	if err := os.WriteFile(b.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", b.path, err)
	}

	return nil
}

// Path returns the baseline file path.
func (b *Baseline) Path() string {
	return b.path
}

// ---------------------------------------------------------------------------
// Report operations
// ---------------------------------------------------------------------------

// Record replaces the accepted gaps with the missing keys of r.
// Complete locales are dropped from the baseline.
func (b *Baseline) Record(r *reconcile.Report) {
	b.Missing = make(map[string][]string, len(r.Locales))
	for _, l := range r.Locales {
		if len(l.Missing) > 0 {
			b.Missing[l.Locale] = append([]string(nil), l.Missing...)
		}
	}
}

// NewGaps returns, per locale, the missing keys of r that the baseline
// does not accept. Locales without new gaps are omitted.
func (b *Baseline) NewGaps(r *reconcile.Report) map[string][]string {
	out := make(map[string][]string)
	for _, l := range r.Locales {
		accepted := toSet(b.Missing[l.Locale])
		for _, k := range l.Missing {
			if !accepted[k] {
				out[l.Locale] = append(out[l.Locale], k)
			}
		}
	}
	return out
}

// Resolved returns, per locale, accepted keys that r no longer reports
// missing. Such entries can be pruned by re-recording the baseline.
func (b *Baseline) Resolved(r *reconcile.Report) map[string][]string {
	out := make(map[string][]string)
	for _, l := range r.Locales {
		current := toSet(l.Missing)
		for _, k := range b.Missing[l.Locale] {
			if !current[k] {
				out[l.Locale] = append(out[l.Locale], k)
			}
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

// Stats returns the number of locales and total accepted keys.
func (b *Baseline) Stats() (locales, keys int) {
	locales = len(b.Missing)
	for _, k := range b.Missing {
		keys += len(k)
	}
	return
}

// Summary returns a human-readable summary string.
func (b *Baseline) Summary() string {
	locales, keys := b.Stats()
	if locales == 0 {
		return "empty"
	}

	names := make([]string, 0, len(b.Missing))
	for loc := range b.Missing {
		names = append(names, loc)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, loc := range names {
		parts = append(parts, fmt.Sprintf("%s: %d", loc, len(b.Missing[loc])))
	}

	return fmt.Sprintf("%d locales, %d keys (%s)", locales, keys, strings.Join(parts, ", "))
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

func normalize(keys []string) []string {
	set := toSet(keys)
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
