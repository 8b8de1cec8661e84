// Package reconcile compares the required key set against each locale's
// catalog and reports the missing keys.
package reconcile

import (
	"github.com/minios-linux/keycheck/catalog"
	"github.com/minios-linux/keycheck/keyset"
)

// LocaleReport is the reconciliation result for one locale.
type LocaleReport struct {
	Locale        string   `json:"locale" yaml:"locale"`
	RequiredCount int      `json:"required_count" yaml:"required_count"`
	DefinedCount  int      `json:"defined_count" yaml:"defined_count"`
	Missing       []string `json:"missing" yaml:"missing"`
	// Unused lists defined keys that no markup references. Informational;
	// it never affects Complete.
	Unused   []string `json:"unused,omitempty" yaml:"unused,omitempty"`
	Complete bool     `json:"complete" yaml:"complete"`
	// Found is false when the catalog had no block for this locale.
	Found bool `json:"found" yaml:"found"`
}

// Report is the full reconciliation result, one entry per configured
// locale in configuration order.
type Report struct {
	Required []string       `json:"required" yaml:"required"`
	Locales  []LocaleReport `json:"locales" yaml:"locales"`
}

// Reconcile computes missing = required - defined for every locale.
// A locale absent from catalogs is treated as defining nothing.
func Reconcile(required keyset.Set, locales []string, catalogs map[string]catalog.LocaleCatalog) *Report {
	if required == nil {
		required = keyset.New()
	}

	r := &Report{
		Required: required.Sorted(),
		Locales:  make([]LocaleReport, 0, len(locales)),
	}

	for _, loc := range locales {
		defined := keyset.New()
		cat, ok := catalogs[loc]
		if ok && cat.Keys != nil {
			defined = cat.Keys
		}

		missing := required.Minus(defined)
		r.Locales = append(r.Locales, LocaleReport{
			Locale:        loc,
			RequiredCount: required.Len(),
			DefinedCount:  defined.Len(),
			Missing:       missing,
			Unused:        defined.Minus(required),
			Complete:      len(missing) == 0,
			Found:         ok && cat.Found,
		})
	}

	return r
}

// Complete reports whether every locale defines every required key.
func (r *Report) Complete() bool {
	for _, l := range r.Locales {
		if !l.Complete {
			return false
		}
	}
	return true
}

// MissingTotal returns the number of missing keys summed over locales.
func (r *Report) MissingTotal() int {
	n := 0
	for _, l := range r.Locales {
		n += len(l.Missing)
	}
	return n
}

// Locale returns the report for loc, if present.
func (r *Report) Locale(loc string) (LocaleReport, bool) {
	for _, l := range r.Locales {
		if l.Locale == loc {
			return l, true
		}
	}
	return LocaleReport{}, false
}
