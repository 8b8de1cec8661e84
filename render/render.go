// Package render prints reconciliation reports as a human-readable listing,
// JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/keycheck/i18n"
	"github.com/minios-linux/keycheck/langmeta"
	"github.com/minios-linux/keycheck/reconcile"
)

// Format is an output format name.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format name. Empty selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (valid: text, json, yaml)", s)
}

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

// Options controls text rendering.
type Options struct {
	Color bool
	// ShowUnused lists defined keys that no markup references.
	ShowUnused bool
}

func (o Options) paint(color, s string) string {
	if !o.Color {
		return s
	}
	return color + s + colorReset
}

// Write renders r to w in the given format.
func Write(w io.Writer, r *reconcile.Report, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return JSON(w, r)
	case FormatYAML:
		return YAML(w, r)
	default:
		return Text(w, r, opts)
	}
}

// JSON writes r as indented JSON.
func JSON(w io.Writer, r *reconcile.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// YAML writes r as a YAML document.
func YAML(w io.Writer, r *reconcile.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// Text writes a coverage table followed by the missing keys of every
// incomplete locale.
func Text(w io.Writer, r *reconcile.Report, opts Options) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", opts.paint(colorBlue, i18n.T("Translation Coverage")))
	fmt.Fprintln(&b, strings.Repeat("─", 60))

	width := localeColumnWidth(r)
	fmt.Fprintf(&b, "%-*s %-10s %-10s %-10s %s\n", width, i18n.T("Locale"),
		i18n.T("Required"), i18n.T("Defined"), i18n.T("Missing"), i18n.T("Status"))
	fmt.Fprintln(&b, strings.Repeat("─", 52))

	for _, l := range r.Locales {
		status := opts.paint(colorGreen, i18n.T("complete"))
		switch {
		case !l.Found:
			status = opts.paint(colorRed, i18n.T("no block"))
		case !l.Complete:
			status = opts.paint(colorYellow, i18n.T("incomplete"))
		}
		fmt.Fprintf(&b, "%-*s %-10d %-10d %-10d %s\n", width, l.Locale,
			l.RequiredCount, l.DefinedCount, len(l.Missing), status)
	}

	fmt.Fprintln(&b, strings.Repeat("─", 52))
	fmt.Fprintf(&b, "%s: %d\n", i18n.T("Required keys"), len(r.Required))

	for _, l := range r.Locales {
		label := langmeta.Label(l.Locale)
		if l.Complete {
			fmt.Fprintf(&b, "\n%s\n", opts.paint(colorGreen,
				i18n.Tf("All required keys have %s translations!", label)))
		} else {
			fmt.Fprintf(&b, "\n%s\n", opts.paint(colorYellow,
				i18n.Tf("Missing %s translation keys (%d):", label, len(l.Missing))))
			for _, k := range l.Missing {
				fmt.Fprintf(&b, "  %s\n", k)
			}
		}
		if opts.ShowUnused && len(l.Unused) > 0 {
			fmt.Fprintf(&b, "%s\n", i18n.Tf("Unused %s keys (%d):", label, len(l.Unused)))
			for _, k := range l.Unused {
				fmt.Fprintf(&b, "  %s\n", k)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Keys writes the sorted required key set followed by its size, the way
// the key listing command shows it.
func Keys(w io.Writer, keys []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", i18n.T("All translation keys found in markup:"))
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s\n", k)
	}
	fmt.Fprintf(&b, "\n%s\n", i18n.N("Total: %d unique key", "Total: %d unique keys", len(keys)))
	_, err := io.WriteString(w, b.String())
	return err
}

func localeColumnWidth(r *reconcile.Report) int {
	width := len("Locale")
	for _, l := range r.Locales {
		if len(l.Locale) > width {
			width = len(l.Locale)
		}
	}
	return width + 4
}
