// Package catalog extracts the set of keys each locale defines from a
// translation catalog.
//
// Script catalogs are source-like text holding one labeled block per
// locale:
//
//	const translations = {
//	    en: { title: "Hello", search: "Search" },
//	    es: { title: "Hola" },
//	};
//
// Every `identifier:` token inside the block counts as a defined key. This
// is pattern matching, not evaluation: a value containing a colon-terminated
// word also counts as a key.
package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/minios-linux/keycheck/keyset"
)

// Mode selects how the extent of a locale block is determined.
type Mode string

const (
	// ModeBalanced tracks brace depth, skipping string literals and
	// comments, and ends the block at the matching closing brace.
	ModeBalanced Mode = "balanced"
	// ModeFirstClose ends the block at the first closing brace after the
	// label. Keys after a nested block are dropped.
	ModeFirstClose Mode = "first-close"
)

// DefaultMode is used when no block mode is configured.
const DefaultMode = ModeBalanced

// ParseMode validates a block mode name. Empty selects DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.TrimSpace(s)) {
	case "":
		return DefaultMode, nil
	case ModeBalanced:
		return ModeBalanced, nil
	case ModeFirstClose:
		return ModeFirstClose, nil
	}
	return "", fmt.Errorf("unknown block mode %q (valid: %s, %s)", s, ModeBalanced, ModeFirstClose)
}

// keyPattern matches a word followed by a colon. Words are Unicode letters,
// digits and underscores.
var keyPattern = regexp.MustCompile(`([\p{L}\p{N}_]+):`)

// LocaleCatalog is the set of keys one locale's table defines.
type LocaleCatalog struct {
	Locale string
	Keys   keyset.Set
	// Found reports whether the locale's block was located at all.
	Found bool
}

// Len returns the number of distinct defined keys.
func (c LocaleCatalog) Len() int {
	return c.Keys.Len()
}

// Parser extracts locale catalogs from script catalog text.
type Parser struct {
	Mode Mode
}

// ExtractLocaleKeys extracts the keys of one locale using DefaultMode.
func ExtractLocaleKeys(text, locale string) LocaleCatalog {
	return Parser{Mode: DefaultMode}.Extract(text, locale)
}

// Extract returns the catalog for locale. A missing label yields an empty,
// not-found catalog; Extract never fails.
func (p Parser) Extract(text, locale string) LocaleCatalog {
	var (
		body  string
		found bool
	)
	switch p.Mode {
	case ModeFirstClose:
		body, found = firstCloseBlock(text, locale)
	default:
		body, found = balancedBlock(text, locale)
	}

	keys := keyset.New()
	if found {
		for _, m := range keyPattern.FindAllStringSubmatch(body, -1) {
			keys.Add(m[1])
		}
	}
	return LocaleCatalog{Locale: locale, Keys: keys, Found: found}
}

// ExtractAll extracts the catalog of every listed locale. Locales are
// computed independently of each other.
func (p Parser) ExtractAll(text string, locales []string) map[string]LocaleCatalog {
	out := make(map[string]LocaleCatalog, len(locales))
	for _, loc := range locales {
		out[loc] = p.Extract(text, loc)
	}
	return out
}

// firstCloseBlock returns the text between `<locale>: {` and the first `}`
// that follows. The label is matched without a word boundary and the body
// must not be empty.
func firstCloseBlock(text, locale string) (string, bool) {
	if locale == "" {
		return "", false
	}
	re, err := regexp.Compile(regexp.QuoteMeta(locale) + `:\s*\{([^}]+)\}`)
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
