// Package markup extracts required translation keys from markup text.
//
// Extraction is plain pattern matching over the raw text: the document is
// never parsed, so malformed markup simply yields fewer matches.
package markup

import (
	"regexp"
	"sync"

	"github.com/minios-linux/keycheck/keyset"
)

// Default attribute names that introduce a required key.
const (
	AttrTranslate            = "data-translate"
	AttrTranslatePlaceholder = "data-translate-placeholder"
)

// DefaultAttributes is used when no attribute list is configured.
var DefaultAttributes = []string{AttrTranslate, AttrTranslatePlaceholder}

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

// attrPattern returns the compiled `name="value"` pattern for an attribute.
// The value is captured literally up to the next double quote.
func attrPattern(name string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()

	if re, ok := patternCache[name]; ok {
		return re
	}
	re := regexp.MustCompile(regexp.QuoteMeta(name) + `="([^"]+)"`)
	patternCache[name] = re
	return re
}

// ExtractRequiredKeys returns the keys referenced by the default
// data-translate and data-translate-placeholder attributes.
func ExtractRequiredKeys(text string) keyset.Set {
	return ExtractRequiredKeysWith(text, DefaultAttributes)
}

// ExtractRequiredKeysWith returns the union of the values of every listed
// attribute found in text. An empty attrs falls back to DefaultAttributes.
func ExtractRequiredKeysWith(text string, attrs []string) keyset.Set {
	if len(attrs) == 0 {
		attrs = DefaultAttributes
	}

	keys := keyset.New()
	for _, attr := range attrs {
		if attr == "" {
			continue
		}
		for _, m := range attrPattern(attr).FindAllStringSubmatch(text, -1) {
			keys.Add(m[1])
		}
	}
	return keys
}
