package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/keycheck/keyset"
)

// Format is the syntax of a catalog source.
type Format string

const (
	// FormatScript is source-like text with one labeled block per locale.
	FormatScript Format = "script"
	// FormatYAML is a YAML document mapping locales to key tables.
	FormatYAML Format = "yaml"
	// FormatTOML is a TOML document with one table per locale.
	FormatTOML Format = "toml"
)

// ErrMalformed is returned when a structured catalog cannot be decoded.
var ErrMalformed = errors.New("malformed catalog")

// DetectFormat guesses the catalog format from a file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatScript
}

// ParseFormat validates a format name. Empty means "detect from path".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case FormatScript, "js":
		return FormatScript, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatTOML:
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown catalog format %q (valid: script, yaml, toml)", s)
}

// Load extracts the catalogs of the listed locales from text in the given
// format. Script catalogs never fail; structured ones fail with
// ErrMalformed when the document does not decode.
func Load(text string, format Format, mode Mode, locales []string) (map[string]LocaleCatalog, error) {
	switch format {
	case FormatYAML, FormatTOML:
		return parseStructured([]byte(text), format, locales)
	default:
		return Parser{Mode: mode}.ExtractAll(text, locales), nil
	}
}

// parseStructured decodes a document whose top-level keys are locales.
// Only the first level of each locale table counts as defined keys.
func parseStructured(data []byte, format Format, locales []string) (map[string]LocaleCatalog, error) {
	doc := map[string]any{}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, format, err)
	}

	out := make(map[string]LocaleCatalog, len(locales))
	for _, loc := range locales {
		table, ok := doc[loc]
		cat := LocaleCatalog{Locale: loc, Keys: keyset.New(), Found: ok}
		for _, k := range tableKeys(table) {
			cat.Keys.Add(k)
		}
		out[loc] = cat
	}
	return out, nil
}

// tableKeys returns the keys of a decoded mapping, or nil for scalars.
func tableKeys(v any) []string {
	var keys []string
	switch m := v.(type) {
	case map[string]any:
		for k := range m {
			keys = append(keys, k)
		}
	case map[any]any:
		for k := range m {
			keys = append(keys, fmt.Sprint(k))
		}
	}
	sort.Strings(keys)
	return keys
}
