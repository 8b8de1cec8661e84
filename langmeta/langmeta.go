// Package langmeta resolves display metadata (native name and emoji flag)
// for locale identifiers shown in reports and CLI output.
package langmeta

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Meta describes language display metadata.
type Meta struct {
	Name string
	Flag string
}

func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 && len(parts[1]) == 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// Resolve returns best-effort metadata for a locale identifier. Names come
// from the CLDR self-names (e.g. "español"); identifiers that are not
// language tags pass through unchanged with no flag.
func Resolve(lang string) Meta {
	tag, err := language.Parse(canonicalize(lang))
	if err != nil || tag == language.Und {
		return Meta{Name: lang}
	}

	name := display.Self.Name(tag)
	if name == "" {
		name = lang
	}

	region, conf := tag.Region()
	flag := ""
	if conf != language.No {
		flag = FlagFromRegion(region.String())
	}
	return Meta{Name: name, Flag: flag}
}

// FlagFromRegion turns a two-letter region code into its emoji flag.
// Anything else yields an empty string.
func FlagFromRegion(region string) string {
	if len(region) != 2 {
		return ""
	}
	region = strings.ToUpper(region)
	var b strings.Builder
	for _, c := range region {
		if c < 'A' || c > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + (c - 'A'))
	}
	return b.String()
}

// Label formats a locale as "flag code (name)" for report headers,
// dropping parts that are unknown.
func Label(lang string) string {
	m := Resolve(lang)
	label := lang
	if m.Name != "" && m.Name != lang {
		label += " (" + m.Name + ")"
	}
	if m.Flag != "" {
		label = m.Flag + " " + label
	}
	return label
}
