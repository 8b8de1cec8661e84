package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRequiredKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "both attribute forms",
			text: `<h1 data-translate="title"></h1><input data-translate-placeholder="search">`,
			want: []string{"search", "title"},
		},
		{
			name: "duplicates collapse",
			text: `<p data-translate="ok"></p><b data-translate="ok"></b><i data-translate-placeholder="ok">`,
			want: []string{"ok"},
		},
		{
			name: "no matches",
			text: `<div class="plain">hello</div>`,
			want: []string{},
		},
		{
			name: "unterminated attribute",
			text: `<div data-translate="broken>`,
			want: []string{},
		},
		{
			name: "empty value is not a key",
			text: `<div data-translate=""></div>`,
			want: []string{},
		},
		{
			name: "single quotes are not recognized",
			text: `<div data-translate='nope'></div>`,
			want: []string{},
		},
		{
			name: "value taken literally",
			text: `<div data-translate="a&amp;b\"></div>`,
			want: []string{`a&amp;b\`},
		},
		{
			name: "works on non-markup text",
			text: "data-translate=\"x\" garbage <<< data-translate-placeholder=\"y\"",
			want: []string{"x", "y"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractRequiredKeys(tc.text)
			assert.Equal(t, tc.want, got.Sorted())
		})
	}
}

func TestExtractRequiredKeysIdempotent(t *testing.T) {
	t.Parallel()

	text := `<a data-translate="b"></a><a data-translate="a"></a><input data-translate-placeholder="c">`
	first := ExtractRequiredKeys(text)
	second := ExtractRequiredKeys(text)
	require.Equal(t, first, second)
	assert.Equal(t, 3, first.Len())
}

func TestExtractRequiredKeysWithCustomAttributes(t *testing.T) {
	t.Parallel()

	text := `<span i18n="greeting"></span><span data-translate="title"></span>`

	got := ExtractRequiredKeysWith(text, []string{"i18n"})
	assert.Equal(t, []string{"greeting"}, got.Sorted())

	got = ExtractRequiredKeysWith(text, nil)
	assert.Equal(t, []string{"title"}, got.Sorted())

	got = ExtractRequiredKeysWith(text, []string{"", "i18n", "data-translate"})
	assert.Equal(t, []string{"greeting", "title"}, got.Sorted())
}
