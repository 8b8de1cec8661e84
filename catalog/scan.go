package catalog

import (
	"unicode"
	"unicode/utf8"
)

// balancedBlock locates the first `<locale>: {` label outside string
// literals and comments and returns the body up to the matching closing
// brace. Labels may be bare (en, pt-BR) or quoted ("en", 'pt-BR'). An
// unterminated block runs to the end of text.
func balancedBlock(text, locale string) (string, bool) {
	if locale == "" {
		return "", false
	}

	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case isCommentStart(text, i):
			i = skipComment(text, i)
		case isQuote(c):
			end, closed := skipString(text, i)
			if !closed {
				i++
				continue
			}
			if text[i+1:end-1] == locale {
				if open, ok := blockOpen(text, end); ok {
					return blockBody(text, open), true
				}
			}
			i = end
		default:
			r, size := utf8.DecodeRuneInString(text[i:])
			if !isLabelRune(r) {
				i += size
				continue
			}
			end := i + size
			for end < len(text) {
				r, size = utf8.DecodeRuneInString(text[end:])
				if !isLabelRune(r) {
					break
				}
				end += size
			}
			if text[i:end] == locale {
				if open, ok := blockOpen(text, end); ok {
					return blockBody(text, open), true
				}
			}
			i = end
		}
	}
	return "", false
}

// blockOpen reports whether text at pos continues with `:` and `{`,
// allowing whitespace around the colon, and returns the offset just past
// the opening brace.
func blockOpen(text string, pos int) (int, bool) {
	pos = skipSpace(text, pos)
	if pos >= len(text) || text[pos] != ':' {
		return 0, false
	}
	pos = skipSpace(text, pos+1)
	if pos >= len(text) || text[pos] != '{' {
		return 0, false
	}
	return pos + 1, true
}

// blockBody returns text from start up to the brace closing depth one.
func blockBody(text string, start int) string {
	depth := 1
	i := start
	for i < len(text) {
		c := text[i]
		switch {
		case isCommentStart(text, i):
			i = skipComment(text, i)
			continue
		case isQuote(c):
			if end, closed := skipString(text, i); closed {
				i = end
				continue
			}
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start:i]
			}
		}
		i++
	}
	return text[start:]
}

func isQuote(c byte) bool {
	return c == '"' || c == '\'' || c == '`'
}

func isCommentStart(text string, i int) bool {
	return text[i] == '/' && i+1 < len(text) && (text[i+1] == '/' || text[i+1] == '*')
}

// skipComment returns the offset after the comment starting at i.
func skipComment(text string, i int) int {
	if text[i+1] == '/' {
		for i < len(text) && text[i] != '\n' {
			i++
		}
		return i
	}
	for j := i + 2; j+1 < len(text); j++ {
		if text[j] == '*' && text[j+1] == '/' {
			return j + 2
		}
	}
	return len(text)
}

// skipString returns the offset after the string literal starting at i
// and whether a closing quote was found. Backslash escapes one byte.
// Single and double quoted literals end at an unescaped newline, so a
// stray quote (as in a regex literal like /'/g) is not a string.
func skipString(text string, i int) (int, bool) {
	q := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case q:
			return j + 1, true
		case '\n':
			if q != '`' {
				return j, false
			}
		}
	}
	return len(text), false
}

func skipSpace(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

func isLabelRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$' || r == '-'
}
