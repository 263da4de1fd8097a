package rendering

import "strings"

// EscapeMarkup escapes the characters that would end an attribute or open a
// tag in the inline markup: & < > "
func EscapeMarkup(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + 8)

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&quot;")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// NormalizeHyphens replaces U+2010 HYPHEN, which the core PDF fonts cannot
// draw, with an ASCII hyphen-minus.
func NormalizeHyphens(text string) string {
	return strings.ReplaceAll(text, "\u2010", "-")
}
