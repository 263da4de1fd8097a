package orcid

import "strings"

// Initialize shortens every name token except the last to its initial:
// "Charles Michael Greenspon" becomes "C. M. Greenspon". Tokens that are
// already initials ("A.") are kept, so the function is idempotent.
func Initialize(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return strings.Join(tokens, "")
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens[:len(tokens)-1] {
		runes := []rune(tok)
		if len(runes) > 1 && runes[1] == '.' {
			out[i] = tok
			continue
		}
		out[i] = string(runes[0]) + "."
	}
	out[len(out)-1] = tokens[len(tokens)-1]
	return strings.Join(out, " ")
}

// FirstName returns the text before the first space, or the whole name.
func FirstName(fullName string) string {
	if i := strings.Index(fullName, " "); i >= 0 {
		return fullName[:i]
	}
	return fullName
}
