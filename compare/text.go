package compare

import "strings"

// TextMatch compares two text (or tail) values with the default wildcard.
//
//   - both empty               → match
//   - either is exactly "*"    → match
//   - otherwise                → equal after strings.TrimSpace
func TextMatch(ref, comp string) bool {
	return textMatch(ref, comp, DefaultWildcard)
}

func textMatch(ref, comp, wildcard string) bool {
	if ref == "" && comp == "" {
		return true
	}
	if ref == wildcard || comp == wildcard {
		return true
	}

	return strings.TrimSpace(ref) == strings.TrimSpace(comp)
}
