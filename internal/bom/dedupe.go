package bom

import "strings"

// Dedupe collapses items that share a clean name, case-insensitively. The
// first occurrence wins; later duplicates are discarded whole, not merged.
// Names of two characters or fewer are dropped outright — they are
// table-splitting artifacts, not materials.
func Dedupe(items []LineItem) []LineItem {
	seen := make(map[string]bool, len(items))
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		key := strings.ToLower(strings.TrimSpace(it.CleanName))
		if len(key) <= 2 || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}
