package rsp

import "slices"

// KeepLast returns toks with duplicates removed. Each distinct token is kept
// at the position of its last occurrence, so the relative order of the result
// follows the order of last occurrences in the input.
func KeepLast(toks []string) []string {
	seen := make(map[string]bool, len(toks))
	kept := make([]string, 0, len(toks))
	for i := len(toks) - 1; i >= 0; i-- {
		if seen[toks[i]] {
			continue
		}
		seen[toks[i]] = true
		kept = append(kept, toks[i])
	}
	slices.Reverse(kept)
	return kept
}
