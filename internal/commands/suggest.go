// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxSuggestions caps the names offered after an unknown command.
const MaxSuggestions = 3

// Suggest returns up to limit candidates within edit distance of input,
// nearest first, ties broken by name. Distance ignores case, so a name that
// differs only in case ranks first. Inputs shorter than two characters get no
// suggestions.
func Suggest(input string, candidates []string, limit int) []string {
	n := utf8.RuneCountInString(input)
	if n < 2 || limit < 1 {
		return nil
	}
	folded := strings.ToLower(input)

	// <=3 chars: 1 edit; 4-8 chars: 2 edits (catches "hepl" -> "help");
	// longer: 3 edits
	maxDistance := 1
	if n >= 4 {
		maxDistance = 2
	}
	if n > 8 {
		maxDistance = 3
	}

	type match struct {
		name     string
		distance int
	}
	var matches []match
	seen := make(map[string]bool)
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		if c == input {
			continue
		}
		d := levenshteinDistance(folded, strings.ToLower(c))
		if d > maxDistance {
			continue
		}
		matches = append(matches, match{name: c, distance: d})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// levenshteinDistance is the minimum number of single-rune insertions,
// deletions or substitutions turning s1 into s2.
func levenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rows instead of the full matrix
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
