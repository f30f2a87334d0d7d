// Package textsim provides edit-distance based string similarity used by the
// case classifier (keyword fuzzing) and the lawyer matcher (city matching).
package textsim

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// EditDistance returns the Levenshtein distance between a and b with unit
// insert, delete and substitute costs.  No case folding is applied.
func EditDistance(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// Similarity maps EditDistance into [0,1]: (maxLen - distance) / maxLen.
// Two empty strings are identical and score 1.0.
func Similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	return float64(maxLen-EditDistance(a, b)) / float64(maxLen)
}

//Personal.AI order the ending
