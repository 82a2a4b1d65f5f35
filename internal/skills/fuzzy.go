package skills

import (
	"strings"
	"unicode"
)

// normalize case-folds and strips every non-alphanumeric rune, so that
// spacing, punctuation, and tier glyphs never affect base similarity.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Similarity computes the base similarity of two raw strings. Containment
// of either normalized string in the other is treated as a full match;
// otherwise similarity is 1 - editDistance/longerLength.
func Similarity(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 1.0
	}

	ra, rb := []rune(na), []rune(nb)
	longer := len(ra)
	if len(rb) > longer {
		longer = len(rb)
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(longer)
}

// levenshtein computes edit distance with a two-row table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
