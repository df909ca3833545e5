package lookup

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/midbel/fpmlchat/casing"
)

// locationPenalty is the cost added to a substring match for each position
// of the label skipped before the match starts, relative to the label length.
const locationPenalty = 0.1

func normalize(str string) string {
	return strings.ToLower(casing.ToSnake(str))
}

// score compares a normalized query with a normalized label. 0 is a perfect
// match and 1 no match at all.
func score(query, label string) float64 {
	q, l := []rune(query), []rune(label)
	if len(q) == 0 || len(l) == 0 {
		return 1
	}
	full := float64(levenshtein.ComputeDistance(query, label)) / float64(max(len(q), len(l)))

	dist, pos := substring(q, l)
	part := float64(dist)/float64(len(q)) + locationPenalty*float64(pos)/float64(len(l))
	return min(full, part, 1)
}

// substring gives the smallest edit distance between query and any part of
// label, and the approximate position where that part starts.
func substring(query, label []rune) (int, int) {
	prev := make([]int, len(label)+1)
	curr := make([]int, len(label)+1)
	for i := 1; i <= len(query); i++ {
		curr[0] = i
		for j := 1; j <= len(label); j++ {
			cost := 1
			if query[i-1] == label[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	best, end := prev[0], 0
	for j := 1; j <= len(label); j++ {
		if prev[j] < best {
			best, end = prev[j], j
		}
	}
	return best, max(0, end-len(query))
}
