// Package similarity scores how well a search query matches a title. Inputs
// are expected to be folded already (see normalize.SearchKey).
package similarity

import "strings"

// MatchThreshold is the minimum Score for a title to count as a hit.
const MatchThreshold = 0.75

// Score returns a value between 0.0 (no match) and 1.0 (identical).
//
// Exact matches score 1.0, prefixes of the whole title 0.95, prefixes of a
// later word 0.9 and plain substrings 0.85. Anything else falls back to an
// edit-distance ratio against the closest run of title words, so a typo in
// "breking bad" still finds "breaking bad".
func Score(query, title string) float64 {
	query = strings.Join(strings.Fields(query), " ")
	title = strings.Join(strings.Fields(title), " ")

	if query == "" || title == "" {
		return 0
	}
	if query == title {
		return 1.0
	}
	if strings.HasPrefix(title, query) {
		return 0.95
	}
	if strings.Contains(" "+title, " "+query) {
		return 0.9
	}
	if strings.Contains(title, query) {
		return 0.85
	}

	return fuzzyWindowScore(query, title)
}

// Matches reports whether query is close enough to title.
func Matches(query, title string) bool {
	return Score(query, title) >= MatchThreshold
}

// Best returns the highest score of query against any of titles.
func Best(query string, titles []string) float64 {
	best := 0.0
	for _, t := range titles {
		if s := Score(query, t); s > best {
			best = s
		}
	}
	return best
}

// fuzzyWindowScore compares query with every run of title words that has the
// same word count as the query and keeps the best edit-distance ratio.
func fuzzyWindowScore(query, title string) float64 {
	qWords := strings.Fields(query)
	tWords := strings.Fields(title)

	if len(tWords) <= len(qWords) {
		return ratio(query, title)
	}

	best := 0.0
	for i := 0; i+len(qWords) <= len(tWords); i++ {
		window := strings.Join(tWords[i:i+len(qWords)], " ")
		if s := ratio(query, window); s > best {
			best = s
		}
	}
	return best
}

func ratio(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

// levenshteinDistance calculates the edit distance between two strings using
// two rolling rows.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
