package keyword

import "fmt"

// Metric computes a distance between two strings. Metrics used with a BKTree
// must satisfy the triangle inequality.
type Metric func(a, b string) int

// MetricByName returns the metric registered under name. The empty name
// selects Levenshtein.
func MetricByName(name string) (Metric, error) {
	switch name {
	case "", "levenshtein":
		return LevenshteinDistance, nil
	case "damerau", "damerau-levenshtein":
		return DamerauLevenshteinDistance, nil
	default:
		return nil, fmt.Errorf("unknown distance metric %q", name)
	}
}

// LevenshteinDistance calculates the minimum number of single-character edits
// (insertions, deletions, or substitutions) required to change one string into another.
// This is a pure function with no side effects.
func LevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	runesA := []rune(a)
	runesB := []rune(b)
	lenA := len(runesA)
	lenB := len(runesB)
	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// Only two rows of the table are live at a time.
	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)
	for j := 0; j <= lenB; j++ {
		prev[j] = j
	}

	for i := 1; i <= lenA; i++ {
		curr[0] = i
		for j := 1; j <= lenB; j++ {
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
			}
			curr[j] = min(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[lenB]
}

// DamerauLevenshteinDistance calculates the unrestricted Damerau-Levenshtein
// distance, which also counts a swap of two adjacent characters as a single
// edit. Unlike the optimal string alignment variant it is a true metric, so it
// can back a BKTree.
func DamerauLevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	runesA := []rune(a)
	runesB := []rune(b)
	lenA := len(runesA)
	lenB := len(runesB)
	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// d is offset by one in both dimensions; row and column 0 hold the
	// sentinel maxDist.
	maxDist := lenA + lenB
	d := make([][]int, lenA+2)
	for i := range d {
		d[i] = make([]int, lenB+2)
	}
	d[0][0] = maxDist
	for i := 0; i <= lenA; i++ {
		d[i+1][0] = maxDist
		d[i+1][1] = i
	}
	for j := 0; j <= lenB; j++ {
		d[0][j+1] = maxDist
		d[1][j+1] = j
	}

	// lastRow[r] is the last row (1-based) in which rune r occurred in a.
	lastRow := make(map[rune]int)
	for i := 1; i <= lenA; i++ {
		lastCol := 0
		for j := 1; j <= lenB; j++ {
			i1 := lastRow[runesB[j-1]]
			j1 := lastCol
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
				lastCol = j
			}
			// substitution, insertion, deletion, transposition
			d[i+1][j+1] = min(
				d[i][j]+cost,
				d[i+1][j]+1,
				d[i][j+1]+1,
				d[i1][j1]+(i-i1-1)+1+(j-j1-1),
			)
		}
		lastRow[runesA[i-1]] = i
	}

	return d[lenA+1][lenB+1]
}
