// Package levenshtein computes unit-cost edit distance alignment matrices.
package levenshtein

// Matrix returns the Levenshtein alignment matrix between a and b.
//
// The matrix has len(b)+1 rows and len(a)+1 columns, both measured in runes.
// m[j][i] is the edit distance between the first i runes of a and the first
// j runes of b. Substitution, insertion and deletion all cost 1.
func Matrix(a, b string) [][]int {
	ra := []rune(a)
	rb := []rune(b)

	m := make([][]int, len(rb)+1)
	for j := range m {
		m[j] = make([]int, len(ra)+1)
		m[j][0] = j
	}
	for i := range m[0] {
		m[0][i] = i
	}

	for j := 1; j <= len(rb); j++ {
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			m[j][i] = min(
				m[j-1][i-1]+cost,
				m[j-1][i]+1,
				m[j][i-1]+1,
			)
		}
	}

	return m
}

// Distance returns the edit distance between a and b, the bottom-right
// value of Matrix(a, b). It keeps only two rows in memory.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i-1]+cost, prev[i]+1, curr[i-1]+1)
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}
