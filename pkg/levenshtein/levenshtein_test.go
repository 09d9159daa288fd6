package levenshtein

import (
	"testing"

	"github.com/hbollon/go-edlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bottomRight(m [][]int) int {
	last := m[len(m)-1]
	return last[len(last)-1]
}

func TestMatrixBaseRowAndColumn(t *testing.T) {
	m := Matrix("kitten", "sitting")

	require.Len(t, m, len("sitting")+1)
	for j, row := range m {
		require.Len(t, row, len("kitten")+1)
		assert.Equal(t, j, row[0])
	}
	for i := range m[0] {
		assert.Equal(t, i, m[0][i])
	}
	assert.Equal(t, 3, bottomRight(m))
}

func TestMatrixIdentity(t *testing.T) {
	for _, s := range []string{"", "a", "spelling", "wasn't", "naïve"} {
		assert.Equal(t, 0, bottomRight(Matrix(s, s)), s)
	}
}

func TestMatrixSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"brouwn", "brown"},
		{"jumpped", "jumped"},
		{"", "abc"},
		{"flaw", "lawn"},
		{"intention", "execution"},
	}
	for _, p := range pairs {
		ab := Matrix(p[0], p[1])
		ba := Matrix(p[1], p[0])
		assert.Equal(t, bottomRight(ab), bottomRight(ba), p)

		// ba is the transpose of ab
		for j := range ab {
			for i := range ab[j] {
				assert.Equal(t, ab[j][i], ba[i][j])
			}
		}
	}
}

func TestDistanceMatchesMatrixAndEdlib(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"lazzy", "lazy"},
		{"quick", "quack"},
		{"", ""},
		{"über", "uber"},
		{"constructor", "construct"},
	}
	for _, p := range pairs {
		d := Distance(p[0], p[1])
		assert.Equal(t, bottomRight(Matrix(p[0], p[1])), d, p)
		assert.Equal(t, edlib.LevenshteinDistance(p[0], p[1]), d, p)
	}
}

func TestMatrixCountsRunes(t *testing.T) {
	m := Matrix("café", "cafe")
	assert.Len(t, m[0], 5)
	assert.Equal(t, 1, bottomRight(m))
}
