package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"github.com/domino14/wordsearch/grid"
	"github.com/domino14/wordsearch/lexicon"
)

// A two-letter alphabet makes words show up everywhere.
const testAlphabet = "ab"

func randomWord(maxLen int) string {
	n := 1 + frand.Intn(maxLen)
	w := make([]byte, n)
	for i := range w {
		w[i] = testAlphabet[frand.Intn(len(testAlphabet))]
	}
	return string(w)
}

func randomGrid(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	desc := make([]string, rows)
	for i := range desc {
		row := make([]byte, cols)
		for j := range row {
			row[j] = testAlphabet[frand.Intn(len(testAlphabet))]
		}
		desc[i] = string(row)
	}
	g, err := grid.FromStrings(desc)
	require.NoError(t, err)
	return g
}

func randomWordList(n, maxLen int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = randomWord(maxLen)
	}
	return words
}

func axisFor(dr, dc int) Axis {
	switch {
	case dc == 0:
		return Vertical
	case dr == 0:
		return Horizontal
	case dr == dc:
		return DiagonalDownRight
	}
	return DiagonalDownLeft
}

// bruteForce reads every segment of the grid in all eight directions.
func bruteForce(g *grid.Grid, d Dictionary, minLength int) []Match {
	matches := []Match{}
	dirs := [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {1, 1}, {-1, 1}, {1, -1}}
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			// single letters: both readings, horizontal only
			if minLength <= 1 && d.Contains(string(g.Letter(r, c))) {
				m := Match{Word: string(g.Letter(r, c)), Start: Coord{r, c}, End: Coord{r, c}, Axis: Horizontal}
				matches = append(matches, m, m)
			}
			for _, dir := range dirs {
				word := []rune{g.Letter(r, c)}
				for i, j := r+dir[0], c+dir[1]; g.PosExists(i, j); i, j = i+dir[0], j+dir[1] {
					word = append(word, g.Letter(i, j))
					if len(word) >= minLength && d.Contains(string(word)) {
						matches = append(matches, Match{Word: string(word),
							Start: Coord{r, c}, End: Coord{i, j}, Axis: axisFor(dir[0], dir[1])})
					}
				}
			}
		}
	}
	return matches
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func checkGeometry(t *testing.T, g *grid.Grid, m Match) {
	t.Helper()
	require.True(t, g.PosExists(m.Start.Row, m.Start.Col), "%v", m)
	require.True(t, g.PosExists(m.End.Row, m.End.Col), "%v", m)
	dr := m.End.Row - m.Start.Row
	dc := m.End.Col - m.Start.Col
	switch m.Axis {
	case Vertical:
		require.Equal(t, 0, dc, "%v", m)
	case Horizontal:
		require.Equal(t, 0, dr, "%v", m)
	case DiagonalDownRight:
		require.Equal(t, dr, dc, "%v", m)
	case DiagonalDownLeft:
		require.Equal(t, dr, -dc, "%v", m)
	}
	n := max(abs(dr), abs(dc)) + 1
	require.Equal(t, n, m.Len(), "%v", m)
	sr, sc := 0, 0
	if dr != 0 {
		sr = dr / abs(dr)
	}
	if dc != 0 {
		sc = dc / abs(dc)
	}
	letters := []rune(m.Word)
	for k := 0; k < n; k++ {
		require.Equal(t, g.Letter(m.Start.Row+k*sr, m.Start.Col+k*sc), letters[k], "%v", m)
	}
}

func countOf(matches []Match, m Match) int {
	n := 0
	for _, o := range matches {
		if o == m {
			n++
		}
	}
	return n
}

func TestRandomGridProperties(t *testing.T) {
	for iter := 0; iter < 50; iter++ {
		rows, cols := 1+frand.Intn(7), 1+frand.Intn(7)
		g := randomGrid(t, rows, cols)
		words := randomWordList(20, 6)
		lex := lexicon.New("random", words)
		plain := newWordSet(lex.Words()...)
		minLength := frand.Intn(5)

		matches, err := FindMatches(g, plain, minLength)
		require.NoError(t, err)

		for _, m := range matches {
			assert.GreaterOrEqual(t, m.Len(), max(minLength, 1))
			checkGeometry(t, g, m)
			if plain.Contains(lexicon.Reverse(m.Word)) {
				assert.Equal(t, countOf(matches, m), countOf(matches, m.Reversed()),
					"pairing broken for %v", m)
			}
		}

		// exact coverage
		assert.ElementsMatch(t, bruteForce(g, plain, minLength), matches,
			"grid %v min %d", g.ToDisplayText(), minLength)

		// idempotent
		again, err := FindMatches(g, plain, minLength)
		require.NoError(t, err)
		assert.Equal(t, matches, again)

		// pruning changes nothing
		SortMatches(matches)
		pruned := findSorted(t, g, lex, minLength)
		assert.Equal(t, matches, pruned)

		// nor does splitting the work up
		parallel, err := FindMatchesParallel(context.Background(), g, lex, minLength, 1+frand.Intn(4))
		require.NoError(t, err)
		assert.Equal(t, matches, parallel)
	}
}

func TestTransposedGridTransposesMatches(t *testing.T) {
	for iter := 0; iter < 20; iter++ {
		g := randomGrid(t, 1+frand.Intn(6), 1+frand.Intn(6))
		lex := lexicon.New("random", randomWordList(15, 5))
		minLength := 2 + frand.Intn(2)

		matches := findSorted(t, g, lex, minLength)
		expected := make([]Match, len(matches))
		for i, m := range matches {
			axis := m.Axis
			switch axis {
			case Vertical:
				axis = Horizontal
			case Horizontal:
				axis = Vertical
			}
			expected[i] = Match{Word: m.Word,
				Start: Coord{m.Start.Col, m.Start.Row},
				End:   Coord{m.End.Col, m.End.Row},
				Axis:  axis}
		}
		g.Transpose()
		transposed := findSorted(t, g, lex, minLength)
		assert.ElementsMatch(t, expected, transposed)
	}
}

func TestParallelCancelled(t *testing.T) {
	g := randomGrid(t, 8, 8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	matches, err := FindMatchesParallel(ctx, g, newWordSet("ab"), 2, 3)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, matches)
}

func BenchmarkFindMatches(b *testing.B) {
	desc := make([]string, 30)
	for i := range desc {
		row := make([]byte, 30)
		for j := range row {
			row[j] = byte('a' + frand.Intn(26))
		}
		desc[i] = string(row)
	}
	g := grid.MustFromStrings(desc)
	words := make([]string, 20000)
	for i := range words {
		w := make([]byte, 3+frand.Intn(6))
		for j := range w {
			w[j] = byte('a' + frand.Intn(26))
		}
		words[i] = string(w)
	}
	lex := lexicon.New("bench", words)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FindMatches(g, lex, 3)
	}
}
