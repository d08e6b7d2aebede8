package puzzles

import (
	"errors"
	"slices"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordsearch/lexicon"
	"github.com/domino14/wordsearch/search"
)

func TestGeneratedWordsAreFound(t *testing.T) {
	is := is.New(t)
	words := []string{"Gopher", "channel", "mutex", "slice", "map", "defer", "panic"}
	lex := lexicon.New("go", words)

	for iter := 0; iter < 20; iter++ {
		g, placements, err := Generate(words, 10, 12, nil)
		is.NoErr(err)
		is.Equal(g.Rows(), 10)
		is.Equal(g.Cols(), 12)
		is.Equal(len(placements), len(words))
		// longest first
		is.Equal(placements[0].Word, "channel")

		matches, err := search.FindMatches(g, lex, 3)
		is.NoErr(err)
		for _, p := range placements {
			is.True(slices.Contains(matches, p)) // placed word found where it was put
		}
	}
}

func TestGenerateRestrictedAxes(t *testing.T) {
	is := is.New(t)
	g, placements, err := Generate([]string{"abc", "def"}, 5, 5, &Options{
		Axes:      []search.Axis{search.Horizontal},
		NoReverse: true,
		Fill:      "z",
	})
	is.NoErr(err)
	for _, p := range placements {
		is.Equal(p.Axis, search.Horizontal)
		is.Equal(p.Start.Row, p.End.Row)
		is.True(p.Start.Col < p.End.Col)
	}
	zs := 0
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			if g.Letter(i, j) == 'z' {
				zs++
			}
		}
	}
	is.Equal(zs, 25-6)
}

func TestGenerateErrors(t *testing.T) {
	is := is.New(t)
	_, _, err := Generate([]string{"abc"}, 0, 3, nil)
	is.Equal(err, ErrBadDimensions)

	_, _, err = Generate([]string{"toolong"}, 3, 3, nil)
	is.True(errors.Is(err, ErrCannotPlace))
}

func TestEnglishFill(t *testing.T) {
	is := is.New(t)
	is.Equal(len(englishFill), 98)
	is.True(slices.IsSorted(englishFill))
}
