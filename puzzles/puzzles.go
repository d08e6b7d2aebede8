// Package puzzles builds new word search puzzles from a list of words.
package puzzles

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/wordsearch/grid"
	"github.com/domino14/wordsearch/lexicon"
	"github.com/domino14/wordsearch/search"
)

var (
	ErrBadDimensions = errors.New("puzzles: rows and columns must be positive")
	ErrCannotPlace   = errors.New("puzzles: could not place word")
)

const defaultMaxAttempts = 200

// Options tunes generation. The zero value is usable.
type Options struct {
	// Axes the words may be laid along. Empty means all four.
	Axes []search.Axis
	// NoReverse keeps every word reading down or to the right.
	NoReverse bool
	// MaxAttempts is the number of random positions tried per word.
	MaxAttempts int
	// Fill is the letter bag empty cells are drawn from; a letter repeated
	// n times is n times as likely. Empty means English tile frequencies.
	Fill string
}

// englishFill has the letters of an English tile set, minus blanks.
var englishFill = makeFill(map[rune]int{
	'a': 9, 'b': 2, 'c': 2, 'd': 4, 'e': 12, 'f': 2, 'g': 3, 'h': 2,
	'i': 9, 'j': 1, 'k': 1, 'l': 4, 'm': 2, 'n': 6, 'o': 8, 'p': 2,
	'q': 1, 'r': 6, 's': 4, 't': 6, 'u': 4, 'v': 2, 'w': 2, 'x': 1,
	'y': 2, 'z': 1,
})

func makeFill(dist map[rune]int) []rune {
	fill := []rune{}
	for r, n := range dist {
		for i := 0; i < n; i++ {
			fill = append(fill, r)
		}
	}
	slices.Sort(fill)
	return fill
}

var allAxes = []search.Axis{search.Vertical, search.Horizontal,
	search.DiagonalDownRight, search.DiagonalDownLeft}

// step is the unit vector reading an axis downward (or rightward).
func step(a search.Axis) (int, int) {
	switch a {
	case search.Vertical:
		return 1, 0
	case search.Horizontal:
		return 0, 1
	case search.DiagonalDownRight:
		return 1, 1
	}
	return 1, -1
}

type generator struct {
	cells [][]rune
	rows  int
	cols  int
	opts  Options
}

func (g *generator) fits(word []rune, row, col, dr, dc int) bool {
	for k, r := range word {
		i, j := row+k*dr, col+k*dc
		if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
			return false
		}
		if g.cells[i][j] != 0 && g.cells[i][j] != r {
			return false
		}
	}
	return true
}

func (g *generator) place(word string) (search.Match, error) {
	letters := []rune(word)
	axes := g.opts.Axes
	if len(axes) == 0 {
		axes = allAxes
	}
	for attempt := 0; attempt < g.opts.MaxAttempts; attempt++ {
		axis := axes[frand.Intn(len(axes))]
		dr, dc := step(axis)
		if !g.opts.NoReverse && frand.Intn(2) == 1 {
			dr, dc = -dr, -dc
		}
		row, col := frand.Intn(g.rows), frand.Intn(g.cols)
		if !g.fits(letters, row, col, dr, dc) {
			continue
		}
		for k, r := range letters {
			g.cells[row+k*dr][col+k*dc] = r
		}
		n := len(letters) - 1
		return search.Match{
			Word:  word,
			Start: search.Coord{Row: row, Col: col},
			End:   search.Coord{Row: row + n*dr, Col: col + n*dc},
			Axis:  axis,
		}, nil
	}
	return search.Match{}, fmt.Errorf("%w %q after %d attempts", ErrCannotPlace, word, g.opts.MaxAttempts)
}

// Generate lays the words out in a rows x cols grid along random axes and
// fills the remaining cells with random letters. It returns the grid and
// where each word was put. Longer words are placed first; words may cross
// where they share a letter. The fill can create extra words by chance.
func Generate(words []string, rows, cols int, opts *Options) (*grid.Grid, []search.Match, error) {
	if rows < 1 || cols < 1 {
		return nil, nil, ErrBadDimensions
	}
	g := &generator{rows: rows, cols: cols}
	if opts != nil {
		g.opts = *opts
	}
	if g.opts.MaxAttempts <= 0 {
		g.opts.MaxAttempts = defaultMaxAttempts
	}
	fill := []rune(lexicon.Normalize(g.opts.Fill))
	if len(fill) == 0 {
		fill = englishFill
	}

	g.cells = make([][]rune, rows)
	for i := range g.cells {
		g.cells[i] = make([]rune, cols)
	}

	normalized := []string{}
	for _, w := range words {
		if w = lexicon.Normalize(strings.TrimSpace(w)); w != "" {
			normalized = append(normalized, w)
		}
	}
	slices.SortStableFunc(normalized, func(a, b string) int {
		return cmp.Compare(utf8.RuneCountInString(b), utf8.RuneCountInString(a))
	})

	placements := make([]search.Match, 0, len(normalized))
	for _, w := range normalized {
		m, err := g.place(w)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("word", w).Str("start", m.Start.String()).
			Str("end", m.End.String()).Msg("placed-word")
		placements = append(placements, m)
	}

	for i := range g.cells {
		for j := range g.cells[i] {
			if g.cells[i][j] == 0 {
				g.cells[i][j] = fill[frand.Intn(len(fill))]
			}
		}
	}
	out, err := grid.New(g.cells)
	if err != nil {
		return nil, nil, err
	}
	return out, placements, nil
}
