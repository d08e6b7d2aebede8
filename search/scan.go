// Package search finds dictionary words laid out in straight lines in a
// letter grid.
//
// Every cell is treated as the near end of a run and the scan walks away
// from it in four directions only: up, left, up-left and up-right. At each
// step the accumulated letters are tested as written and reversed, which
// recovers the down, right, down-right and down-left readings without a
// second pass over the same line.
package search

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordsearch/grid"
)

var ErrInvalidMinLength = errors.New("search: minimum length must not be negative")

// Dictionary is the membership test the scanner needs. *lexicon.Lexicon
// satisfies it.
type Dictionary interface {
	Contains(word string) bool
}

// Pruner is an optional extension of Dictionary. When the dictionary
// implements it, a walk stops as soon as no longer run from the same cell
// could be a word in either reading. Results are the same either way.
type Pruner interface {
	HasPrefix(prefix string) bool
	HasSuffix(suffix string) bool
}

type walk struct {
	axis   Axis
	dr, dc int
}

// The four outward walks. Walking up-left from a cell covers the
// down-right diagonal through it; walking up-right covers down-left.
var walks = [...]walk{
	{Vertical, -1, 0},
	{Horizontal, 0, -1},
	{DiagonalDownRight, -1, -1},
	{DiagonalDownLeft, -1, 1},
}

type scanner struct {
	g         *grid.Grid
	dict      Dictionary
	pruner    Pruner
	minLength int

	fwd     []rune
	rev     []rune
	matches []Match
	lookups int
}

func newScanner(g *grid.Grid, d Dictionary, minLength int) *scanner {
	s := &scanner{g: g, dict: d, minLength: minLength}
	if p, ok := d.(Pruner); ok {
		s.pruner = p
	}
	return s
}

func validate(g *grid.Grid, minLength int) error {
	if g == nil || g.Rows() == 0 {
		return fmt.Errorf("%w: nil or empty grid", grid.ErrInvalidGrid)
	}
	if minLength < 0 {
		return ErrInvalidMinLength
	}
	return nil
}

// roomFor reports whether a run of minLength cells starting at row, col fits
// inside the grid along w.
func (s *scanner) roomFor(row, col int, w walk) bool {
	if s.minLength <= 1 {
		return true
	}
	steps := s.minLength - 1
	return s.g.PosExists(row+w.dr*steps, col+w.dc*steps)
}

func (s *scanner) scanCell(row, col int) {
	for _, w := range walks {
		if s.roomFor(row, col, w) {
			s.walk(row, col, w)
		}
	}
}

func (s *scanner) walk(row, col int, w walk) {
	s.fwd = s.fwd[:0]
	for i, j := row, col; s.g.PosExists(i, j); i, j = i+w.dr, j+w.dc {
		s.fwd = append(s.fwd, s.g.Letter(i, j))
		n := len(s.fwd)
		s.rev = s.rev[:0]
		for k := n - 1; k >= 0; k-- {
			s.rev = append(s.rev, s.fwd[k])
		}
		word, drow := string(s.fwd), string(s.rev)

		// A single cell has no direction; it is only reported once, by the
		// horizontal walk.
		if n >= s.minLength && (n > 1 || w.axis == Horizontal) {
			s.lookups += 2
			if s.dict.Contains(word) {
				s.matches = append(s.matches, Match{
					Word: word, Start: Coord{row, col}, End: Coord{i, j}, Axis: w.axis})
			}
			if s.dict.Contains(drow) {
				s.matches = append(s.matches, Match{
					Word: drow, Start: Coord{i, j}, End: Coord{row, col}, Axis: w.axis})
			}
		}
		if s.pruner != nil && !s.pruner.HasPrefix(word) && !s.pruner.HasSuffix(drow) {
			return
		}
	}
}

// FindMatches returns every occurrence of a dictionary word of at least
// minLength letters along a straight line of the grid, in scan order.
// Overlapping and repeated occurrences are all reported; a palindrome is
// reported once per reading. A minLength of 0 behaves like 1.
func FindMatches(g *grid.Grid, d Dictionary, minLength int) ([]Match, error) {
	if err := validate(g, minLength); err != nil {
		return nil, err
	}
	if minLength > max(g.Rows(), g.Cols()) {
		return []Match{}, nil
	}
	s := newScanner(g, d, minLength)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			s.scanCell(r, c)
		}
	}
	log.Debug().Int("matches", len(s.matches)).Int("lookups", s.lookups).
		Int("min-length", minLength).Msg("scan-finished")
	if s.matches == nil {
		return []Match{}, nil
	}
	return s.matches, nil
}
