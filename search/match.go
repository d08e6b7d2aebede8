package search

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/domino14/wordsearch/grid"
	"github.com/domino14/wordsearch/lexicon"
)

// Axis is one of the four straight lines a word can be read along. Each
// axis is read in both senses.
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
	DiagonalDownRight
	DiagonalDownLeft
)

func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	case DiagonalDownRight:
		return "diagonal-down-right"
	case DiagonalDownLeft:
		return "diagonal-down-left"
	}
	return "none"
}

// MarshalText lets the axis appear by name in JSON and YAML output.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText reads an axis name written by MarshalText.
func (a *Axis) UnmarshalText(text []byte) error {
	for _, c := range []Axis{Vertical, Horizontal, DiagonalDownRight, DiagonalDownLeft} {
		if c.String() == string(text) {
			*a = c
			return nil
		}
	}
	return fmt.Errorf("search: unknown axis %q", text)
}

// A Coord is a zero-based grid position.
type Coord struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// String gives spreadsheet-style coordinates: column letter, 1-based row.
func (c Coord) String() string {
	return fmt.Sprintf("%s%d", grid.ColumnLabel(c.Col), c.Row+1)
}

// A Match is one occurrence of a dictionary word in the grid. Start and End
// are inclusive, and the word reads from Start to End.
type Match struct {
	Word  string `json:"word" yaml:"word"`
	Start Coord  `json:"start" yaml:"start"`
	End   Coord  `json:"end" yaml:"end"`
	Axis  Axis   `json:"axis" yaml:"axis"`
}

func (m Match) String() string {
	return fmt.Sprintf("<%s %v-%v %v>", m.Word, m.Start, m.End, m.Axis)
}

// Len is the number of letters in the word.
func (m Match) Len() int {
	return len([]rune(m.Word))
}

// Reversed is the same run read the other way.
func (m Match) Reversed() Match {
	return Match{
		Word:  lexicon.Reverse(m.Word),
		Start: m.End,
		End:   m.Start,
		Axis:  m.Axis,
	}
}

// cmpOr returns the first of vals that is non-zero, or zero. It mirrors
// cmp.Or (Go 1.22+) for toolchains that predate it.
func cmpOr(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func compareCoords(a, b Coord) int {
	return cmpOr(cmp.Compare(a.Row, b.Row), cmp.Compare(a.Col, b.Col))
}

// CompareMatches orders matches by word, using the lexicon ordering, then
// by start and end coordinates.
func CompareMatches(a, b Match) int {
	return cmpOr(
		lexicon.Compare(a.Word, b.Word),
		compareCoords(a.Start, b.Start),
		compareCoords(a.End, b.End),
		cmp.Compare(a.Axis, b.Axis),
	)
}

// SortMatches sorts matches in place for presentation. Identical matches,
// such as the two readings of a palindrome, stay adjacent.
func SortMatches(matches []Match) {
	slices.SortStableFunc(matches, CompareMatches)
}
