// Package grid holds the letter grid that a word search is run against.
package grid

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrInvalidGrid is the base error for any malformed grid.
	ErrInvalidGrid = errors.New("grid: invalid grid")
	// ErrEmptyGrid indicates the grid has no rows or no columns.
	ErrEmptyGrid = fmt.Errorf("%w: must have at least one row and one column", ErrInvalidGrid)
	// ErrJaggedGrid indicates rows of differing lengths.
	ErrJaggedGrid = fmt.Errorf("%w: all rows must have the same length", ErrInvalidGrid)
)

// A Grid is a rectangular matrix of lower-cased letters. It is not modified
// once built, except by Transpose, which callers must not run concurrently
// with a search.
type Grid struct {
	cells      [][]rune
	transposed bool
}

// New validates and copies the given cells into a Grid. Every letter is
// lower-cased.
func New(cells [][]rune) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	ncols := len(cells[0])
	rows := make([][]rune, len(cells))
	for i, row := range cells {
		if len(row) != ncols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d",
				ErrJaggedGrid, i+1, len(row), ncols)
		}
		rows[i] = make([]rune, ncols)
		for j, r := range row {
			rows[i][j] = unicode.ToLower(r)
		}
	}
	return &Grid{cells: rows}, nil
}

// FromStrings builds a grid from one string per row, one letter per rune.
func FromStrings(desc []string) (*Grid, error) {
	cells := make([][]rune, len(desc))
	for i, s := range desc {
		cells[i] = []rune(s)
	}
	return New(cells)
}

// MustFromStrings is FromStrings for fixed fixtures; it panics on a bad grid.
func MustFromStrings(desc []string) *Grid {
	g, err := FromStrings(desc)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Rows() int {
	return len(g.cells)
}

func (g *Grid) Cols() int {
	return len(g.cells[0])
}

// Letter returns the letter at row, col. It panics if the position is out
// of bounds.
func (g *Grid) Letter(row int, col int) rune {
	return g.cells[row][col]
}

// PosExists returns whether row, col lies inside the grid.
func (g *Grid) PosExists(row int, col int) bool {
	return row >= 0 && row < g.Rows() && col >= 0 && col < g.Cols()
}

// Row returns a copy of the given row as a string.
func (g *Grid) Row(row int) string {
	return string(g.cells[row])
}

// Transpose swaps rows and columns. Unlike a game board the grid need not
// be square, so the cells are reallocated.
func (g *Grid) Transpose() {
	nrows, ncols := g.Rows(), g.Cols()
	t := make([][]rune, ncols)
	for j := 0; j < ncols; j++ {
		t[j] = make([]rune, nrows)
		for i := 0; i < nrows; i++ {
			t[j][i] = g.cells[i][j]
		}
	}
	g.cells = t
	g.transposed = !g.transposed
}

func (g *Grid) IsTransposed() bool {
	return g.transposed
}

// Equals checks the grids for equality, letter by letter.
func (g *Grid) Equals(g2 *Grid) bool {
	if g.Rows() != g2.Rows() || g.Cols() != g2.Cols() {
		return false
	}
	for i := range g.cells {
		if string(g.cells[i]) != string(g2.cells[i]) {
			return false
		}
	}
	return true
}

// ColumnLabel returns the spreadsheet-style letter for a zero-based column.
// Columns past Z continue with AA, AB and so on.
func ColumnLabel(col int) string {
	label := ""
	for col >= 0 {
		label = string(rune('A'+col%26)) + label
		col = col/26 - 1
	}
	return label
}

// ToDisplayText renders the grid upper-cased, with column letters across
// the top and 1-based row numbers down the side.
func (g *Grid) ToDisplayText() string {
	var sb strings.Builder
	ncols := g.Cols()
	sb.WriteString("    ")
	for j := 0; j < ncols; j++ {
		sb.WriteString(ColumnLabel(j) + " ")
	}
	sb.WriteString("\n")
	sb.WriteString("   " + strings.Repeat("--", ncols) + "\n")
	for i, row := range g.cells {
		fmt.Fprintf(&sb, "%02d |", i+1)
		for _, c := range row {
			sb.WriteRune(unicode.ToUpper(c))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (g *Grid) String() string {
	return fmt.Sprintf("<grid %dx%d>", g.Rows(), g.Cols())
}
