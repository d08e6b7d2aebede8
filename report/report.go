// Package report renders a solved puzzle for people and for other programs.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/domino14/wordsearch/grid"
	"github.com/domino14/wordsearch/search"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("report: unknown output format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
}

// Solution is everything a report shows. Matches are expected to be sorted
// already (see search.SortMatches).
type Solution struct {
	Lexicon   string         `json:"lexicon,omitempty" yaml:"lexicon,omitempty"`
	Grid      []string       `json:"grid" yaml:"grid"`
	MinLength int            `json:"min_length" yaml:"min_length"`
	Count     int            `json:"count" yaml:"count"`
	Matches   []search.Match `json:"matches" yaml:"matches"`
}

// NewSolution bundles the grid and its matches.
func NewSolution(lexiconName string, g *grid.Grid, minLength int, matches []search.Match) *Solution {
	rows := make([]string, g.Rows())
	for i := range rows {
		rows[i] = g.Row(i)
	}
	return &Solution{
		Lexicon:   lexiconName,
		Grid:      rows,
		MinLength: minLength,
		Count:     len(matches),
		Matches:   matches,
	}
}

func coordText(c search.Coord) string {
	return fmt.Sprintf("[%s, %-2d]", grid.ColumnLabel(c.Col), c.Row+1)
}

// FormatMatch renders a match as "[A, 1 ] -> [C, 1 ] : CAT".
func FormatMatch(m search.Match) string {
	return coordText(m.Start) + " -> " + coordText(m.End) + " : " + strings.ToUpper(m.Word)
}

// Summary is the line printed above the match list.
func Summary(count, minLength int) string {
	return fmt.Sprintf("Found %d words with %d letters or more", count, minLength)
}

// WriteText writes the grid, the summary and one line per match.
func WriteText(w io.Writer, g *grid.Grid, minLength int, matches []search.Match) error {
	var sb strings.Builder
	sb.WriteString(g.ToDisplayText())
	sb.WriteString("\n")
	sb.WriteString(Summary(len(matches), minLength) + "\n")
	for _, m := range matches {
		sb.WriteString(FormatMatch(m) + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Write renders the solution in the given format.
func Write(w io.Writer, format Format, lexiconName string, g *grid.Grid,
	minLength int, matches []search.Match) error {

	switch format {
	case FormatText, "":
		return WriteText(w, g, minLength, matches)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewSolution(lexiconName, g, minLength, matches))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewSolution(lexiconName, g, minLength, matches)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// LengthCounts counts matches by word length.
func LengthCounts(matches []search.Match) map[int]int {
	groups := lo.GroupBy(matches, func(m search.Match) int {
		return m.Len()
	})
	return lo.MapValues(groups, func(ms []search.Match, _ int) int {
		return len(ms)
	})
}

// WriteLengthTable writes one "<length>: <count>" line per word length,
// shortest first, then the mean length.
func WriteLengthTable(w io.Writer, matches []search.Match) error {
	counts := LengthCounts(matches)
	lengths := lo.Keys(counts)
	slices.Sort(lengths)
	var sb strings.Builder
	for _, l := range lengths {
		fmt.Fprintf(&sb, "%2d letters: %d\n", l, counts[l])
	}
	if len(matches) > 0 {
		mean, stdev := LengthStats(matches)
		fmt.Fprintf(&sb, "mean length %.2f, stdev %.2f\n", mean, stdev)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// LengthStats returns the mean and sample standard deviation of the match
// lengths. Both are zero with no matches; the deviation is zero with one.
func LengthStats(matches []search.Match) (mean, stdev float64) {
	if len(matches) == 0 {
		return 0, 0
	}
	data := lo.Map(matches, func(m search.Match, _ int) float64 {
		return float64(m.Len())
	})
	if len(data) == 1 {
		return data[0], 0
	}
	return stat.MeanStdDev(data, nil)
}

// WriteLengthHistogram draws a histogram of match lengths.
func WriteLengthHistogram(w io.Writer, matches []search.Match, width int) error {
	if len(matches) == 0 {
		_, err := io.WriteString(w, "no matches\n")
		return err
	}
	data := lo.Map(matches, func(m search.Match, _ int) float64 {
		return float64(m.Len())
	})
	lengths := lo.Uniq(lo.Map(matches, func(m search.Match, _ int) int {
		return m.Len()
	}))
	bins := max(1, lo.Max(lengths)-lo.Min(lengths)+1)
	hist := histogram.Hist(bins, data)
	return histogram.Fprint(w, hist, histogram.Linear(width))
}

// Footer reports how long the run took and how much heap it used. When
// systemBytes is known (non-zero) the machine's total memory follows.
func Footer(elapsed time.Duration, heapBytes, systemBytes uint64) string {
	s := fmt.Sprintf("Time taken: %d milliseconds\nMemory used: %d kB\n",
		elapsed.Milliseconds(), heapBytes/1024)
	if systemBytes > 0 {
		s += fmt.Sprintf("System memory: %d MB\n", systemBytes/(1024*1024))
	}
	return s
}
