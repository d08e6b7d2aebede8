// Package puzzleio reads the plain-text word list and puzzle formats.
//
// A word list has one word per line. A puzzle starts with a "<rows> <cols>"
// header line followed by exactly <rows> lines of <cols> space-separated
// single-letter tokens.
package puzzleio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding is the character encoding of an input file.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf8"
	EncodingLatin1 Encoding = "latin1"
)

var (
	ErrUnknownEncoding = errors.New("puzzleio: unknown character encoding")
	ErrMalformedPuzzle = errors.New("puzzleio: malformed puzzle")
)

// LoadError is returned when an input file cannot be opened or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseEncoding maps a configuration value onto an Encoding. An empty string
// means UTF-8.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf8", "utf-8":
		return EncodingUTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownEncoding, s)
}

func decoded(r io.Reader, enc Encoding) (io.Reader, error) {
	switch enc {
	case EncodingUTF8, "":
		return r, nil
	case EncodingLatin1:
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, enc)
}

// ReadWordList returns every line of the reader verbatim, minus the line
// terminator. Normalization is left to the lexicon.
func ReadWordList(r io.Reader, enc Encoding) ([]string, error) {
	dr, err := decoded(r, enc)
	if err != nil {
		return nil, err
	}
	words := []string{}
	scanner := bufio.NewScanner(dr)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func parseHeader(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: header %q must be \"<rows> <cols>\"", ErrMalformedPuzzle, line)
	}
	rows, err := strconv.Atoi(fields[0])
	if err != nil || rows < 1 {
		return 0, 0, fmt.Errorf("%w: bad row count %q", ErrMalformedPuzzle, fields[0])
	}
	cols, err := strconv.Atoi(fields[1])
	if err != nil || cols < 1 {
		return 0, 0, fmt.Errorf("%w: bad column count %q", ErrMalformedPuzzle, fields[1])
	}
	return rows, cols, nil
}

// ReadPuzzle parses a puzzle into rows of letters. Only the first rune of
// each token is kept. Blank lines after the last row are ignored.
func ReadPuzzle(r io.Reader, enc Encoding) ([][]rune, error) {
	dr, err := decoded(r, enc)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(dr)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: missing header", ErrMalformedPuzzle)
	}
	rows, cols, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, err
	}
	cells := make([][]rune, 0, rows)
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if len(cells) == rows {
			return nil, fmt.Errorf("%w: line %d: more than %d rows", ErrMalformedPuzzle, lineNum, rows)
		}
		if len(tokens) != cols {
			return nil, fmt.Errorf("%w: line %d has %d letters, expected %d",
				ErrMalformedPuzzle, lineNum, len(tokens), cols)
		}
		row := make([]rune, cols)
		for i, tok := range tokens {
			row[i], _ = utf8.DecodeRuneInString(tok)
		}
		cells = append(cells, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(cells) != rows {
		return nil, fmt.Errorf("%w: found %d rows, expected %d", ErrMalformedPuzzle, len(cells), rows)
	}
	return cells, nil
}

// LoadWordList reads a word list file.
func LoadWordList(filename string, enc Encoding) ([]string, error) {
	log.Debug().Str("filename", filename).Msg("loading-word-list")
	f, err := os.Open(filename)
	if err != nil {
		return nil, &LoadError{Path: filename, Err: err}
	}
	defer f.Close()
	words, err := ReadWordList(f, enc)
	if err != nil {
		return nil, &LoadError{Path: filename, Err: err}
	}
	log.Debug().Str("filename", filename).Int("lines", len(words)).Msg("loaded-word-list")
	return words, nil
}

// LoadPuzzle reads a puzzle file.
func LoadPuzzle(filename string, enc Encoding) ([][]rune, error) {
	log.Debug().Str("filename", filename).Msg("loading-puzzle")
	f, err := os.Open(filename)
	if err != nil {
		return nil, &LoadError{Path: filename, Err: err}
	}
	defer f.Close()
	cells, err := ReadPuzzle(f, enc)
	if err != nil {
		return nil, &LoadError{Path: filename, Err: err}
	}
	return cells, nil
}

// WritePuzzle writes cells in the puzzle format, so that a generated grid
// can be read back by ReadPuzzle.
func WritePuzzle(w io.Writer, cells [][]rune) error {
	if len(cells) == 0 {
		return fmt.Errorf("%w: no rows", ErrMalformedPuzzle)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(cells), len(cells[0]))
	for _, row := range cells {
		for i, c := range row {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteRune(c)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
