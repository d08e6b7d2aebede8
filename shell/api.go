package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordsearch/config"
	"github.com/domino14/wordsearch/grid"
	"github.com/domino14/wordsearch/lexicon"
	"github.com/domino14/wordsearch/puzzleio"
	"github.com/domino14/wordsearch/puzzles"
	"github.com/domino14/wordsearch/report"
	"github.com/domino14/wordsearch/search"
)

const histogramWidth = 40

type Response struct {
	message string
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) Int(key string) (int, error) {
	v, ok := c[key]
	if !ok {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v)
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	if _, ok := c[key]; !ok {
		return defaultI, nil
	}
	return c.Int(key)
}

func (c CmdOptions) Bool(key string) bool {
	return strings.ToLower(c[key]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}

func (sc *ShellController) encoding() (puzzleio.Encoding, error) {
	return puzzleio.ParseEncoding(sc.config.GetString(config.ConfigEncoding))
}

func (sc *ShellController) setLexicon(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		if sc.lexicon == nil {
			return msg("no lexicon loaded"), nil
		}
		return msg(fmt.Sprintf("%s (%d words, checksum %s)", sc.lexicon.Name(),
			sc.lexicon.Len(), sc.lexicon.Checksum())), nil
	}
	lex, err := lexicon.Get(sc.config, cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.lexicon = lex
	sc.lastMatches = nil
	return msg(fmt.Sprintf("loaded lexicon %s with %d words", lex.Name(), lex.Len())), nil
}

func (sc *ShellController) setGrid(g *grid.Grid) {
	sc.grid = g
	sc.lastMatches = nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need a puzzle file to load")
	}
	enc, err := sc.encoding()
	if err != nil {
		return nil, err
	}
	cells, err := puzzleio.LoadPuzzle(cmd.args[0], enc)
	if err != nil {
		return nil, err
	}
	g, err := grid.New(cells)
	if err != nil {
		return nil, err
	}
	sc.setGrid(g)
	return msg(g.ToDisplayText()), nil
}

// inlineGrid takes the rows of a puzzle on the command line:
// grid cat owl dog
func (sc *ShellController) inlineGrid(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need at least one row")
	}
	g, err := grid.FromStrings(cmd.args)
	if err != nil {
		return nil, err
	}
	sc.setGrid(g)
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) min(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(strconv.Itoa(sc.minLength)), nil
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, search.ErrInvalidMinLength
	}
	sc.minLength = n
	return msg("set minimum length to " + strconv.Itoa(n)), nil
}

var settable = []string{config.ConfigThreads, config.ConfigFormat,
	config.ConfigEncoding, config.ConfigLexiconPath}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		var sb strings.Builder
		for _, k := range settable {
			fmt.Fprintf(&sb, "%-14s%v\n", k, sc.config.Get(k))
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	key := cmd.args[0]
	found := false
	for _, k := range settable {
		if k == key {
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("cannot set %s", key)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprint(sc.config.Get(key))), nil
	}
	val := cmd.args[1]
	switch key {
	case config.ConfigThreads:
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, errors.New("threads must be at least 1")
		}
		sc.config.Set(key, n)
	case config.ConfigFormat:
		f, err := report.ParseFormat(val)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, string(f))
	case config.ConfigEncoding:
		e, err := puzzleio.ParseEncoding(val)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, string(e))
	default:
		sc.config.Set(key, val)
	}
	return msg("set " + key + " to " + val), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.grid == nil {
		return nil, errNoGrid
	}
	return msg(strings.TrimRight(sc.grid.ToDisplayText(), "\n")), nil
}

func (sc *ShellController) transpose(cmd *shellcmd) (*Response, error) {
	if sc.grid == nil {
		return nil, errNoGrid
	}
	sc.grid.Transpose()
	sc.lastMatches = nil
	return msg(strings.TrimRight(sc.grid.ToDisplayText(), "\n")), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if sc.lexicon == nil {
		return nil, errNoLexicon
	}
	if sc.grid == nil {
		return nil, errNoGrid
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	formatName := cmd.options.String("format")
	if formatName == "" {
		formatName = sc.config.GetString(config.ConfigFormat)
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	matches, err := search.FindMatchesParallel(context.Background(), sc.grid,
		sc.lexicon, sc.minLength, threads)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("matches", len(matches)).Dur("elapsed", time.Since(start)).
		Msg("solved")
	sc.lastMatches = matches

	var sb strings.Builder
	if err := report.Write(&sb, format, sc.lexicon.Name(), sc.grid, sc.minLength, matches); err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) stats(cmd *shellcmd) (*Response, error) {
	if sc.lastMatches == nil {
		return nil, errors.New("nothing solved yet; use the `solve` command")
	}
	var sb strings.Builder
	var err error
	if cmd.options.Bool("hist") {
		err = report.WriteLengthHistogram(&sb, sc.lastMatches, histogramWidth)
	} else {
		err = report.WriteLengthTable(&sb, sc.lastMatches)
	}
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

// gen makes a new puzzle: gen <rows> <cols> word1 word2 ... [-fill letters] [-save file]
func (sc *ShellController) gen(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 3 {
		return nil, errors.New("usage: gen <rows> <cols> <word> [<word> ...]")
	}
	rows, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	cols, err := strconv.Atoi(cmd.args[1])
	if err != nil {
		return nil, err
	}
	g, placements, err := puzzles.Generate(cmd.args[2:], rows, cols,
		&puzzles.Options{Fill: cmd.options.String("fill")})
	if err != nil {
		return nil, err
	}
	sc.setGrid(g)

	var sb strings.Builder
	sb.WriteString(g.ToDisplayText())
	for _, p := range placements {
		sb.WriteString("\n" + report.FormatMatch(p))
	}
	if path := cmd.options.String("save"); path != "" {
		if err := savePuzzle(path, g); err != nil {
			return nil, err
		}
		sb.WriteString("\nsaved to " + path)
	}
	return msg(sb.String()), nil
}

func savePuzzle(path string, g *grid.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	cells := make([][]rune, g.Rows())
	for i := range cells {
		cells[i] = []rune(g.Row(i))
	}
	if err := puzzleio.WritePuzzle(f, cells); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
