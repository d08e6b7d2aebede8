package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordsearch/config"
	"github.com/domino14/wordsearch/grid"
	"github.com/domino14/wordsearch/lexicon"
	"github.com/domino14/wordsearch/search"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoLexicon         = errors.New("please load a lexicon first with the `lexicon` command")
	errNoGrid            = errors.New("please load a puzzle first with the `load` or `gen` command")
	errQuit              = errors.New("sending quit signal")
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config     *config.Config
	execPath   string
	gitVersion string

	lexicon     *lexicon.Lexicon
	grid        *grid.Grid
	minLength   int
	lastMatches []search.Match
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := &ShellController{
		config:     cfg,
		execPath:   execPath,
		gitVersion: gitVersion,
		minLength:  cfg.GetInt(config.ConfigMinLength),
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mwordsearch>\033[0m ",
		HistoryFile:     "/tmp/wordsearch_readline.tmp",
		AutoComplete:    sc.completer(),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

// extractFields splits a command line into the command, its positional
// arguments and its -option value pairs. Only options listed for the
// command in commandMetadata are taken as options; any other token, such
// as a negative number, is a positional argument.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}

	known := commandMetadata[cmd].Options
	for idx := 1; idx < len(fields); idx++ {
		if slices.Contains(known, fields[idx]) {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[idx][1:]] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{
		cmd:     cmd,
		args:    args,
		options: options,
	}, nil
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "help":
		return sc.help(cmd)
	case "lexicon":
		return sc.setLexicon(cmd)
	case "load":
		return sc.load(cmd)
	case "grid":
		return sc.inlineGrid(cmd)
	case "min":
		return sc.min(cmd)
	case "set":
		return sc.set(cmd)
	case "show":
		return sc.show(cmd)
	case "transpose":
		return sc.transpose(cmd)
	case "solve":
		return sc.solve(cmd)
	case "stats":
		return sc.stats(cmd)
	case "gen":
		return sc.gen(cmd)
	case "version":
		return msg(sc.gitVersion), nil
	}
	return nil, fmt.Errorf("command %v not found", cmd.cmd)
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if err == errNoData {
		return nil
	}
	if err != nil {
		showMessage("Error: "+err.Error(), sc.out)
		return nil
	}
	if cmd.cmd == "exit" {
		sig <- syscall.SIGINT
		return errQuit
	}
	resp, err := sc.dispatch(cmd)
	if err != nil {
		showMessage("Error: "+err.Error(), sc.out)
		return nil
	}
	if resp != nil && resp.message != "" {
		showMessage(resp.message, sc.out)
	}
	return nil
}

// Execute runs a single command line, as if typed at the prompt.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if err := sc.standardModeSwitch(strings.TrimSpace(line), sig); err != nil {
		log.Debug().Err(err).Msg("execute")
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if err := sc.standardModeSwitch(line, sig); err != nil {
			if err != errQuit {
				log.Error().Err(err).Msg("")
			}
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup closes the terminal, if one is open.
func (sc *ShellController) Cleanup() {
	if sc.l != nil {
		sc.l.Close()
	}
}
