package shell

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/wordsearch/config"
)

// ShellCompleter completes command names, option names and some option
// values at the prompt.
type ShellCompleter struct {
	sc *ShellController
}

func (sc *ShellController) completer() *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"solve": {Options: []string{"-format", "-threads"}},
	"stats": {Options: []string{"-hist"}},
	"gen":   {Options: []string{"-fill", "-save"}},
	"set":   {Args: settable},
	"help":  {Args: []string{"lexicon", "load", "solve", "gen", "stats"}},
}

var commandNames = []string{
	"help", "lexicon", "load", "grid", "min", "set", "show", "transpose",
	"solve", "stats", "gen", "version", "exit",
}

var boolValues = []string{"true", "false"}

// lexiconNames lists the word lists in the configured lexicon directory.
func (c *ShellCompleter) lexiconNames() []string {
	dir := c.sc.config.GetString(config.ConfigLexiconPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "format":
				completions = []string{"text", "json", "yaml"}
			case "hist":
				completions = boolValues
			}
		}
		if completions == nil && cmdName == "lexicon" {
			completions = c.lexiconNames()
		}
		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
