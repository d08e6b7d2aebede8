package lexicon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordsearch/cache"
	"github.com/domino14/wordsearch/config"
	"github.com/domino14/wordsearch/puzzleio"
)

const (
	CacheKeyPrefix = "lexicon:"
)

var ErrBadName = errors.New("lexicon: name must be a bare lexicon name")

// ValidName reports whether name is a plain file name with no directory
// part, so that it can only refer to a file inside the lexicon path.
func ValidName(name string) bool {
	return name != "" && filepath.IsLocal(name) &&
		!strings.ContainsAny(name, `/\`) && name != "." && name != ".."
}

// Load reads a word list file and builds a lexicon named after the file.
// Read failures come back as a *puzzleio.LoadError.
func Load(filename string, enc puzzleio.Encoding) (*Lexicon, error) {
	lines, err := puzzleio.LoadWordList(filename, enc)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	lex := New(name, lines)
	log.Debug().Str("lexicon", name).Int("words", lex.Len()).Msg("built-lexicon")
	return lex, nil
}

// ResolvePath finds the word list file for name: the name itself if it
// exists, otherwise name (or name.txt) inside the configured lexicon path.
func ResolvePath(cfg *config.Config, name string) string {
	candidates := []string{name}
	if !filepath.IsAbs(name) {
		dir := cfg.GetString(config.ConfigLexiconPath)
		candidates = append(candidates,
			filepath.Join(dir, name),
			filepath.Join(dir, name+".txt"))
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return filepath.Clean(c)
		}
	}
	return filepath.Clean(name)
}

// ResolveNamed finds the word list for a bare name inside the configured
// lexicon path only: <lexicon-path>/name, then <lexicon-path>/name.txt.
func ResolveNamed(cfg *config.Config, name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	dir := cfg.GetString(config.ConfigLexiconPath)
	for _, c := range []string{filepath.Join(dir, name), filepath.Join(dir, name+".txt")} {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return filepath.Clean(c), nil
		}
	}
	return "", &puzzleio.LoadError{Path: filepath.Join(dir, name), Err: os.ErrNotExist}
}

// CacheLoadFunc is the function that loads a lexicon into the global cache.
func CacheLoadFunc(cfg *config.Config, key string) (any, error) {
	path := strings.TrimPrefix(key, CacheKeyPrefix)
	enc, err := puzzleio.ParseEncoding(cfg.GetString(config.ConfigEncoding))
	if err != nil {
		return nil, err
	}
	return Load(path, enc)
}

// Get loads a named lexicon from the cache or from a file. The name may be
// a path; see ResolvePath.
func Get(cfg *config.Config, name string) (*Lexicon, error) {
	return getResolved(cfg, ResolvePath(cfg, name))
}

// GetNamed is Get for untrusted names: only bare names inside the lexicon
// path are accepted, so callers cannot read arbitrary files.
func GetNamed(cfg *config.Config, name string) (*Lexicon, error) {
	path, err := ResolveNamed(cfg, name)
	if err != nil {
		return nil, err
	}
	return getResolved(cfg, path)
}

func getResolved(cfg *config.Config, path string) (*Lexicon, error) {
	key := CacheKeyPrefix + path
	obj, err := cache.Load(cfg, key, CacheLoadFunc)
	if err != nil {
		return nil, err
	}
	ret, ok := obj.(*Lexicon)
	if !ok {
		return nil, errors.New("could not read lexicon from cache")
	}
	return ret, nil
}
