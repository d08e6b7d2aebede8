// Package lexicon provides the word list that grid runs are checked against.
package lexicon

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/samber/lo"
)

// A Lexicon is an immutable, sorted set of lower-cased words. Membership,
// prefix and suffix queries are binary searches, O(log n) in the number of
// words. It is safe for concurrent readers.
type Lexicon struct {
	name  string
	words []string
	// reversed holds every word spelled backwards, sorted, for suffix queries.
	reversed []string
	checksum uint64
}

// Normalize is the case normalization applied to words and candidates.
func Normalize(s string) string {
	return strings.ToLower(s)
}

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	r := []rune(s)
	slices.Reverse(r)
	return string(r)
}

// Compare is the ordering rule for words: byte-wise ascending, which for
// UTF-8 is the same as code point order.
func Compare(a, b string) int {
	return strings.Compare(a, b)
}

// New builds a lexicon from raw word-list lines. Surrounding whitespace is
// trimmed, lines are normalized, blank lines are dropped and duplicates
// collapsed.
func New(name string, lines []string) *Lexicon {
	words := lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		w := Normalize(strings.TrimSpace(line))
		return w, w != ""
	})
	slices.SortFunc(words, Compare)
	words = slices.Compact(words)

	reversed := lo.Map(words, func(w string, _ int) string {
		return Reverse(w)
	})
	slices.SortFunc(reversed, Compare)

	h := xxhash.New()
	for _, w := range words {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return &Lexicon{name: name, words: words, reversed: reversed, checksum: h.Sum64()}
}

func (l *Lexicon) Name() string {
	return l.name
}

// Checksum identifies the word set: two lexicons with the same words, in
// any order or case, have the same checksum whatever their names.
func (l *Lexicon) Checksum() string {
	return fmt.Sprintf("%016x", l.checksum)
}

// Len is the number of distinct words.
func (l *Lexicon) Len() int {
	return len(l.words)
}

// Words returns the sorted words. The slice must not be modified.
func (l *Lexicon) Words() []string {
	return l.words
}

// Contains reports whether candidate, once normalized, is a word.
func (l *Lexicon) Contains(candidate string) bool {
	_, found := slices.BinarySearchFunc(l.words, Normalize(candidate), Compare)
	return found
}

func hasPrefix(sorted []string, prefix string) bool {
	i, _ := slices.BinarySearchFunc(sorted, prefix, Compare)
	return i < len(sorted) && strings.HasPrefix(sorted[i], prefix)
}

// HasPrefix reports whether some word starts with prefix. Every word is a
// prefix of itself.
func (l *Lexicon) HasPrefix(prefix string) bool {
	return hasPrefix(l.words, Normalize(prefix))
}

// HasSuffix reports whether some word ends with suffix.
func (l *Lexicon) HasSuffix(suffix string) bool {
	return hasPrefix(l.reversed, Reverse(Normalize(suffix)))
}
