package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/domino14/wordsearch/search"
)

var errUsage = errors.New("usage: wordsearch [flags] <dictionary> <puzzle> [min-length]")

type invocation struct {
	dictionary string
	puzzle     string
	minLength  int
}

// parseArgs reads the positional arguments left after flag parsing. The
// optional third argument overrides defaultMin. A negative minimum has to
// be passed after "--", since the flag parser takes "-1" for a flag, and is
// rejected here.
func parseArgs(args []string, defaultMin int) (*invocation, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, errUsage
	}
	inv := &invocation{dictionary: args[0], puzzle: args[1], minLength: defaultMin}
	if len(args) == 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("minimum length must be a number: %q", args[2])
		}
		inv.minLength = n
	}
	if inv.minLength < 0 {
		return nil, search.ErrInvalidMinLength
	}
	return inv, nil
}
