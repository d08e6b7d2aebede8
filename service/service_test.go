package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordsearch/config"
	"github.com/domino14/wordsearch/search"
)

func testSolver() *Solver {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigLexiconPath, "../lexicon/testdata")
	cfg.Set(config.ConfigMinLength, 3)
	return NewSolver(cfg)
}

func decode(t *testing.T, data []byte) *Response {
	t.Helper()
	resp := &Response{}
	if err := json.Unmarshal(data, resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHandleSolves(t *testing.T) {
	is := is.New(t)
	s := testSolver()
	out := s.handle(context.Background(),
		[]byte(`{"lexicon": "tiny", "puzzle": ["cat", "owl", "dog"]}`))
	resp := decode(t, out)
	is.Equal(resp.Error, "")
	is.Equal(resp.Lexicon, "tiny")
	is.Equal(resp.MinLength, 3)
	is.Equal(len(resp.Checksum), 16)
	is.Equal(resp.Count, 3)
	is.Equal(resp.Matches[0], search.Match{Word: "cat",
		Start: search.Coord{Row: 0, Col: 0}, End: search.Coord{Row: 0, Col: 2},
		Axis: search.Horizontal})
	is.True(strings.Contains(string(out), `"axis":"horizontal"`))
}

func TestHandleMinLength(t *testing.T) {
	is := is.New(t)
	s := testSolver()
	resp := decode(t, s.handle(context.Background(),
		[]byte(`{"lexicon": "tiny", "puzzle": ["racecar"], "min_length": 7}`)))
	is.Equal(resp.Error, "")
	// a palindrome is reported once for each reading
	is.Equal(resp.Count, 2)
	is.Equal(resp.Matches[0].Start, resp.Matches[1].End)
}

func TestHandleErrors(t *testing.T) {
	is := is.New(t)
	s := testSolver()
	ctx := context.Background()

	cases := map[string]string{
		`not json`: "could not parse request",
		`{"puzzle": ["cat"]}`: "bad request",
		`{"lexicon": "nope", "puzzle": ["cat"]}`: "could not load lexicon",
		`{"lexicon": "/etc/hostname", "puzzle": ["cat"]}`: "bad request",
		`{"lexicon": "../lexicon/testdata/tiny.txt", "puzzle": ["cat"]}`: "bad request",
		`{"lexicon": "../../../../../../../../etc/hostname", "puzzle": ["cat"]}`: "bad request",
		`{"lexicon": "tiny", "puzzle": []}`: "bad puzzle",
		`{"lexicon": "tiny", "puzzle": ["cat", "ow"]}`: "bad puzzle",
		`{"lexicon": "tiny", "puzzle": ["cat"], "min_length": -1}`: "solve failed",
	}
	for req, prefix := range cases {
		resp := decode(t, s.handle(ctx, []byte(req)))
		is.True(strings.HasPrefix(resp.Error, prefix)) // error prefix
		is.Equal(len(resp.Matches), 0)
	}
}

func TestHandleRejectsPathsToRealFiles(t *testing.T) {
	is := is.New(t)
	s := testSolver()
	dir := t.TempDir()
	secret := filepath.Join(dir, "secret.txt")
	is.NoErr(os.WriteFile(secret, []byte("hunter\n"), 0o600))

	req, err := json.Marshal(Request{Lexicon: secret, Puzzle: []string{"hunterxx"}})
	is.NoErr(err)
	resp := decode(t, s.handle(context.Background(), req))
	is.True(strings.HasPrefix(resp.Error, "bad request"))
	is.Equal(len(resp.Matches), 0)
	is.Equal(resp.Lexicon, "")
}
