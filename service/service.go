// Package service answers solve requests over NATS. A request names a word
// list and carries the rows of a puzzle; the reply lists every match.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordsearch/config"
	"github.com/domino14/wordsearch/grid"
	"github.com/domino14/wordsearch/lexicon"
	"github.com/domino14/wordsearch/search"
)

const connectAttempts = 5

type Request struct {
	Lexicon string   `json:"lexicon"`
	Puzzle  []string `json:"puzzle"`
	// MinLength falls back to the configured min-length when absent.
	MinLength *int `json:"min_length,omitempty"`
}

type Response struct {
	Lexicon   string         `json:"lexicon,omitempty"`
	Checksum  string         `json:"lexicon_checksum,omitempty"`
	MinLength int            `json:"min_length"`
	Count     int            `json:"count"`
	Matches   []search.Match `json:"matches"`
	Error     string         `json:"error,omitempty"`
}

type Solver struct {
	config *config.Config
}

func NewSolver(cfg *config.Config) *Solver {
	return &Solver{config: cfg}
}

func errorResponse(message string, err error) *Response {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &Response{Matches: []search.Match{}, Error: msg}
}

// Solve runs one request. Failures are reported in the response rather
// than as an error, so the caller always has something to send back.
func (s *Solver) Solve(ctx context.Context, req *Request) *Response {
	if req.Lexicon == "" {
		return errorResponse("bad request", errors.New("no lexicon given"))
	}
	if !lexicon.ValidName(req.Lexicon) {
		return errorResponse("bad request", lexicon.ErrBadName)
	}
	lex, err := lexicon.GetNamed(s.config, req.Lexicon)
	if err != nil {
		return errorResponse("could not load lexicon", err)
	}
	g, err := grid.FromStrings(req.Puzzle)
	if err != nil {
		return errorResponse("bad puzzle", err)
	}
	minLength := s.config.GetInt(config.ConfigMinLength)
	if req.MinLength != nil {
		minLength = *req.MinLength
	}
	matches, err := search.FindMatchesParallel(ctx, g, lex, minLength,
		s.config.GetInt(config.ConfigThreads))
	if err != nil {
		return errorResponse("solve failed", err)
	}
	return &Response{
		Lexicon:   lex.Name(),
		Checksum:  lex.Checksum(),
		MinLength: minLength,
		Count:     len(matches),
		Matches:   matches,
	}
}

func (s *Solver) handle(ctx context.Context, data []byte) []byte {
	req := &Request{}
	var resp *Response
	if err := json.Unmarshal(data, req); err != nil {
		resp = errorResponse("could not parse request", err)
	} else {
		resp = s.Solve(ctx, req)
	}
	out, err := json.Marshal(resp)
	if err != nil {
		// Should never happen.
		return []byte(`{"matches":[],"error":"` + err.Error() + `"}`)
	}
	return out
}

// Run subscribes to the configured subject and answers requests until ctx
// is done, then drains the connection.
func Run(ctx context.Context, s *Solver) error {
	url := s.config.GetString(config.ConfigNatsURL)
	subject := s.config.GetString(config.ConfigNatsSubject)
	var nc *nats.Conn
	err := retry.Do(
		func() error {
			var err error
			nc, err = nats.Connect(url, nats.Name("wordsearch-solver"))
			return err
		},
		retry.Context(ctx),
		retry.Attempts(connectAttempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Str("url", url).Msg("could-not-connect-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return err
	}
	_, err = nc.Subscribe(subject, func(m *nats.Msg) {
		log.Info().Int("bytes", len(m.Data)).Msg("received-request")
		if err := m.Respond(s.handle(ctx, m.Data)); err != nil {
			log.Err(err).Msg("respond-failed")
		}
	})
	if err != nil {
		nc.Close()
		return err
	}
	if err := nc.Flush(); err != nil {
		nc.Close()
		return err
	}
	if err := nc.LastError(); err != nil {
		nc.Close()
		return err
	}
	log.Info().Str("subject", subject).Str("url", url).Msg("listening")

	<-ctx.Done()
	log.Info().Msg("draining")
	return nc.Drain()
}
