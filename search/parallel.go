package search

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/wordsearch/grid"
)

// FindMatchesParallel runs the same scan as FindMatches with rows shared out
// among threads goroutines. Each goroutine collects into its own slice; the
// slices are merged and sorted with SortMatches once all are done, so the
// output is deterministic. If ctx is cancelled the scan stops between rows
// and returns ctx.Err() with no matches.
func FindMatchesParallel(ctx context.Context, g *grid.Grid, d Dictionary,
	minLength int, threads int) ([]Match, error) {

	if err := validate(g, minLength); err != nil {
		return nil, err
	}
	if minLength > max(g.Rows(), g.Cols()) {
		return []Match{}, nil
	}
	threads = max(1, min(threads, g.Rows()))

	perThread := make([][]Match, threads)
	eg, ctx := errgroup.WithContext(ctx)
	for t := 0; t < threads; t++ {
		t := t
		eg.Go(func() error {
			s := newScanner(g, d, minLength)
			for r := t; r < g.Rows(); r += threads {
				if err := ctx.Err(); err != nil {
					return err
				}
				for c := 0; c < g.Cols(); c++ {
					s.scanCell(r, c)
				}
			}
			log.Debug().Int("thread", t).Int("matches", len(s.matches)).
				Int("lookups", s.lookups).Msg("scan-thread-finished")
			perThread[t] = s.matches
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	matches := lo.Flatten(perThread)
	SortMatches(matches)
	return matches, nil
}
