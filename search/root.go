package search

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"gomoku-local/goban"
	"gomoku-local/types"
)

// Decision is the result of a root search.
type Decision struct {
	Position   types.Position
	Score      int
	Candidates int
	Nodes      int
	Elapsed    time.Duration
}

type rootResult struct {
	position types.Position
	score    int
	nodes    int
}

// ChooseMove picks the move for side on board. depth counts plies including the
// root move and must be even and at least 2. Every root candidate is searched on
// its own goroutine with its own board copy; ties go to the candidate the move
// generator listed first.
func (e *Engine) ChooseMove(board goban.Goban, side types.Side, depth int) (Decision, error) {
	if err := ValidateDepth(depth); err != nil {
		return Decision{}, err
	}
	if !side.Valid() {
		return Decision{}, errors.Errorf("cannot search for side %v", side)
	}

	candidates := board.LimitedMoves(e.radius)
	if len(candidates) == 0 {
		candidates = board.PossibleMoves()
	}
	if len(candidates) == 0 {
		return Decision{}, errors.Wrap(ErrNoMoveAvailable, "board is full")
	}

	start := time.Now()

	// A move that completes five needs no search.
	for _, p := range candidates {
		next := board
		next.Apply(goban.Move{Side: side, Position: p})
		if next.IsWon(side) {
			log.Debug().Str("move", p.String()).Msg("immediate-win")
			return Decision{Position: p, Score: WinScore, Candidates: len(candidates), Elapsed: time.Since(start)}, nil
		}
	}

	results := make([]rootResult, len(candidates))
	g := errgroup.Group{}
	g.SetLimit(e.workers)
	for i, p := range candidates {
		i, p := i, p
		g.Go(func() error {
			s := e.newSearcher(side)
			next := board
			next.Apply(goban.Move{Side: side, Position: p})
			v := s.alphaBeta(&next, depth-1, math.MinInt, math.MaxInt, false)
			results[i] = rootResult{position: p, score: v, nodes: s.nodes}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Decision{}, err
	}

	best := lo.MaxBy(results, func(a, b rootResult) bool { return a.score > b.score })
	d := Decision{
		Position:   best.position,
		Score:      best.score,
		Candidates: len(candidates),
		Nodes:      lo.SumBy(results, func(r rootResult) int { return r.nodes }),
		Elapsed:    time.Since(start),
	}
	log.Debug().
		Str("side", side.String()).
		Int("depth", depth).
		Int("candidates", d.Candidates).
		Str("best", d.Position.String()).
		Int("score", d.Score).
		Int("nodes", d.Nodes).
		Int("cache", e.cache.Len()).
		Dur("elapsed", d.Elapsed).
		Msg("root-decision")
	return d, nil
}
