// Package search chooses moves with a depth-limited alpha-beta search.
package search

import (
	"math"
	"runtime"
	"sort"

	"golang.org/x/exp/constraints"

	"gomoku-local/eval"
	"gomoku-local/goban"
	"gomoku-local/types"
)

const (
	// WinScore is the value of a position won by the searching side.
	WinScore = math.MaxInt32
	// LossScore is the value of a position lost by the searching side.
	LossScore = -WinScore

	// DefaultRadius bounds child generation to cells touching a stone.
	DefaultRadius = 1
)

// Options tune an Engine. Zero values select defaults.
type Options struct {
	Radius       int // move generator neighbourhood
	Workers      int // concurrent root candidates; 0 = one per CPU
	CacheStripes int
}

// Engine holds the evaluator and the transposition cache shared by every search
// it runs. An Engine is safe for concurrent use.
type Engine struct {
	evaluator eval.Evaluator
	cache     *Cache
	radius    int
	workers   int
}

// New creates an Engine scoring leaves with evaluator.
func New(evaluator eval.Evaluator, opts Options) *Engine {
	if opts.Radius < 1 {
		opts.Radius = DefaultRadius
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	return &Engine{
		evaluator: evaluator,
		cache:     NewCache(opts.CacheStripes),
		radius:    opts.Radius,
		workers:   opts.Workers,
	}
}

// Cache exposes the transposition cache.
func (e *Engine) Cache() *Cache { return e.cache }

// Radius returns the move generator neighbourhood.
func (e *Engine) Radius() int { return e.radius }

// searcher runs one sequential alpha-beta search for side. It is owned by a
// single goroutine.
type searcher struct {
	*Engine
	side  types.Side
	nodes int
}

func (e *Engine) newSearcher(side types.Side) *searcher {
	return &searcher{Engine: e, side: side}
}

// evaluate scores node from the searching side's point of view, cache first.
func (s *searcher) evaluate(node *goban.Goban) eval.Eval {
	key := CacheKey{Hash: node.Hash(), Side: s.side}
	return s.cache.GetOrCompute(key, func() eval.Eval {
		return s.evaluator.Evaluate(node.Stones(s.side), node.Stones(s.side.Opponent()))
	})
}

// score flattens an Eval onto the search scale.
func score(e eval.Eval) int {
	switch e.Outcome {
	case eval.Won:
		return WinScore
	case eval.Lost:
		return LossScore
	default:
		return bound(e.Score, LossScore+1, WinScore-1)
	}
}

func bound[T constraints.Ordered](v, low, high T) T {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

type child struct {
	board goban.Goban
	score int
}

// expand returns the children of node for mover, pre-scored one ply deep and
// sorted best first for the side to move.
func (s *searcher) expand(node *goban.Goban, mover types.Side, maximizing bool) []child {
	moves := node.LimitedMoves(s.radius)
	children := make([]child, len(moves))
	for i, p := range moves {
		children[i].board = *node
		children[i].board.Apply(goban.Move{Side: mover, Position: p})
		children[i].score = score(s.evaluate(&children[i].board))
	}
	sort.SliceStable(children, func(i, j int) bool {
		if maximizing {
			return children[i].score > children[j].score
		}
		return children[i].score < children[j].score
	})
	return children
}

// alphaBeta returns the minimax value of node searched depth plies deep.
// The searching side moves at maximizing nodes.
func (s *searcher) alphaBeta(node *goban.Goban, depth, alpha, beta int, maximizing bool) int {
	s.nodes++
	e := s.evaluate(node)
	if e.Terminal() || depth == 0 {
		return score(e)
	}

	mover := s.side
	if !maximizing {
		mover = s.side.Opponent()
	}
	children := s.expand(node, mover, maximizing)
	if len(children) == 0 {
		return score(e)
	}

	if maximizing {
		best := math.MinInt
		for i := range children {
			best = max(best, s.alphaBeta(&children[i].board, depth-1, alpha, beta, false))
			if best >= beta {
				break
			}
			alpha = max(alpha, best)
		}
		return best
	}

	best := math.MaxInt
	for i := range children {
		best = min(best, s.alphaBeta(&children[i].board, depth-1, alpha, beta, true))
		if best <= alpha {
			break
		}
		beta = min(beta, best)
	}
	return best
}
