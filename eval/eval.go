// Package eval scores Gomoku positions.
package eval

import (
	"fmt"

	"gomoku-local/goban"
)

// Outcome tags an Eval.
type Outcome uint8

const (
	Undecided Outcome = iota
	Won
	Lost
)

// Eval is the result of scoring a position from one side's point of view.
// Won and Lost are terminal; Score is only meaningful when Outcome is Undecided.
type Eval struct {
	Outcome Outcome
	Score   int
}

// Score wraps a heuristic value.
func Score(v int) Eval { return Eval{Outcome: Undecided, Score: v} }

// Terminal reports whether the position is decided.
func (e Eval) Terminal() bool { return e.Outcome != Undecided }

func (e Eval) String() string {
	switch e.Outcome {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("score(%d)", e.Score)
	}
}

// Evaluator scores a position given the stones of the evaluated side (own) and of
// its opponent (opp). Implementations must be safe for concurrent use.
type Evaluator interface {
	Evaluate(own, opp goban.Bitboard) Eval
}
