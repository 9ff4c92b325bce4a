package gomoku

import (
	"fmt"

	"github.com/pkg/errors"

	"gomoku-local/types"
)

var (
	// ErrInvalidMove is returned for a move off the board or onto an occupied cell.
	ErrInvalidMove = errors.New("invalid move")
	// ErrGameOver is returned for a move submitted after the game was won.
	ErrGameOver = errors.New("game is over")
	// ErrNotYourTurn is returned by PlayTurn when the other side is on move.
	ErrNotYourTurn = errors.New("not your turn")
	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrBoardChanged is returned when the board was modified while the computer
	// was searching.
	ErrBoardChanged = errors.New("board changed during search")
)

// Status is the coarse state of a game.
type Status int

const (
	InProgress Status = iota
	Won
)

// GameState is returned after every move. Winner is set when Status is Won.
type GameState struct {
	Status Status     `json:"status"`
	Winner types.Side `json:"winner"`
}

// Over reports whether the game has a winner.
func (s GameState) Over() bool { return s.Status == Won }

func (s GameState) String() string {
	if s.Status == Won {
		return fmt.Sprintf("Won(%v)", s.Winner)
	}
	return "InProgress"
}
