// Package engine defines the interface between the user interface and a game engine.
package engine

import "gomoku-local/types"

// GameEngine defines the interface for playing Gomoku against an engine.
type GameEngine interface {
	// Connect initializes the game. If the engine moves first it starts thinking.
	Connect() error

	// GetBoardState returns the current board state.
	GetBoardState() *types.BoardState

	// PlayMove plays the human move at column x, row y.
	// Returns an error if the move is illegal or it is not the human's turn.
	PlayMove(x, y int) error

	// IsMyTurn returns true if it's the human player's turn.
	IsMyTurn() bool

	// GetPlayerColor returns the human player's color (1=black, 2=white).
	GetPlayerColor() int

	// OnMove registers a callback for when a move is played (by either player).
	// boardState is a copy owned by the callee.
	OnMove(func(x, y, color int, boardState *types.BoardState))

	// Undo undoes the last move (one ply). Call twice to undo a player+engine move pair.
	Undo() error

	// Hint returns the move the engine suggests for the human player.
	Hint() (x, y int, err error)

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome string))

	// Close waits for a pending engine move and shuts the engine down.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	PlayerColor  int // 1=black, 2=white
	SearchDepth  int // plies, even and at least 2
	Radius       int // candidate neighbourhood
	Workers      int // 0 = one per CPU
	CacheStripes int
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		PlayerColor: 1, // Human plays black
		SearchDepth: 4,
		Radius:      1,
	}
}
