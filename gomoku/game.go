// Package gomoku plays a game of five-in-a-row between a caller and the search engine.
package gomoku

import (
	"sync"

	"github.com/pkg/errors"

	"gomoku-local/eval"
	"gomoku-local/goban"
	"gomoku-local/search"
	"gomoku-local/types"
)

// Options configure a Game.
type Options struct {
	Computer types.Side // side played by the engine
	Depth    int        // default search depth for ChooseComputerMove
	Search   search.Options
}

// Game owns the board, the move history and the search engine. Its methods
// are safe for concurrent use; searches run without holding the game lock.
type Game struct {
	mu       sync.Mutex
	zobrist  *goban.Zobrist
	board    goban.Goban
	history  []goban.Move
	state    GameState
	version  uint64
	computer types.Side
	depth    int
	engine   *search.Engine
}

// New creates a game on an empty board.
func New(opts Options) (*Game, error) {
	if !opts.Computer.Valid() {
		return nil, errors.Errorf("computer side must be Black or White, got %v", opts.Computer)
	}
	if err := search.ValidateDepth(opts.Depth); err != nil {
		return nil, err
	}
	z := goban.DefaultZobrist()
	return &Game{
		zobrist:  z,
		board:    goban.New(z),
		computer: opts.Computer,
		depth:    opts.Depth,
		engine:   search.New(eval.NewThreatEvaluator(), opts.Search),
	}, nil
}

// Computer returns the side played by the engine.
func (g *Game) Computer() types.Side { return g.computer }

// Depth returns the configured search depth.
func (g *Game) Depth() int { return g.depth }

// Engine exposes the search engine, mostly for its cache statistics.
func (g *Game) Engine() *search.Engine { return g.engine }

// ApplyMove places a stone for side at p. An out of bounds or occupied cell
// yields ErrInvalidMove and leaves the board untouched.
func (g *Game) ApplyMove(p types.Position, side types.Side) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.applyLocked(p, side)
}

func (g *Game) applyLocked(p types.Position, side types.Side) (GameState, error) {
	if g.state.Over() {
		return g.state, errors.Wrapf(ErrGameOver, "%v already won", g.state.Winner)
	}
	if !side.Valid() {
		return g.state, errors.Wrapf(ErrInvalidMove, "no side to play %v", p)
	}
	if !p.InBounds() {
		return g.state, errors.Wrapf(ErrInvalidMove, "(%d,%d) is off the board", p.Row, p.Col)
	}
	if g.board.Get(p) != types.None {
		return g.state, errors.Wrapf(ErrInvalidMove, "%v is occupied", p)
	}

	m := goban.Move{Side: side, Position: p}
	g.board.Apply(m)
	g.history = append(g.history, m)
	g.version++
	if g.board.IsWon(side) {
		g.state = GameState{Status: Won, Winner: side}
	}
	return g.state, nil
}

// PlayTurn plays p for side if it is side's turn, checking the turn and placing
// the stone under one lock.
func (g *Game) PlayTurn(p types.Position, side types.Side) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.toMoveLocked() != side {
		return g.state, errors.Wrapf(ErrNotYourTurn, "%v to move", g.toMoveLocked())
	}
	return g.applyLocked(p, side)
}

// ChooseComputerMove searches for the computer's move at depth, plays it and
// returns it with the resulting state. depth must be even and at least 2; pass
// Depth() for the configured value.
func (g *Game) ChooseComputerMove(depth int) (types.Position, GameState, error) {
	if err := search.ValidateDepth(depth); err != nil {
		return types.Position{}, g.State(), err
	}
	g.mu.Lock()
	if g.state.Over() {
		st := g.state
		g.mu.Unlock()
		return types.Position{}, st, errors.Wrapf(ErrGameOver, "%v already won", st.Winner)
	}
	board, version := g.board, g.version
	g.mu.Unlock()

	d, err := g.engine.ChooseMove(board, g.computer, depth)
	if err != nil {
		return types.Position{}, g.State(), err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.version != version {
		return types.Position{}, g.state, ErrBoardChanged
	}
	st, err := g.applyLocked(d.Position, g.computer)
	return d.Position, st, err
}

// Hint returns the move the engine would play for side without playing it.
func (g *Game) Hint(side types.Side, depth int) (types.Position, error) {
	if err := search.ValidateDepth(depth); err != nil {
		return types.Position{}, err
	}
	g.mu.Lock()
	board := g.board
	g.mu.Unlock()

	d, err := g.engine.ChooseMove(board, side, depth)
	if err != nil {
		return types.Position{}, err
	}
	return d.Position, nil
}

// Undo takes back the last ply. The board is rebuilt from the remaining history.
func (g *Game) Undo() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.history) == 0 {
		return ErrNothingToUndo
	}
	g.history = g.history[:len(g.history)-1]
	g.replay()
	return nil
}

func (g *Game) replay() {
	g.board = goban.New(g.zobrist)
	g.state = GameState{}
	for _, m := range g.history {
		g.board.Apply(m)
		if g.board.IsWon(m.Side) {
			g.state = GameState{Status: Won, Winner: m.Side}
		}
	}
	g.version++
}

// Reset clears the board. The transposition cache is kept.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.history = nil
	g.replay()
}

// State returns the current game state.
func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// ToMove returns the side whose turn it is. Black moves first.
func (g *Game) ToMove() types.Side {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.toMoveLocked()
}

func (g *Game) toMoveLocked() types.Side {
	if len(g.history) == 0 {
		return types.Black
	}
	return g.history[len(g.history)-1].Side.Opponent()
}

// History returns the moves played so far, oldest first.
func (g *Game) History() []goban.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]goban.Move(nil), g.history...)
}

// Board returns a copy of the current board.
func (g *Game) Board() goban.Goban {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board
}

// Snapshot renders the game into a BoardState.
func (g *Game) Snapshot() *types.BoardState {
	g.mu.Lock()
	defer g.mu.Unlock()

	bs := types.NewBoardState(types.BoardSize)
	for _, side := range []types.Side{types.Black, types.White} {
		for _, p := range g.board.Stones(side).Positions() {
			bs.Board[p.Row][p.Col] = int(side)
		}
	}
	bs.MoveNumber = len(g.history)
	bs.PlayerToMove = int(g.toMoveLocked())
	if n := len(g.history); n > 0 {
		last := g.history[n-1].Position
		bs.LastMove.X, bs.LastMove.Y = last.Col, last.Row
	}
	if g.state.Over() {
		bs.Phase = "finished"
		bs.Winner = int(g.state.Winner)
		bs.Outcome = g.state.Winner.String() + " wins"
	}
	return bs
}

// String renders the board for debugging.
func (g *Game) String() string {
	return g.Board().String()
}
