// Package local runs the Gomoku search engine in-process behind engine.GameEngine.
package local

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"gomoku-local/engine"
	"gomoku-local/gomoku"
	"gomoku-local/search"
	"gomoku-local/types"
)

var (
	ErrNotYourTurn = errors.New("not your turn")
	ErrThinking    = errors.New("engine is thinking")
)

// Engine implements engine.GameEngine on top of gomoku.Game. Computer
// replies are searched on their own goroutine.
type Engine struct {
	config      engine.GameConfig
	game        *gomoku.Game
	playerColor types.Side
	myTurn      bool
	thinking    bool
	closed      bool

	moveCallback func(x, y, color int, boardState *types.BoardState)
	endCallback  func(outcome string)

	mu sync.Mutex
	wg sync.WaitGroup
}

var _ engine.GameEngine = (*Engine)(nil)

// New creates a local engine with the given configuration.
func New(cfg engine.GameConfig) *Engine {
	return &Engine{
		config:      cfg,
		playerColor: types.Side(cfg.PlayerColor),
	}
}

// Connect creates the game. When the human plays white the engine opens.
func (e *Engine) Connect() error {
	if !e.playerColor.Valid() {
		return errors.Errorf("invalid player color %d", e.config.PlayerColor)
	}
	game, err := gomoku.New(gomoku.Options{
		Computer: e.playerColor.Opponent(),
		Depth:    e.config.SearchDepth,
		Search: search.Options{
			Radius:       e.config.Radius,
			Workers:      e.config.Workers,
			CacheStripes: e.config.CacheStripes,
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to start engine")
	}

	e.mu.Lock()
	e.game = game
	e.myTurn = e.playerColor == types.Black
	start := !e.myTurn
	if start {
		e.thinking = true
	}
	e.mu.Unlock()

	log.Debug().Str("human", e.playerColor.String()).Int("depth", e.config.SearchDepth).Msg("connect")
	if start {
		e.startEngineMove()
	}
	return nil
}

// Game exposes the underlying game.
func (e *Engine) Game() *gomoku.Game { return e.game }

// GetBoardState returns a snapshot of the board.
func (e *Engine) GetBoardState() *types.BoardState {
	return e.game.Snapshot()
}

// PlayMove plays the human move and starts the engine reply.
func (e *Engine) PlayMove(x, y int) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return errors.New("engine closed")
	}
	if !e.myTurn {
		e.mu.Unlock()
		return ErrNotYourTurn
	}

	p := types.Position{Row: y, Col: x}
	st, err := e.game.ApplyMove(p, e.playerColor)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	log.Debug().Str("move", p.String()).Str("side", e.playerColor.String()).Msg("human-move")

	e.myTurn = false
	if !st.Over() {
		e.thinking = true
	}
	snapshot := e.game.Snapshot()
	e.mu.Unlock()

	// Callbacks run outside the lock.
	if e.moveCallback != nil {
		e.moveCallback(x, y, int(e.playerColor), snapshot)
	}
	if st.Over() {
		e.handleGameEnd(snapshot.Outcome)
		return nil
	}

	e.startEngineMove()
	return nil
}

func (e *Engine) startEngineMove() {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.triggerEngineMove()
	}()
}

// triggerEngineMove searches and plays the computer move.
func (e *Engine) triggerEngineMove() {
	computer := e.playerColor.Opponent()
	p, st, err := e.game.ChooseComputerMove(e.game.Depth())

	e.mu.Lock()
	e.thinking = false
	if err != nil {
		e.myTurn = e.game.ToMove() == e.playerColor && !e.game.State().Over()
		e.mu.Unlock()
		log.Error().Err(err).Msg("engine-move")
		return
	}
	e.myTurn = !st.Over()
	snapshot := e.game.Snapshot()
	e.mu.Unlock()

	log.Debug().Str("move", p.String()).Str("side", computer.String()).Msg("engine-move")
	if e.moveCallback != nil {
		e.moveCallback(p.Col, p.Row, int(computer), snapshot)
	}
	if st.Over() {
		e.handleGameEnd(snapshot.Outcome)
	}
}

func (e *Engine) handleGameEnd(outcome string) {
	log.Debug().Str("outcome", outcome).Msg("game-end")
	if e.endCallback != nil {
		e.endCallback(outcome)
	}
}

// IsMyTurn returns true if it's the human player's turn.
func (e *Engine) IsMyTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.myTurn
}

// GetPlayerColor returns the human player's color (1=black, 2=white).
func (e *Engine) GetPlayerColor() int {
	return int(e.playerColor)
}

// OnMove registers a callback for when a move is played.
func (e *Engine) OnMove(callback func(x, y, color int, boardState *types.BoardState)) {
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *Engine) OnGameEnd(callback func(outcome string)) {
	e.endCallback = callback
}

// Undo takes back one ply. It fails while the engine is thinking.
// Undo takes back the last move. If that leaves the computer on move, as after
// undoing its opening, it starts thinking again.
func (e *Engine) Undo() error {
	e.mu.Lock()
	if e.thinking {
		e.mu.Unlock()
		return ErrThinking
	}
	if err := e.game.Undo(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.myTurn = e.game.ToMove() == e.playerColor
	restart := !e.myTurn && !e.closed && !e.game.State().Over()
	if restart {
		e.thinking = true
	}
	moves := len(e.game.History())
	e.mu.Unlock()

	log.Debug().Int("moves", moves).Bool("engine-to-move", restart).Msg("undo")
	if restart {
		e.startEngineMove()
	}
	return nil
}

// Hint suggests a move for the human player.
func (e *Engine) Hint() (int, int, error) {
	p, err := e.game.Hint(e.playerColor, e.game.Depth())
	if err != nil {
		return -1, -1, err
	}
	return p.Col, p.Row, nil
}

// Wait blocks until no engine move is pending.
func (e *Engine) Wait() { e.wg.Wait() }

// Close refuses further moves and waits for a pending engine move.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.wg.Wait()
}
