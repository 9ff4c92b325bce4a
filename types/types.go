// Package types contains shared data structures for gomoku-local.
package types

import "encoding/json"

// BoardSize is the number of rows and columns of the playing grid.
const BoardSize = 19

// Side identifies the owner of a stone. None marks an empty cell.
type Side int

const (
	None Side = iota
	Black
	White
)

// Opponent returns the other playing side. None has no opponent and is returned unchanged.
func (s Side) Opponent() Side {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		return None
	}
}

// Valid reports whether s is one of the two playing sides.
func (s Side) Valid() bool {
	return s == Black || s == White
}

func (s Side) String() string {
	switch s {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "None"
	}
}

// Position is a (row, col) cell coordinate, row 0 at the top.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether p lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// BoardState is a rendering snapshot of a game.
// Board is indexed as Board[row][col] where 0=empty, 1=black, 2=white.
type BoardState struct {
	MoveNumber   int     `json:"move_number"`
	PlayerToMove int     `json:"player_to_move"` // 1=black, 2=white
	Phase        string  `json:"phase"`          // "playing", "finished"
	Board        [][]int `json:"board"`
	Outcome      string  `json:"outcome"`
	Winner       int     `json:"winner"`
	LastMove     struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"last_move"`
}

// Finished returns true if the game is over.
func (b *BoardState) Finished() bool {
	return b.Phase == "finished"
}

// Height returns the board height.
func (b *BoardState) Height() int {
	return len(b.Board)
}

// Width returns the board width.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Board[0])
}

// BoardPos represents a position on the screen grid, X=column, Y=row.
type BoardPos struct {
	X int
	Y int
}

// UnmarshalJSON allows BoardPos to be unmarshaled from a JSON array [x, y].
func (p *BoardPos) UnmarshalJSON(data []byte) error {
	var v []float64
	err := json.Unmarshal(data, &v)
	if err != nil {
		return err
	}
	p.X = int(v[0])
	p.Y = int(v[1])
	return nil
}

// Position converts the screen coordinate into a board Position.
func (p BoardPos) Position() Position {
	return Position{Row: p.Y, Col: p.X}
}

// NewBoardState creates a new empty board of the given size.
func NewBoardState(size int) *BoardState {
	board := make([][]int, size)
	for i := range board {
		board[i] = make([]int, size)
	}
	return &BoardState{
		MoveNumber:   0,
		PlayerToMove: int(Black), // Black plays first
		Phase:        "playing",
		Board:        board,
		LastMove: struct {
			X int `json:"x"`
			Y int `json:"y"`
		}{X: -1, Y: -1},
	}
}
