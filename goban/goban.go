package goban

import (
	"fmt"
	"strings"

	"gomoku-local/types"
)

// WinLength is the number of aligned stones that wins the game.
const WinLength = 5

// Move is a stone placement.
type Move struct {
	Side     types.Side
	Position types.Position
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s", m.Side, m.Position)
}

// Goban is the board state: one bitboard per side plus the running Zobrist hash.
// It is a plain value; assigning it copies the whole board.
type Goban struct {
	stones  [2]Bitboard
	hash    uint64
	zobrist *Zobrist
}

// New returns an empty board hashed with z. A nil z selects DefaultZobrist.
func New(z *Zobrist) Goban {
	if z == nil {
		z = DefaultZobrist()
	}
	return Goban{zobrist: z}
}

// Hash returns the Zobrist hash of the current stone configuration.
func (g *Goban) Hash() uint64 { return g.hash }

// Zobrist returns the key table the board is hashed with.
func (g *Goban) Zobrist() *Zobrist { return g.zobrist }

// Stones returns the bitboard of side.
func (g *Goban) Stones(side types.Side) Bitboard { return g.stones[sideIndex(side)] }

// Occupied returns every cell holding a stone of either side.
func (g *Goban) Occupied() Bitboard { return g.stones[0].Or(g.stones[1]) }

// EmptyCells returns every on-board cell without a stone.
func (g *Goban) EmptyCells() Bitboard { return g.Occupied().Complement() }

// StoneCount returns the total number of stones on the board.
func (g *Goban) StoneCount() int { return g.Occupied().Count() }

// Get returns the side occupying p, or types.None.
func (g *Goban) Get(p types.Position) types.Side {
	i := IndexOf(p)
	switch {
	case g.stones[0].Has(i):
		return types.Black
	case g.stones[1].Has(i):
		return types.White
	default:
		return types.None
	}
}

// Set puts side on p, or clears p when side is types.None, keeping the hash in sync.
func (g *Goban) Set(p types.Position, side types.Side) {
	if current := g.Get(p); current != types.None {
		g.hash = g.zobrist.Update(g.hash, Move{Side: current, Position: p})
		g.stones[sideIndex(current)] = g.stones[sideIndex(current)].Remove(IndexOf(p))
	}
	if side.Valid() {
		g.Apply(Move{Side: side, Position: p})
	}
}

// Apply places m on the board and folds it into the hash.
// The cell must be empty; callers guarantee this.
func (g *Goban) Apply(m Move) {
	s := sideIndex(m.Side)
	g.stones[s] = g.stones[s].Add(IndexOf(m.Position))
	g.hash = g.zobrist.Update(g.hash, m)
}

// IsWon reports whether side has at least WinLength aligned stones.
func (g *Goban) IsWon(side types.Side) bool {
	return g.Stones(side).HasLine(WinLength)
}

// LongestLine returns the longest run of side's stones along axis.
func (g *Goban) LongestLine(side types.Side, axis Axis) int {
	return g.Stones(side).LongestLine(axis)
}

// Equal compares boards by hash.
func (g *Goban) Equal(o *Goban) bool { return g.hash == o.hash }

// String renders the board, one row per line: '_' empty, 'X' black, 'O' white.
func (g Goban) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			switch g.Get(types.Position{Row: row, Col: col}) {
			case types.Black:
				sb.WriteByte('X')
			case types.White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('_')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
