package goban

import "gomoku-local/types"

// PossibleMoves returns every empty cell.
func (g *Goban) PossibleMoves() []types.Position {
	return g.EmptyCells().Positions()
}

// LimitedMoves returns the empty cells within radius steps (king moves) of a stone.
// With no stone on the board the result is empty.
func (g *Goban) LimitedMoves(radius int) []types.Position {
	return g.Neighbourhood(radius).Positions()
}

// Neighbourhood is LimitedMoves as a bitboard.
func (g *Goban) Neighbourhood(radius int) Bitboard {
	occupied := g.Occupied()
	area := occupied
	for i := 0; i < radius; i++ {
		area = area.Dilate()
	}
	return area.AndNot(occupied)
}
