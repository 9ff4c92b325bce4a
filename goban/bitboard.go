// Package goban holds the bit-packed board representation used by the search engine.
package goban

import (
	"math/bits"

	"gomoku-local/types"
)

const (
	// Size is the number of rows and columns.
	Size = types.BoardSize
	// RowStride is the bit distance between two vertically adjacent cells.
	// The extra column is a sentinel that is never set, so row scans cannot wrap.
	RowStride = Size + 1
	// BitSize is the number of addressable bits, sentinels included.
	BitSize = Size * RowStride

	words = (BitSize + 63) / 64
)

// Bitboard is a set of cells, bit row*RowStride+col per cell.
type Bitboard [words]uint64

// playable has every on-board bit set and every sentinel or padding bit clear.
var playable Bitboard

func init() {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			playable = playable.Add(Index(row, col))
		}
	}
}

// Index returns the bit index of (row, col).
func Index(row, col int) int { return row*RowStride + col }

// IndexOf returns the bit index of p.
func IndexOf(p types.Position) int { return Index(p.Row, p.Col) }

// PositionOf converts a bit index back to a Position.
func PositionOf(index int) types.Position {
	return types.Position{Row: index / RowStride, Col: index % RowStride}
}

// Playable returns the set of all on-board cells.
func Playable() Bitboard { return playable }

func (b Bitboard) Has(i int) bool { return b[i>>6]&(1<<(uint(i)&63)) != 0 }

func (b Bitboard) Add(i int) Bitboard {
	b[i>>6] |= 1 << (uint(i) & 63)
	return b
}

func (b Bitboard) Remove(i int) Bitboard {
	b[i>>6] &^= 1 << (uint(i) & 63)
	return b
}

func (b Bitboard) Or(o Bitboard) Bitboard {
	for i := range b {
		b[i] |= o[i]
	}
	return b
}

func (b Bitboard) And(o Bitboard) Bitboard {
	for i := range b {
		b[i] &= o[i]
	}
	return b
}

func (b Bitboard) AndNot(o Bitboard) Bitboard {
	for i := range b {
		b[i] &^= o[i]
	}
	return b
}

// Complement returns the on-board cells that are not in b.
func (b Bitboard) Complement() Bitboard {
	return playable.AndNot(b)
}

func (b Bitboard) Empty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

func (b Bitboard) Count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// Iter calls fn for every set bit in ascending index order.
func (b Bitboard) Iter(fn func(index int)) {
	for wi, w := range b {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			fn(wi*64 + tz)
			w &= w - 1
		}
	}
}

// Positions lists the cells in b in ascending index order.
func (b Bitboard) Positions() []types.Position {
	out := make([]types.Position, 0, b.Count())
	b.Iter(func(index int) {
		out = append(out, PositionOf(index))
	})
	return out
}

// shiftUp moves every bit n places toward higher indices. Bits that land on a
// sentinel or fall off the end are dropped.
func (b Bitboard) shiftUp(n int) Bitboard {
	var out Bitboard
	w, s := n/64, uint(n%64)
	for i := len(b) - 1; i >= w; i-- {
		out[i] = b[i-w] << s
		if s > 0 && i-w-1 >= 0 {
			out[i] |= b[i-w-1] >> (64 - s)
		}
	}
	return out.And(playable)
}

// shiftDown moves every bit n places toward lower indices.
func (b Bitboard) shiftDown(n int) Bitboard {
	var out Bitboard
	w, s := n/64, uint(n%64)
	for i := 0; i+w < len(b); i++ {
		out[i] = b[i+w] >> s
		if s > 0 && i+w+1 < len(b) {
			out[i] |= b[i+w+1] << (64 - s)
		}
	}
	return out.And(playable)
}

// Dilate grows b by one cell in all eight directions.
func (b Bitboard) Dilate() Bitboard {
	out := b
	for _, axis := range Axes {
		out = out.Or(b.shiftUp(axis.Stride())).Or(b.shiftDown(axis.Stride()))
	}
	return out
}

// Erode keeps the cells whose neighbour length steps further along axis is also set.
// Eroding k-1 times by one step leaves one bit per run of at least k cells.
func (b Bitboard) Erode(axis Axis, length int) Bitboard {
	return b.And(b.shiftDown(axis.Stride() * length))
}

// LongestLine returns the length of the longest run of set bits along axis.
func (b Bitboard) LongestLine(axis Axis) int {
	size := 0
	for !b.Empty() {
		b = b.Erode(axis, 1)
		size++
	}
	return size
}

// HasLine reports whether b contains a run of at least length cells along any axis.
func (b Bitboard) HasLine(length int) bool {
	for _, axis := range Axes {
		eroded := b
		for i := 1; i < length && !eroded.Empty(); i++ {
			eroded = eroded.Erode(axis, 1)
		}
		if !eroded.Empty() {
			return true
		}
	}
	return false
}
