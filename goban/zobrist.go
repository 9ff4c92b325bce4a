package goban

import (
	"math"
	"sync"

	"lukechampine.com/frand"

	"gomoku-local/types"
)

// Zobrist is the (cell, side) -> random key table used for position hashing.
// It is never mutated after construction and is safe to share between goroutines.
type Zobrist struct {
	keys [BitSize][2]uint64
}

var (
	defaultZobrist     *Zobrist
	defaultZobristOnce sync.Once
)

// DefaultZobrist returns the process-wide table, generating it on first use.
func DefaultZobrist() *Zobrist {
	defaultZobristOnce.Do(func() {
		defaultZobrist = NewZobrist()
	})
	return defaultZobrist
}

// NewZobrist generates a fresh table. Keys are never zero, since XOR with zero
// would leave a stone invisible to the hash.
func NewZobrist() *Zobrist {
	z := &Zobrist{}
	for i := range z.keys {
		for s := range z.keys[i] {
			z.keys[i][s] = frand.Uint64n(math.MaxUint64) + 1
		}
	}
	return z
}

// Key returns the random value of a stone of side at bit index i.
func (z *Zobrist) Key(i int, side types.Side) uint64 {
	return z.keys[i][sideIndex(side)]
}

// Update folds m into hash. Applying the same move twice restores the original hash.
func (z *Zobrist) Update(hash uint64, m Move) uint64 {
	return hash ^ z.Key(IndexOf(m.Position), m.Side)
}

func sideIndex(side types.Side) int {
	if side == types.White {
		return 1
	}
	return 0
}
