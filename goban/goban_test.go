package goban

import (
	"strings"
	"testing"

	"gomoku-local/types"
)

func pos(row, col int) types.Position { return types.Position{Row: row, Col: col} }

func TestSetGet(t *testing.T) {
	g := New(nil)
	g.Set(pos(3, 4), types.Black)
	g.Set(pos(18, 18), types.White)

	tests := []struct {
		p    types.Position
		want types.Side
	}{
		{pos(3, 4), types.Black},
		{pos(18, 18), types.White},
		{pos(0, 0), types.None},
		{pos(4, 3), types.None},
	}
	for _, tt := range tests {
		if got := g.Get(tt.p); got != tt.want {
			t.Errorf("Get(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	g.Set(pos(3, 4), types.None)
	if got := g.Get(pos(3, 4)); got != types.None {
		t.Errorf("cleared cell holds %v", got)
	}
	if g.StoneCount() != 1 {
		t.Errorf("StoneCount = %d, want 1", g.StoneCount())
	}
}

func TestSetKeepsHashInSync(t *testing.T) {
	z := NewZobrist()
	a := New(z)
	a.Set(pos(5, 5), types.Black)
	a.Set(pos(5, 5), types.White)

	b := New(z)
	b.Apply(Move{Side: types.White, Position: pos(5, 5)})
	if a.Hash() != b.Hash() {
		t.Fatalf("hash after overwrite %x, want %x", a.Hash(), b.Hash())
	}

	a.Set(pos(5, 5), types.None)
	if a.Hash() != 0 {
		t.Fatalf("hash of empty board %x, want 0", a.Hash())
	}
}

func TestHashOrderIndependence(t *testing.T) {
	z := NewZobrist()
	moves := []Move{
		{types.Black, pos(5, 5)},
		{types.White, pos(5, 6)},
		{types.Black, pos(5, 7)},
		{types.White, pos(5, 8)},
		{types.Black, pos(0, 18)},
		{types.White, pos(18, 0)},
	}
	orders := [][]int{
		{0, 1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1, 0},
		{2, 1, 0, 3, 5, 4},
		{4, 0, 5, 1, 3, 2},
	}

	var want uint64
	for n, order := range orders {
		g := New(z)
		for _, i := range order {
			g.Apply(moves[i])
		}
		if n == 0 {
			want = g.Hash()
			continue
		}
		if g.Hash() != want {
			t.Errorf("order %v hash %x, want %x", order, g.Hash(), want)
		}
	}
}

func TestHashDistinguishesSides(t *testing.T) {
	z := NewZobrist()
	a, b := New(z), New(z)
	a.Apply(Move{types.Black, pos(9, 9)})
	b.Apply(Move{types.White, pos(9, 9)})
	if a.Equal(&b) {
		t.Fatal("same cell with different sides must hash differently")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New(nil)
	g.Apply(Move{types.Black, pos(1, 1)})
	clone := g
	clone.Apply(Move{types.White, pos(2, 2)})

	if g.Get(pos(2, 2)) != types.None {
		t.Fatal("mutating a copy changed the original")
	}
	if g.Equal(&clone) {
		t.Fatal("copies with different stones share a hash")
	}
}

func TestIsWonAllAxes(t *testing.T) {
	tests := []struct {
		name  string
		start types.Position
		dr    int
		dc    int
	}{
		{"row", pos(0, 0), 0, 1},
		{"row right edge", pos(7, 14), 0, 1},
		{"col", pos(14, 3), 1, 0},
		{"diag right", pos(0, 0), 1, 1},
		{"diag left", pos(0, 18), 1, -1},
		{"diag left bottom", pos(14, 4), 1, -1},
	}
	for _, tt := range tests {
		for _, side := range []types.Side{types.Black, types.White} {
			g := New(nil)
			for i := 0; i < WinLength; i++ {
				g.Apply(Move{side, pos(tt.start.Row+i*tt.dr, tt.start.Col+i*tt.dc)})
			}
			if !g.IsWon(side) {
				t.Errorf("%s: five %v stones not detected", tt.name, side)
			}
			if g.IsWon(side.Opponent()) {
				t.Errorf("%s: opponent of %v reported as winner", tt.name, side)
			}
		}
	}
}

func TestNoWinAcrossRowWrap(t *testing.T) {
	g := New(nil)
	// Three at the end of row 4 and two at the start of row 5 are contiguous in
	// index space only if the sentinel column is missing.
	for _, c := range []int{16, 17, 18} {
		g.Apply(Move{types.Black, pos(4, c)})
	}
	for _, c := range []int{0, 1} {
		g.Apply(Move{types.Black, pos(5, c)})
	}
	if g.IsWon(types.Black) {
		t.Fatal("line wrapped from one row into the next")
	}
	if got := g.LongestLine(types.Black, Row); got != 3 {
		t.Fatalf("LongestLine(row) = %d, want 3", got)
	}
}

func TestLongestLine(t *testing.T) {
	g := New(nil)
	for i := 0; i < Size; i++ {
		g.Apply(Move{types.White, pos(18, 18-i)})
	}
	g.Set(pos(18, 10), types.Black)
	if got := g.LongestLine(types.White, Row); got != 10 {
		t.Errorf("LongestLine(row) = %d, want 10", got)
	}

	g = New(nil)
	for i := 0; i < 6; i++ {
		g.Apply(Move{types.Black, pos(i, i)})
	}
	if got := g.LongestLine(types.Black, DiagRight); got != 6 {
		t.Errorf("LongestLine(diag right) = %d, want 6", got)
	}
	if got := g.LongestLine(types.Black, DiagLeft); got != 1 {
		t.Errorf("LongestLine(diag left) = %d, want 1", got)
	}
}

func TestString(t *testing.T) {
	g := New(nil)
	g.Apply(Move{types.Black, pos(0, 0)})
	g.Apply(Move{types.White, pos(0, 2)})
	lines := strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
	if len(lines) != Size {
		t.Fatalf("rendered %d rows, want %d", len(lines), Size)
	}
	if !strings.HasPrefix(lines[0], "X_O_") {
		t.Errorf("first row = %q", lines[0])
	}
	for _, line := range lines {
		if len(line) != Size {
			t.Fatalf("row %q has %d cells", line, len(line))
		}
	}
}
