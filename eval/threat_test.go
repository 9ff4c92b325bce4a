package eval

import (
	"testing"

	"gomoku-local/goban"
	"gomoku-local/types"
)

func board(stones map[types.Side][]types.Position) (goban.Bitboard, goban.Bitboard) {
	g := goban.New(nil)
	for side, list := range stones {
		for _, p := range list {
			g.Apply(goban.Move{Side: side, Position: p})
		}
	}
	return g.Stones(types.Black), g.Stones(types.White)
}

func row(r int, cols ...int) []types.Position {
	out := make([]types.Position, len(cols))
	for i, c := range cols {
		out[i] = types.Position{Row: r, Col: c}
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		pattern uint8
		length  int
		want    Threat
	}{
		{0b11111, 5, Five},
		{0b011110, 6, StraightFour},
		{0b11110, 5, Four},
		{0b11011, 5, Four},
		{0b10111, 5, Four},
		{0b0011100, 7, Three},
		{0b011100, 6, Three},
		{0b001110, 6, Three},
		{0b010110, 6, BrokenThree},
		{0b011010, 6, BrokenThree},
		{0b111100, 6, NoThreat},
		{0b0111000, 7, NoThreat},
		{0b11100, 5, NoThreat},
		{0b0011110, 7, NoThreat},
		{0, 7, NoThreat},
	}
	for _, tt := range tests {
		if got := classify(tt.pattern, tt.length); got != tt.want {
			t.Errorf("classify(%0*b, %d) = %v, want %v", tt.length, tt.pattern, tt.length, got, tt.want)
		}
	}
}

func TestShapeTableMatchesClassify(t *testing.T) {
	table := newShapeTable()
	for length := minWindow; length <= maxWindow; length++ {
		for p := 0; p < 1<<uint(length); p++ {
			if table.lookup(uint8(p), length) != classify(uint8(p), length) {
				t.Fatalf("table disagrees with classify for %0*b", length, p)
			}
		}
	}
}

func TestWindow(t *testing.T) {
	// cells 1..4 set: .XXXX.
	mask := uint32(0b011110)
	if got := window(mask, 0, 6); got != 0b011110 {
		t.Fatalf("window = %06b, want 011110", got)
	}
	if got := window(0b1, 0, 5); got != 0b10000 {
		t.Fatalf("first cell must be the most significant bit, got %05b", got)
	}
}

func TestEvaluateWinDetection(t *testing.T) {
	e := NewThreatEvaluator()
	lines := map[string][]types.Position{
		"row":        row(0, 0, 1, 2, 3, 4),
		"col":        {{Row: 14, Col: 18}, {Row: 15, Col: 18}, {Row: 16, Col: 18}, {Row: 17, Col: 18}, {Row: 18, Col: 18}},
		"diag right": {{Row: 3, Col: 3}, {Row: 4, Col: 4}, {Row: 5, Col: 5}, {Row: 6, Col: 6}, {Row: 7, Col: 7}},
		"diag left":  {{Row: 0, Col: 4}, {Row: 1, Col: 3}, {Row: 2, Col: 2}, {Row: 3, Col: 1}, {Row: 4, Col: 0}},
	}
	for name, stones := range lines {
		black, white := board(map[types.Side][]types.Position{types.Black: stones})
		if got := e.Evaluate(black, white); got.Outcome != Won {
			t.Errorf("%s: own five evaluated as %v, want won", name, got)
		}
		if got := e.Evaluate(white, black); got.Outcome != Lost {
			t.Errorf("%s: opponent five evaluated as %v, want lost", name, got)
		}
	}
}

func TestEvaluateBlockedFiveIsNotAWin(t *testing.T) {
	e := NewThreatEvaluator()
	black, white := board(map[types.Side][]types.Position{
		types.Black: row(9, 2, 3, 4, 5),
		types.White: row(9, 6),
	})
	if got := e.Evaluate(black, white); got.Terminal() {
		t.Fatalf("four stones evaluated as %v", got)
	}
}

func TestEvaluateThreatScores(t *testing.T) {
	e := NewThreatEvaluator()
	tests := []struct {
		name  string
		black []types.Position
		white []types.Position
		want  Threat
	}{
		{"straight four", row(9, 5, 6, 7, 8), nil, StraightFour},
		{"four at edge", row(9, 0, 1, 2, 3), nil, Four},
		{"closed four", row(9, 5, 6, 7, 8), row(9, 4), Four},
		{"split four", row(9, 5, 6, 8, 9), nil, Four},
		{"three", row(9, 5, 6, 7), nil, Three},
		{"broken three", row(9, 5, 7, 8), nil, BrokenThree},
	}
	for _, tt := range tests {
		black, white := board(map[types.Side][]types.Position{types.Black: tt.black, types.White: tt.white})
		got := e.Evaluate(black, white)
		if got.Terminal() || got.Score != int(tt.want) {
			t.Errorf("%s: %v, want score(%d)", tt.name, got, tt.want)
		}
		mirrored := e.Evaluate(white, black)
		if mirrored.Terminal() || mirrored.Score != -int(tt.want) {
			t.Errorf("%s mirrored: %v, want score(%d)", tt.name, mirrored, -tt.want)
		}
	}
}

func TestThreatOrdering(t *testing.T) {
	e := NewThreatEvaluator()
	shapes := [][]types.Position{
		row(9, 5, 6, 7, 8), // straight four
		row(9, 0, 1, 2, 3), // four
		row(9, 5, 6, 7),    // three
		row(9, 5, 7, 8),    // broken three
	}
	prev := int(Five)
	for i, stones := range shapes {
		black, white := board(map[types.Side][]types.Position{types.Black: stones})
		got := e.Evaluate(black, white).Score
		if got >= prev {
			t.Fatalf("shape %d scored %d, not below the previous %d", i, got, prev)
		}
		prev = got
	}
}

func TestEvaluateSumsAxesAndSides(t *testing.T) {
	e := NewThreatEvaluator()
	black, white := board(map[types.Side][]types.Position{
		// open three on row 3 and on column 15
		types.Black: append(row(3, 3, 4, 5), types.Position{Row: 10, Col: 15}, types.Position{Row: 11, Col: 15}, types.Position{Row: 12, Col: 15}),
		// straight four on row 15
		types.White: row(15, 7, 8, 9, 10),
	})
	got := e.Evaluate(black, white)
	want := 2*int(Three) - int(StraightFour)
	if got.Terminal() || got.Score != want {
		t.Fatalf("Evaluate = %v, want score(%d)", got, want)
	}
}

func TestEvaluateEmptyBoard(t *testing.T) {
	e := NewThreatEvaluator()
	if got := e.Evaluate(goban.Bitboard{}, goban.Bitboard{}); got != Score(0) {
		t.Fatalf("empty board = %v", got)
	}
}
