package eval

import "gomoku-local/goban"

// Threat is a line shape with its point value. Five is terminal and never scored.
type Threat int

const (
	NoThreat     Threat = 0
	BrokenThree  Threat = 10000
	Three        Threat = 20000
	Four         Threat = 50000
	StraightFour Threat = 500000
	Five         Threat = 1 << 30
)

func (t Threat) String() string {
	switch t {
	case BrokenThree:
		return "broken-three"
	case Three:
		return "three"
	case Four:
		return "four"
	case StraightFour:
		return "straight-four"
	case Five:
		return "five"
	default:
		return "none"
	}
}

const (
	minWindow = 5
	maxWindow = 7
)

// shapeTable memoizes the classification of a window, indexed by
// [length-minWindow][pattern]. The pattern holds the first cell of the window in
// its most significant bit, so 0b011110 reads as the shape it encodes.
type shapeTable [maxWindow - minWindow + 1][1 << maxWindow]Threat

func newShapeTable() *shapeTable {
	var t shapeTable
	for length := minWindow; length <= maxWindow; length++ {
		for pattern := 0; pattern < 1<<uint(length); pattern++ {
			t[length-minWindow][pattern] = classify(uint8(pattern), length)
		}
	}
	return &t
}

func (t *shapeTable) lookup(pattern uint8, length int) Threat {
	return t[length-minWindow][pattern]
}

// classify matches one window of a single side's stones against the threat shapes.
// The caller has already checked that the opponent has no stone in the window.
func classify(pattern uint8, length int) Threat {
	ones := 0
	for p := pattern; p != 0; p &= p - 1 {
		ones++
	}

	switch {
	case length == 5 && pattern == 0b11111:
		return Five
	case ones == 4 && length == 6 && pattern == 0b011110:
		return StraightFour
	case ones == 4 && length == 5:
		return Four
	case ones == 3 && length == 7 && pattern == 0b0011100:
		return Three
	case ones == 3 && length == 6 && (pattern == 0b011100 || pattern == 0b001110):
		return Three
	case ones == 3 && length == 6 && (pattern == 0b010110 || pattern == 0b011010):
		return BrokenThree
	}
	return NoThreat
}

// ThreatEvaluator scores a position by the line threats each side holds.
type ThreatEvaluator struct {
	shapes *shapeTable
	lines  []goban.Line
}

var _ Evaluator = (*ThreatEvaluator)(nil)

// NewThreatEvaluator builds the evaluator and its shape table.
func NewThreatEvaluator() *ThreatEvaluator {
	e := &ThreatEvaluator{shapes: newShapeTable()}
	for _, axis := range goban.Axes {
		e.lines = append(e.lines, goban.Lines(axis, minWindow)...)
	}
	return e
}

// Evaluate scans every line along the four axes. A five for either side ends the
// scan with Won or Lost; otherwise own threats add and opponent threats subtract.
func (e *ThreatEvaluator) Evaluate(own, opp goban.Bitboard) Eval {
	score := 0
	for _, line := range e.lines {
		ownMask, oppMask := line.Mask(own), line.Mask(opp)
		if ownMask == 0 && oppMask == 0 {
			continue
		}
		ownScore, oppScore, outcome := e.scanLine(ownMask, oppMask, line.Length)
		if outcome != Undecided {
			return Eval{Outcome: outcome}
		}
		score += ownScore - oppScore
	}
	return Score(score)
}

// scanLine slides a window along one line. Within a run of consecutive window
// starts that match a threat for a side only the strongest one counts.
func (e *ThreatEvaluator) scanLine(own, opp uint32, length int) (int, int, Outcome) {
	var ownScore, oppScore int
	var ownBest, oppBest Threat

	for start := 0; start+minWindow <= length; start++ {
		ownThreat := e.match(own, opp, start, length)
		if ownThreat == Five {
			return 0, 0, Won
		}
		oppThreat := e.match(opp, own, start, length)
		if oppThreat == Five {
			return 0, 0, Lost
		}

		if ownThreat != NoThreat {
			ownBest = max(ownBest, ownThreat)
		} else {
			ownScore += int(ownBest)
			ownBest = NoThreat
		}
		if oppThreat != NoThreat {
			oppBest = max(oppBest, oppThreat)
		} else {
			oppScore += int(oppBest)
			oppBest = NoThreat
		}
	}
	return ownScore + int(ownBest), oppScore + int(oppBest), Undecided
}

// match tries the windows starting at start, longest first, and returns the first
// threat found for the side owning stones. Windows containing an opposing stone
// never match.
func (e *ThreatEvaluator) match(stones, blockers uint32, start, length int) Threat {
	for size := maxWindow; size >= minWindow; size-- {
		if start+size > length {
			continue
		}
		if window(blockers, start, size) != 0 {
			continue
		}
		if t := e.shapes.lookup(window(stones, start, size), size); t != NoThreat {
			return t
		}
	}
	return NoThreat
}

// window extracts size cells from a line mask, first cell in the most significant bit.
func window(mask uint32, start, size int) uint8 {
	var w uint8
	for k := 0; k < size; k++ {
		w <<= 1
		if mask&(1<<uint(start+k)) != 0 {
			w |= 1
		}
	}
	return w
}
