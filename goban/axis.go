package goban

// Axis is one of the four line directions of the board.
type Axis int

const (
	Row       Axis = iota // east
	Col                   // south
	DiagLeft              // south-west
	DiagRight             // south-east
)

// Axes lists every line direction.
var Axes = [4]Axis{Row, Col, DiagLeft, DiagRight}

// Stride is the bit distance between two consecutive cells along the axis.
func (a Axis) Stride() int {
	switch a {
	case Row:
		return 1
	case Col:
		return RowStride
	case DiagLeft:
		return RowStride - 1
	default:
		return RowStride + 1
	}
}

// Step is the (row, col) increment between two consecutive cells along the axis.
func (a Axis) Step() (int, int) {
	switch a {
	case Row:
		return 0, 1
	case Col:
		return 1, 0
	case DiagLeft:
		return 1, -1
	default:
		return 1, 1
	}
}

func (a Axis) String() string {
	switch a {
	case Row:
		return "row"
	case Col:
		return "col"
	case DiagLeft:
		return "diag-left"
	default:
		return "diag-right"
	}
}

// Line is a maximal run of on-board cells along an axis.
type Line struct {
	Axis   Axis
	Start  int // bit index of the first cell
	Length int
}

// Lines returns every line along axis that is at least minLength cells long.
func Lines(axis Axis, minLength int) []Line {
	dr, dc := axis.Step()
	var out []Line
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			// A line starts where the previous cell would be off the board.
			pr, pc := row-dr, col-dc
			if pr >= 0 && pr < Size && pc >= 0 && pc < Size {
				continue
			}
			length := 0
			for r, c := row, col; r >= 0 && r < Size && c >= 0 && c < Size; r, c = r+dr, c+dc {
				length++
			}
			if length >= minLength {
				out = append(out, Line{Axis: axis, Start: Index(row, col), Length: length})
			}
		}
	}
	return out
}

// Mask packs the cells of line that are set in b into the low bits of an
// integer, first cell in bit 0.
func (l Line) Mask(b Bitboard) uint32 {
	var m uint32
	stride := l.Axis.Stride()
	for k, i := 0, l.Start; k < l.Length; k, i = k+1, i+stride {
		if b.Has(i) {
			m |= 1 << uint(k)
		}
	}
	return m
}
