package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate system:
// - Columns: A-S, left to right (no letter is skipped)
// - Rows: 19-1, top to bottom
// - Example: A19 is the top-left corner, S1 the bottom-right one
//
// Position system:
// - Row: 0-18 (top to bottom)
// - Col: 0-18 (left to right)
// - Example: Position{Row: 15, Col: 3} for D4

// String formats p as a coordinate such as "D4".
func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'A'+rune(p.Col), BoardSize-p.Row)
}

// ParsePosition converts a coordinate such as "a19" or "K10" into a Position.
func ParsePosition(coord string) (Position, error) {
	coord = strings.TrimSpace(strings.ToUpper(coord))

	if len(coord) < 2 {
		return Position{}, fmt.Errorf("invalid coordinate: %q", coord)
	}

	col := int(coord[0]) - 'A'
	if col < 0 || col >= BoardSize {
		return Position{}, fmt.Errorf("invalid column in coordinate: %s", coord)
	}

	row, err := strconv.Atoi(coord[1:])
	if err != nil {
		return Position{}, fmt.Errorf("invalid row in coordinate: %s", coord)
	}
	if row < 1 || row > BoardSize {
		return Position{}, fmt.Errorf("coordinate out of bounds: %s", coord)
	}

	// Rows are numbered from the bottom, positions from the top
	return Position{Row: BoardSize - row, Col: col}, nil
}

// SideFromColor converts a color name ("black", "b", "white", "w") to a Side.
func SideFromColor(color string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(color)) {
	case "black", "b", "1":
		return Black, nil
	case "white", "w", "2":
		return White, nil
	}
	return None, fmt.Errorf("unknown color: %q", color)
}
