package ui

import "github.com/gdamore/tcell/v2"

// starPoints are the marked intersections of a 19x19 board, as (x, y).
var starPoints = [][2]int{
	{3, 3}, {15, 3},
	{9, 9},
	{3, 15}, {15, 15},
}

func isStarPoint(x, y int) bool {
	for _, p := range starPoints {
		if x == p[0] && y == p[1] {
			return true
		}
	}
	return false
}

// gridRune returns the box-drawing character for an empty intersection.
func gridRune(x, y, width, height int, star bool) rune {
	if star {
		return '◦'
	}

	isTop := y == 0
	isBottom := y == height-1
	isLeft := x == 0
	isRight := x == width-1

	switch {
	case isTop && isLeft:
		return '┌'
	case isTop && isRight:
		return '┐'
	case isBottom && isLeft:
		return '└'
	case isBottom && isRight:
		return '┘'
	case isTop:
		return '┬'
	case isBottom:
		return '┴'
	case isLeft:
		return '├'
	case isRight:
		return '┤'
	default:
		return '┼'
	}
}

// drawStoneCell draws a 2-character cell holding a stone.
func drawStoneCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, ' ', nil, c)
}

// drawGridCell draws an empty intersection and its connector to the right.
func drawGridCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t, boardWidth int, stoneRight bool) {
	s.SetContent(l+x*2, t+y, r, nil, c)

	conn := '─'
	if x == boardWidth-1 || stoneRight {
		conn = ' '
	}
	s.SetContent(l+x*2+1, t+y, conn, nil, c)
}
