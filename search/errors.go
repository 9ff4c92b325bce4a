package search

import "github.com/pkg/errors"

var (
	// ErrInvalidDepth is returned for a search depth that is odd or below 2.
	ErrInvalidDepth = errors.New("search depth must be an even number of at least 2")
	// ErrNoMoveAvailable is returned when the board has no empty cell.
	ErrNoMoveAvailable = errors.New("no move available")
)

// ValidateDepth checks the depth contract of ChooseMove.
func ValidateDepth(depth int) error {
	if depth < 2 || depth%2 != 0 {
		return errors.Wrapf(ErrInvalidDepth, "got %d", depth)
	}
	return nil
}
