package mnk

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize  = errors.New("board dimensions and line length must be positive")
	ErrOutOfBounds  = errors.New("cell out of board bounds")
	ErrInvalidState = errors.New("invalid board state")
	ErrCellOccupied = fmt.Errorf("%w: cell is not free", ErrInvalidState)
	ErrGameEnded    = fmt.Errorf("%w: game already ended", ErrInvalidState)
	ErrNoHistory    = fmt.Errorf("%w: no move to undo", ErrInvalidState)
)
