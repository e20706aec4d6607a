package apperror

import "errors"

var (
	ErrMatchFinished   = errors.New("match is already finished")
	ErrMatchNotStarted = errors.New("match is not started")
	ErrMatchNotFound   = errors.New("match not found")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrInvalidSide     = errors.New("invalid side")
	ErrInputClosed     = errors.New("input closed")

	// ErrInvalidSearchState - search was asked to move on a board that is already decided or full.
	ErrInvalidSearchState = errors.New("invalid search state")
)
