package model

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrOutOfBounds = errors.New("square out of bounds")
	ErrNoPiece     = errors.New("no piece at from square")
	ErrWrongTurn   = errors.New("not your turn")
	ErrSelfCapture = errors.New("destination holds own piece")
	ErrPieceRule   = errors.New("piece cannot move that way")
)

// IllegalMoveError is returned by Apply. It matches ErrIllegalMove and the
// specific Reason with errors.Is.
type IllegalMoveError struct {
	From   Square
	To     Square
	Reason error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move (%d,%d)->(%d,%d): %v", e.From.Row, e.From.Col, e.To.Row, e.To.Col, e.Reason)
}

func (e *IllegalMoveError) Unwrap() []error {
	return []error{ErrIllegalMove, e.Reason}
}
