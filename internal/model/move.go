package model

import "fmt"

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)->(%d,%d)", m.From.Row, m.From.Col, m.To.Row, m.To.Col)
}

// MoveRecord holds what is needed to reverse one applied move.
type MoveRecord struct {
	From          Square `json:"from"`
	To            Square `json:"to"`
	Piece         Piece  `json:"piece"`
	CapturedPiece *Piece `json:"capturedPiece"`
}

func (r MoveRecord) Move() Move {
	return Move{From: r.From, To: r.To}
}

func (r MoveRecord) IsCapture() bool {
	return r.CapturedPiece != nil
}
