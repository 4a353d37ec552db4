package model

// Apply validates and plays from->to on b, records it in the history and
// passes the turn. On error b is unchanged.
func Apply(b *Board, from, to Square) (MoveRecord, error) {
	if err := CheckMove(b, from, to); err != nil {
		return MoveRecord{}, &IllegalMoveError{From: from, To: to, Reason: err}
	}

	piece := b.Get(from)
	record := MoveRecord{
		From:          from,
		To:            to,
		Piece:         *piece,
		CapturedPiece: b.Get(to),
	}

	b.Set(to, piece)
	b.Set(from, nil)
	b.history = append(b.history, record)
	b.SwitchTurn()

	return record, nil
}

// Undo reverses the most recent move. It returns false when there is nothing to undo.
func Undo(b *Board) bool {
	record, ok := b.LastMove()
	if !ok {
		return false
	}
	b.history = b.history[:len(b.history)-1]

	moved := record.Piece
	b.Set(record.From, &moved)
	b.Set(record.To, record.CapturedPiece)
	b.SwitchTurn()
	return true
}
