package model

// LegalMoves returns every legal move for the side to move. It checks every
// (from, to) pair against CheckMove, so it can never disagree with IsLegal.
// Moves are ordered row-major by source, then row-major by destination.
func LegalMoves(b *Board) []Move {
	moves := []Move{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			moves = append(moves, LegalMovesFrom(b, Sq(row, col))...)
		}
	}
	return moves
}

// LegalMovesFrom returns the legal moves of the piece on from, in row-major
// destination order. It is empty for empty squares and for the opponent's pieces.
func LegalMovesFrom(b *Board, from Square) []Move {
	moves := []Move{}
	if !from.InBounds() {
		return moves
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			to := Sq(row, col)
			if IsLegal(b, from, to) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

// IsTerminal reports whether the side to move has no legal move. Checkmate
// and stalemate are not told apart since there is no check detection.
func IsTerminal(b *Board) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if len(LegalMovesFrom(b, Sq(row, col))) > 0 {
				return false
			}
		}
	}
	return true
}
