package model

// IsLegal reports whether moving the piece on from to to is legal for the side to move.
func IsLegal(b *Board, from, to Square) bool {
	return CheckMove(b, from, to) == nil
}

// CheckMove returns nil for a legal move, or the first rule it breaks.
// Bounds, ownership and self-capture are checked before the piece rule.
func CheckMove(b *Board, from, to Square) error {
	if !from.InBounds() || !to.InBounds() {
		return ErrOutOfBounds
	}
	piece := b.Get(from)
	if piece == nil {
		return ErrNoPiece
	}
	if piece.Color != b.Turn() {
		return ErrWrongTurn
	}
	if target := b.Get(to); target != nil && target.Color == piece.Color {
		return ErrSelfCapture
	}
	if !pieceCanMove(b, piece, from, to) {
		return ErrPieceRule
	}
	return nil
}

func pieceCanMove(b *Board, piece *Piece, from, to Square) bool {
	switch piece.Type {
	case Pawn:
		return pawnCanMove(b, piece.Color, from, to)
	case Rook:
		return rookCanMove(b, from, to)
	case Knight:
		return knightCanMove(from, to)
	case Bishop:
		return bishopCanMove(b, from, to)
	case Queen:
		return rookCanMove(b, from, to) || bishopCanMove(b, from, to)
	case King:
		return kingCanMove(from, to)
	}
	return false
}

// pawnDirection is the row delta of a forward pawn step: White moves up the
// board from row 1, Black moves down from row 6.
func pawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func pawnStartRow(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

func pawnCanMove(b *Board, color Color, from, to Square) bool {
	dir := pawnDirection(color)
	rowDiff := to.Row - from.Row
	colDiff := abs(to.Col - from.Col)

	if colDiff == 0 {
		if b.Get(to) != nil {
			return false
		}
		if rowDiff == dir {
			return true
		}
		if rowDiff == 2*dir && from.Row == pawnStartRow(color) {
			return b.Get(Sq(from.Row+dir, from.Col)) == nil
		}
		return false
	}
	if colDiff == 1 && rowDiff == dir {
		target := b.Get(to)
		return target != nil && target.Color != color
	}
	return false
}

func rookCanMove(b *Board, from, to Square) bool {
	if from.Row != to.Row && from.Col != to.Col {
		return false
	}
	return from != to && isPathClear(b, from, to)
}

func bishopCanMove(b *Board, from, to Square) bool {
	rowDiff := abs(to.Row - from.Row)
	if rowDiff == 0 || rowDiff != abs(to.Col-from.Col) {
		return false
	}
	return isPathClear(b, from, to)
}

func knightCanMove(from, to Square) bool {
	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)
	return (rowDiff == 2 && colDiff == 1) || (rowDiff == 1 && colDiff == 2)
}

func kingCanMove(from, to Square) bool {
	return max(abs(to.Row-from.Row), abs(to.Col-from.Col)) == 1
}

// isPathClear walks from the square after from up to, but not including, to.
// The caller guarantees from and to share a rank, file or diagonal.
func isPathClear(b *Board, from, to Square) bool {
	rowStep := sign(to.Row - from.Row)
	colStep := sign(to.Col - from.Col)

	cur := Sq(from.Row+rowStep, from.Col+colStep)
	for cur != to {
		if b.Get(cur) != nil {
			return false
		}
		cur = Sq(cur.Row+rowStep, cur.Col+colStep)
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
