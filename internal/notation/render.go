package notation

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/botchess-backend/internal/model"
)

var figurines = map[model.Color]map[model.PieceType]rune{
	model.White: {
		model.King: '♔', model.Queen: '♕', model.Rook: '♖',
		model.Bishop: '♗', model.Knight: '♘', model.Pawn: '♙',
	},
	model.Black: {
		model.King: '♚', model.Queen: '♛', model.Rook: '♜',
		model.Bishop: '♝', model.Knight: '♞', model.Pawn: '♟',
	},
}

// Figurine returns the Unicode chess symbol for p.
func Figurine(p model.Piece) rune {
	return figurines[p.Color][p.Type]
}

// Render draws b with rank 8 at the top and file labels above and below.
func Render(b *model.Board) string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	sb.WriteString(" +-+-+-+-+-+-+-+-+\n")
	for row := 7; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d|", row+1)
		for col := 0; col < 8; col++ {
			if p := b.Get(model.Sq(row, col)); p != nil {
				sb.WriteRune(Figurine(*p))
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteByte('|')
		}
		fmt.Fprintf(&sb, " %d\n", row+1)
		sb.WriteString(" +-+-+-+-+-+-+-+-+\n")
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// Placement is the piece placement field of a FEN string for b.
func Placement(b *model.Board) string {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.Get(model.Sq(row, col))
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteString(fenLetter(*p))
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func fenLetter(p model.Piece) string {
	l := letter(p.Type)
	if p.Type == model.Pawn {
		l = "P"
	}
	if p.Color == model.Black {
		return strings.ToLower(l)
	}
	return l
}
