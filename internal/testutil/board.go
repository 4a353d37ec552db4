package testutil

import (
	"math/rand"
	"testing"

	"github.com/benbeisheim/botchess-backend/internal/model"
	"github.com/benbeisheim/botchess-backend/internal/notation"
)

var pieceCodes = map[byte]model.PieceType{
	'K': model.King,
	'Q': model.Queen,
	'R': model.Rook,
	'B': model.Bishop,
	'N': model.Knight,
	'P': model.Pawn,
}

// Board builds a board from square -> piece codes such as {"e1": "wK", "e8": "bK"}.
func Board(t testing.TB, turn model.Color, pieces map[string]string) *model.Board {
	t.Helper()
	b := model.NewEmptyBoard(turn)
	for sq, code := range pieces {
		b.Set(Square(t, sq), Piece(t, code))
	}
	return b
}

// Piece parses a two letter code: colour (w/b) then piece letter.
func Piece(t testing.TB, code string) *model.Piece {
	t.Helper()
	if len(code) != 2 {
		t.Fatalf("bad piece code %q", code)
	}
	color := model.White
	switch code[0] {
	case 'w':
	case 'b':
		color = model.Black
	default:
		t.Fatalf("bad piece colour in %q", code)
	}
	kind, ok := pieceCodes[code[1]]
	if !ok {
		t.Fatalf("bad piece type in %q", code)
	}
	return model.NewPiece(kind, color)
}

func Square(t testing.TB, s string) model.Square {
	t.Helper()
	sq, err := notation.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return sq
}

func Move(t testing.TB, s string) model.Move {
	t.Helper()
	m, err := notation.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", s, err)
	}
	return m
}

// Play applies each move in turn and fails the test on the first illegal one.
func Play(t testing.TB, b *model.Board, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m := Move(t, s)
		if _, err := model.Apply(b, m.From, m.To); err != nil {
			t.Fatalf("Apply(%s): %v", s, err)
		}
	}
}

// RandomWalk plays up to plies random legal moves from b, calling visit on
// every position reached, the starting one included. It stops early at a
// terminal position.
func RandomWalk(b *model.Board, plies int, rng *rand.Rand, visit func(*model.Board)) {
	visit(b)
	for i := 0; i < plies; i++ {
		moves := model.LegalMoves(b)
		if len(moves) == 0 {
			return
		}
		m := moves[rng.Intn(len(moves))]
		if _, err := model.Apply(b, m.From, m.To); err != nil {
			panic(err)
		}
		visit(b)
	}
}
