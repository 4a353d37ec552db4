package model_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/benbeisheim/botchess-backend/internal/model"
	"github.com/benbeisheim/botchess-backend/internal/testutil"
)

func TestApply_MovesPieceAndFlipsTurn(t *testing.T) {
	b := model.NewBoard()
	e2, e4 := testutil.Square(t, "e2"), testutil.Square(t, "e4")

	record, err := model.Apply(b, e2, e4)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, record, model.MoveRecord{
		From:  e2,
		To:    e4,
		Piece: model.Piece{Type: model.Pawn, Color: model.White},
	})
	if b.Get(e2) != nil {
		t.Error("source square still occupied")
	}
	testutil.AssertEqual(t, b.Get(e4), model.NewPiece(model.Pawn, model.White))
	if b.Turn() != model.Black {
		t.Errorf("Turn() = %v, want black", b.Turn())
	}
	testutil.AssertEqual(t, b.History(), []model.MoveRecord{record})
}

func TestApply_RecordsCapture(t *testing.T) {
	b := model.NewBoard()
	testutil.Play(t, b, "e2e4", "d7d5")

	record, err := model.Apply(b, testutil.Square(t, "e4"), testutil.Square(t, "d5"))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, record.CapturedPiece, model.NewPiece(model.Pawn, model.Black))
	if !record.IsCapture() {
		t.Error("IsCapture() = false")
	}
	if got := len(b.Pieces()); got != 31 {
		t.Errorf("pieces on board = %d, want 31", got)
	}
}

func TestApply_IllegalLeavesBoardUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		move   model.Move
		reason error
	}{
		{"off board", model.Move{From: model.Sq(1, 0), To: model.Sq(-1, 0)}, model.ErrOutOfBounds},
		{"empty square", model.Move{From: model.Sq(4, 4), To: model.Sq(5, 4)}, model.ErrNoPiece},
		{"opponent piece", model.Move{From: model.Sq(6, 4), To: model.Sq(4, 4)}, model.ErrWrongTurn},
		{"self capture", model.Move{From: model.Sq(0, 3), To: model.Sq(1, 3)}, model.ErrSelfCapture},
		{"blocked rook", model.Move{From: model.Sq(0, 0), To: model.Sq(3, 0)}, model.ErrPieceRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := model.NewBoard()
			before := b.State()

			_, err := model.Apply(b, tt.move.From, tt.move.To)
			testutil.AssertErrorIs(t, err, model.ErrIllegalMove)
			testutil.AssertErrorIs(t, err, tt.reason)

			var illegal *model.IllegalMoveError
			if !errors.As(err, &illegal) {
				t.Fatalf("error %T is not *IllegalMoveError", err)
			}
			testutil.AssertEqual(t, illegal.From, tt.move.From)
			testutil.AssertEqual(t, illegal.To, tt.move.To)

			testutil.AssertEqual(t, b.State(), before)
			if b.MoveCount() != 0 {
				t.Errorf("MoveCount() = %d after illegal move", b.MoveCount())
			}
		})
	}
}

func TestUndo_EmptyHistory(t *testing.T) {
	b := model.NewBoard()
	before := b.State()
	if model.Undo(b) {
		t.Error("Undo() on fresh board = true, want false")
	}
	testutil.AssertEqual(t, b.State(), before)
}

func TestUndo_RestoresCapturedPiece(t *testing.T) {
	b := model.NewBoard()
	testutil.Play(t, b, "e2e4", "d7d5")
	before := b.State()

	testutil.Play(t, b, "e4d5")
	if !model.Undo(b) {
		t.Fatal("Undo() = false")
	}
	testutil.AssertEqual(t, b.State(), before)
	testutil.AssertEqual(t, b.Get(testutil.Square(t, "d5")), model.NewPiece(model.Pawn, model.Black))
}

// Every move of several random games is applied and immediately undone; the
// board must come back piece for piece with the same side to move.
func TestApplyUndo_IsInverse(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		rng := rand.New(rand.NewSource(seed))
		testutil.RandomWalk(model.NewBoard(), 100, rng, func(b *model.Board) {
			before := b.State()
			history := b.History()
			for _, m := range model.LegalMoves(b) {
				if _, err := model.Apply(b, m.From, m.To); err != nil {
					t.Fatalf("Apply(%v): %v", m, err)
				}
				if !model.Undo(b) {
					t.Fatalf("Undo after %v = false", m)
				}
				if b.Turn() != before.ToMove {
					t.Fatalf("turn after undo of %v = %v, want %v", m, b.Turn(), before.ToMove)
				}
			}
			testutil.AssertEqual(t, b.State(), before, "seed %d ply %d", seed, before.MoveCount)
			testutil.AssertEqual(t, b.History(), history)
		})
	}
}

func TestUndo_WalksBackToStart(t *testing.T) {
	b := model.NewBoard()
	rng := rand.New(rand.NewSource(3))
	testutil.RandomWalk(b, 50, rng, func(*model.Board) {})

	for b.MoveCount() > 0 {
		if !model.Undo(b) {
			t.Fatal("Undo() = false with history left")
		}
	}
	testutil.AssertEqual(t, b.State(), model.NewBoard().State())
	if model.Undo(b) {
		t.Error("Undo() past the start = true")
	}
}
