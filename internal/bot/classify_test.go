package bot

import (
	"testing"

	"github.com/benbeisheim/botchess-backend/internal/model"
	"github.com/benbeisheim/botchess-backend/internal/testutil"
)

func TestClassify_InitialPosition(t *testing.T) {
	b := model.NewBoard()
	moves := model.LegalMoves(b)
	c := Classify(b, moves)

	got := map[string]int{
		"captures":   len(c.Captures),
		"central":    len(c.Central),
		"developing": len(c.Developing),
		"edge":       len(c.Edge),
		"nonEdge":    len(c.NonEdge),
	}
	testutil.AssertEqual(t, got, map[string]int{
		"captures":   0,
		"central":    10,
		"developing": 12,
		"edge":       6,
		"nonEdge":    14,
	})
	if len(c.Edge)+len(c.NonEdge) != len(moves) {
		t.Error("edge and non-edge do not partition the moves")
	}
}

func TestClassify_Captures(t *testing.T) {
	b := model.NewBoard()
	testutil.Play(t, b, "e2e4", "d7d5")
	c := Classify(b, model.LegalMoves(b))
	testutil.AssertEqual(t, c.Captures, []model.Move{testutil.Move(t, "e4d5")})
}

func TestIsDeveloping(t *testing.T) {
	b := model.NewBoard()
	tests := []struct {
		move string
		want bool
	}{
		{"b1a3", true}, // minor piece off the back rank
		{"g1f3", true},
		{"a2a3", false},
		{"d2d4", true}, // closer to the centre
		{"h2h4", false},
	}
	for _, tt := range tests {
		if got := isDeveloping(b, testutil.Move(t, tt.move)); got != tt.want {
			t.Errorf("isDeveloping(%s) = %v, want %v", tt.move, got, tt.want)
		}
	}

	late := testutil.Board(t, model.White, map[string]string{"b1": "wN", "e1": "wK"})
	for i := 0; i < OpeningPlies; i++ {
		testutil.Play(t, late, []string{"e1e2", "e2e1"}[i%2])
		late.SwitchTurn()
	}
	if isDeveloping(late, testutil.Move(t, "b1a3")) {
		t.Error("b1a3 counted as development after the opening")
	}
	if !isDeveloping(late, testutil.Move(t, "b1c3")) {
		t.Error("b1c3 moves towards the centre")
	}
	if isDeveloping(late, testutil.Move(t, "e1d2")) {
		t.Error("king moves never count as development")
	}
}

func TestCentreDistance(t *testing.T) {
	tests := []struct {
		sq   model.Square
		want int
	}{
		{model.Sq(0, 0), 7},
		{model.Sq(3, 3), 1},
		{model.Sq(4, 4), 1},
		{model.Sq(2, 5), 3},
		{model.Sq(7, 1), 7},
	}
	for _, tt := range tests {
		if got := centreDistance(tt.sq); got != tt.want {
			t.Errorf("centreDistance(%v) = %d, want %d", tt.sq, got, tt.want)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if got := clamp(5, 1, 3); got != 3 {
		t.Errorf("clamp(5,1,3) = %d", got)
	}
	if got := clamp(-2.5, 0, 1); got != 0 {
		t.Errorf("clamp(-2.5,0,1) = %v", got)
	}
	if got := lerp(0.0, 10.0, 0.25); got != 2.5 {
		t.Errorf("lerp(0,10,.25) = %v", got)
	}
	if got := absInt(int64(-4)); got != 4 {
		t.Errorf("absInt(-4) = %d", got)
	}
}
