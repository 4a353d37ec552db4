package bot

import "github.com/benbeisheim/botchess-backend/internal/model"

// Weights configure the scoring policy.
type Weights struct {
	Capture     int `json:"capture"`     // flat bonus for any capture
	Material    int `json:"material"`    // multiplied by the captured piece's value
	PawnAdvance int `json:"pawnAdvance"` // multiplied by ranks from the pawn's own back rank
	Centre      int `json:"centre"`
	Development int `json:"development"` // minor piece leaving its back rank in the opening
}

var DefaultWeights = Weights{
	Capture:     10,
	Material:    1,
	PawnAdvance: 1,
	Centre:      2,
	Development: 3,
}

// ScoringSelector is deterministic: it plays the highest scoring legal move,
// breaking ties in favour of the move generated first.
type ScoringSelector struct {
	weights Weights
}

func NewScoring(w Weights) *ScoringSelector {
	return &ScoringSelector{weights: w}
}

func (s *ScoringSelector) ChooseMove(b *model.Board) (model.Move, bool) {
	moves := model.LegalMoves(b)
	if len(moves) == 0 {
		return model.Move{}, false
	}
	best, bestScore := moves[0], s.Score(b, moves[0])
	for _, m := range moves[1:] {
		if score := s.Score(b, m); score > bestScore {
			best, bestScore = m, score
		}
	}
	return best, true
}

// Score rates m for the side to move. m is assumed legal.
func (s *ScoringSelector) Score(b *model.Board, m model.Move) int {
	piece := b.Get(m.From)
	if piece == nil {
		return 0
	}

	score := 0
	if target := b.Get(m.To); target != nil && target.Color != piece.Color {
		score += s.weights.Capture + s.weights.Material*target.Type.Value()
	}
	if piece.Type == model.Pawn {
		score += s.weights.PawnAdvance * absInt(m.To.Row-homeRow(piece.Color))
	}
	if isCentral(m.To) {
		score += s.weights.Centre
	}
	if isMinorDevelopment(b, piece, m.From) {
		score += s.weights.Development
	}
	return score
}
