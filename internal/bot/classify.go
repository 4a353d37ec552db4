package bot

import "github.com/benbeisheim/botchess-backend/internal/model"

// OpeningPlies is how many half-moves count as the opening for development.
const OpeningPlies = 10

// Classes groups legal moves by the features the selectors care about. A move
// may appear in several classes.
type Classes struct {
	Captures   []model.Move
	Central    []model.Move
	Developing []model.Move
	Edge       []model.Move
	NonEdge    []model.Move
}

func Classify(b *model.Board, moves []model.Move) Classes {
	var c Classes
	for _, m := range moves {
		if isCapture(b, m) {
			c.Captures = append(c.Captures, m)
		}
		if isCentral(m.To) {
			c.Central = append(c.Central, m)
		}
		if isDeveloping(b, m) {
			c.Developing = append(c.Developing, m)
		}
		if isEdge(m.To) {
			c.Edge = append(c.Edge, m)
		} else {
			c.NonEdge = append(c.NonEdge, m)
		}
	}
	return c
}

func isCapture(b *model.Board, m model.Move) bool {
	target := b.Get(m.To)
	return target != nil && target.Color != b.Turn()
}

// isCentral covers the 4x4 block c3-f6.
func isCentral(s model.Square) bool {
	return s.Row >= 2 && s.Row <= 5 && s.Col >= 2 && s.Col <= 5
}

func isEdge(s model.Square) bool {
	return s.Row == 0 || s.Row == 7 || s.Col == 0 || s.Col == 7
}

// isDeveloping is true for a knight or bishop leaving its own back rank in the
// opening, and for any non-king move that ends closer to the centre.
func isDeveloping(b *model.Board, m model.Move) bool {
	piece := b.Get(m.From)
	if piece == nil || piece.Type == model.King {
		return false
	}
	if isMinorDevelopment(b, piece, m.From) {
		return true
	}
	return centreDistance(m.To) < centreDistance(m.From)
}

func isMinorDevelopment(b *model.Board, piece *model.Piece, from model.Square) bool {
	if b.MoveCount() >= OpeningPlies {
		return false
	}
	if piece.Type != model.Knight && piece.Type != model.Bishop {
		return false
	}
	return from.Row == homeRow(piece.Color)
}

func homeRow(c model.Color) int {
	if c == model.White {
		return 0
	}
	return 7
}

// centreDistance is twice the Chebyshev distance from the centre point of the board.
func centreDistance(s model.Square) int {
	return max(absInt(2*s.Row-7), absInt(2*s.Col-7))
}
