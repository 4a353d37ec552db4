package bot

import "github.com/benbeisheim/botchess-backend/internal/model"

// Odds holds the probability of each step of the weighted policy.
type Odds struct {
	Random     float64 `json:"random"`
	Capture    float64 `json:"capture"`
	Positional float64 `json:"positional"`
	AvoidEdge  float64 `json:"avoidEdge"`
}

var (
	// WeakOdds apply at MinStrength.
	WeakOdds = Odds{Random: 0.80, Capture: 0.30, Positional: 0.20, AvoidEdge: 0.20}
	// StrongOdds apply at MaxStrength.
	StrongOdds = Odds{Random: 0.05, Capture: 0.90, Positional: 0.70, AvoidEdge: 0.80}
)

// WeightedSelector plays a random move with a probability that falls as
// strength rises, and otherwise prefers captures, then developing or central
// moves, then moves off the edge, each behind its own random draw.
type WeightedSelector struct {
	strength int
	odds     Odds
	rng      Rand
}

func NewWeighted(strength int, rng Rand) *WeightedSelector {
	s := clamp(strength, MinStrength, MaxStrength)
	return &WeightedSelector{
		strength: s,
		odds:     interpolate(WeakOdds, StrongOdds, s),
		rng:      rng,
	}
}

// Strength is the clamped strength in use.
func (s *WeightedSelector) Strength() int {
	return s.strength
}

func (s *WeightedSelector) Odds() Odds {
	return s.odds
}

func (s *WeightedSelector) ChooseMove(b *model.Board) (model.Move, bool) {
	moves := model.LegalMoves(b)
	if len(moves) == 0 {
		return model.Move{}, false
	}
	if s.rng.Float64() < s.odds.Random {
		return pick(s.rng, moves), true
	}

	classes := Classify(b, moves)
	if len(classes.Captures) > 0 && s.rng.Float64() < s.odds.Capture {
		return pick(s.rng, classes.Captures), true
	}
	positional := classes.Developing
	if len(positional) == 0 {
		positional = classes.Central
	}
	if len(positional) > 0 && s.rng.Float64() < s.odds.Positional {
		return pick(s.rng, positional), true
	}
	if len(classes.NonEdge) > 0 && s.rng.Float64() < s.odds.AvoidEdge {
		return pick(s.rng, classes.NonEdge), true
	}
	return pick(s.rng, moves), true
}

func interpolate(weak, strong Odds, strength int) Odds {
	t := float64(strength-MinStrength) / float64(MaxStrength-MinStrength)
	t = clamp(t, 0, 1)
	return Odds{
		Random:     lerp(weak.Random, strong.Random, t),
		Capture:    lerp(weak.Capture, strong.Capture, t),
		Positional: lerp(weak.Positional, strong.Positional, t),
		AvoidEdge:  lerp(weak.AvoidEdge, strong.AvoidEdge, t),
	}
}
