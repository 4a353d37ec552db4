// Package bot picks moves for the computer player. Both policies look one
// ply ahead only: they classify or score the legal moves of the current
// position and never consider the opponent's reply.
package bot

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/benbeisheim/botchess-backend/internal/model"
)

type Policy string

const (
	// PolicyWeighted samples from move classes with strength-dependent odds.
	PolicyWeighted Policy = "weighted"
	// PolicyScoring plays the highest scoring move under a fixed rubric.
	PolicyScoring Policy = "scoring"
)

// Strength range accepted by the weighted policy. Values outside it are clamped.
const (
	MinStrength     = 100
	MaxStrength     = 2000
	DefaultStrength = 1200
)

var ErrUnknownPolicy = errors.New("unknown bot policy")

// Selector chooses a move for the side to move. It returns false only when
// the side to move has no legal move. Implementations do not modify the board.
type Selector interface {
	ChooseMove(b *model.Board) (model.Move, bool)
}

// Rand is the source of randomness a selector draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// ParsePolicy maps a configuration string to a Policy. The empty string
// selects PolicyWeighted.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyWeighted:
		return PolicyWeighted, nil
	case PolicyScoring:
		return PolicyScoring, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// New builds the selector for policy. strength only affects PolicyWeighted.
func New(policy Policy, strength int, rng Rand) (Selector, error) {
	switch policy {
	case PolicyWeighted:
		return NewWeighted(strength, rng), nil
	case PolicyScoring:
		return NewScoring(DefaultWeights), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
}

// NewRand returns a seeded random source for selectors.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func pick(rng Rand, moves []model.Move) model.Move {
	return moves[rng.Intn(len(moves))]
}
