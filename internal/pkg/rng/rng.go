// Package rng provides the seedable randomness used by the combat engine.
// Every random decision in a battle goes through a dice.Roller so a battle
// can be replayed from its seed.
package rng

//go:generate mockgen -destination=mock/mock_roller.go -package=rngmock github.com/KirkDiggler/rpg-toolkit/dice Roller

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/nyanko-battle/internal/errors"
)

// pcgStream is the fixed second PCG word; the seed alone selects the sequence
const pcgStream = 0x9e3779b97f4a7c15

// Seeded is a deterministic dice.Roller. Two Seeded rollers built from the
// same seed return the same sequence of rolls.
type Seeded struct {
	mu   sync.Mutex
	seed int64
	r    *rand.Rand
}

// NewSeeded creates a roller for the given seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		seed: seed,
		r:    rand.New(rand.NewPCG(uint64(seed), pcgStream)),
	}
}

// Seed returns the seed the roller was created with
func (s *Seeded) Seed() int64 {
	return s.seed
}

// Roll returns a value in [1, size]
func (s *Seeded) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.r.IntN(size) + 1, nil
}

// RollN returns count values in [1, size]
func (s *Seeded) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("roll count must not be negative, got %d", count)
	}
	if size <= 0 {
		return nil, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int, count)
	for i := range out {
		out[i] = s.r.IntN(size) + 1
	}
	return out, nil
}

var _ dice.Roller = (*Seeded)(nil)

// Chance resolution for probabilities in [0, 1]
const chanceScale = 10000

// Chance reports whether an event with the given probability happens.
// Certain outcomes (p <= 0, p >= 1) do not consume a roll.
func Chance(r dice.Roller, probability float64) (bool, error) {
	if probability <= 0 {
		return false, nil
	}
	if probability >= 1 {
		return true, nil
	}

	roll, err := r.Roll(chanceScale)
	if err != nil {
		return false, errors.Wrap(err, "failed to roll chance")
	}
	return roll <= int(math.Round(probability*chanceScale)), nil
}

// Percent reports whether a d100 roll lands at or under rate.
// Certain outcomes (rate <= 0, rate >= 100) do not consume a roll.
func Percent(r dice.Roller, rate int) (bool, error) {
	if rate <= 0 {
		return false, nil
	}
	if rate >= 100 {
		return true, nil
	}

	roll, err := r.Roll(100)
	if err != nil {
		return false, errors.Wrap(err, "failed to roll percentage")
	}
	return roll <= rate, nil
}

// Pick returns an index in [0, n)
func Pick(r dice.Roller, n int) (int, error) {
	if n <= 0 {
		return 0, errors.InvalidArgumentf("cannot pick from %d options", n)
	}
	if n == 1 {
		return 0, nil
	}

	roll, err := r.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to pick")
	}
	return roll - 1, nil
}
