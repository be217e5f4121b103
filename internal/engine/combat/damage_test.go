package combat_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/nyanko-battle/internal/engine/combat"
	"github.com/KirkDiggler/nyanko-battle/internal/entities"
)

type DamageTestSuite struct {
	suite.Suite
}

func TestDamageSuite(t *testing.T) {
	suite.Run(t, new(DamageTestSuite))
}

func stats(attack, defense, level int, element entities.Element) combat.Stats {
	return combat.Stats{
		Attack:         attack,
		Defense:        defense,
		Level:          level,
		Element:        element,
		CriticalDamage: 1.5,
	}
}

func (s *DamageTestSuite) TestDefenseReduction() {
	attacker := stats(50, 0, 1, entities.ElementNone)
	target := stats(0, 20, 1, entities.ElementNone)

	s.Assert().Equal(40, combat.ComputeDamage(attacker, target, nil, false))
}

// The reduction is rounded to float64 before it is subtracted, so these
// land just under a whole number and floor down.
func (s *DamageTestSuite) TestDefenseReductionRoundsBeforeSubtracting() {
	testCases := []struct {
		attack   int
		defense  int
		expected int
	}{
		{attack: 50, defense: 34, expected: 32},
		{attack: 100, defense: 35, expected: 64},
		{attack: 100, defense: 56, expected: 43},
	}

	for _, tc := range testCases {
		attacker := stats(tc.attack, 0, 1, entities.ElementNone)
		target := stats(0, tc.defense, 1, entities.ElementNone)
		s.Assert().Equal(tc.expected, combat.ComputeDamage(attacker, target, nil, false),
			"attack %d defense %d", tc.attack, tc.defense)
	}
}

func (s *DamageTestSuite) TestNoModifiersDealsBaseDamage() {
	for _, attack := range []int{1, 7, 50, 123, 999} {
		attacker := stats(attack, 0, 5, entities.ElementNone)
		target := stats(0, 0, 5, entities.ElementNone)
		s.Assert().Equal(attack, combat.ComputeDamage(attacker, target, nil, false))
	}

	skill := &entities.Skill{ID: "claw", Magnitude: 77}
	attacker := stats(10, 0, 1, entities.ElementFire)
	target := stats(0, 0, 1, entities.ElementLight)
	s.Assert().Equal(77, combat.ComputeDamage(attacker, target, skill, false))
}

func (s *DamageTestSuite) TestAlwaysAtLeastOne() {
	attacker := stats(50, 0, 1, entities.ElementNone)
	for _, defense := range []int{99, 100, 150, 10000} {
		target := stats(0, defense, 1, entities.ElementNone)
		s.Assert().Equal(1, combat.ComputeDamage(attacker, target, nil, false))
	}

	weak := stats(0, 0, 1, entities.ElementNone)
	s.Assert().Equal(1, combat.ComputeDamage(weak, stats(0, 0, 1, entities.ElementNone), nil, false))

	outlevelled := stats(50, 0, 1, entities.ElementNone)
	s.Assert().Equal(1, combat.ComputeDamage(outlevelled, stats(0, 0, 100, entities.ElementNone), nil, false))
}

func (s *DamageTestSuite) TestMultipliers() {
	testCases := []struct {
		name     string
		attacker combat.Stats
		target   combat.Stats
		critical bool
		expected int
	}{
		{
			name:     "critical",
			attacker: stats(50, 0, 1, entities.ElementNone),
			target:   stats(0, 0, 1, entities.ElementNone),
			critical: true,
			expected: 75,
		},
		{
			name:     "strong element",
			attacker: stats(50, 0, 1, entities.ElementFire),
			target:   stats(0, 0, 1, entities.ElementEarth),
			expected: 75,
		},
		{
			name:     "weak element",
			attacker: stats(50, 0, 1, entities.ElementFire),
			target:   stats(0, 0, 1, entities.ElementWater),
			expected: 25,
		},
		{
			name:     "attacker outlevels target",
			attacker: stats(50, 0, 6, entities.ElementNone),
			target:   stats(0, 0, 1, entities.ElementNone),
			expected: 55,
		},
		{
			name:     "target outlevels attacker",
			attacker: stats(50, 0, 1, entities.ElementNone),
			target:   stats(0, 0, 11, entities.ElementNone),
			expected: 40,
		},
		{
			name:     "everything combined",
			attacker: stats(100, 0, 1, entities.ElementLight),
			target:   stats(0, 50, 1, entities.ElementDark),
			critical: true,
			// 100 * 1.5 * 1.5 * 0.5
			expected: 112,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, combat.ComputeDamage(tc.attacker, tc.target, nil, tc.critical))
		})
	}
}
