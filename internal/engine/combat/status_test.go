package combat

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
	"github.com/KirkDiggler/nyanko-battle/internal/testutils/builders"
)

type StatusTestSuite struct {
	suite.Suite
	target *Combatant
}

func TestStatusSuite(t *testing.T) {
	suite.Run(t, new(StatusTestSuite))
}

func (s *StatusTestSuite) SetupTest() {
	def := builders.NewCombatantBuilder("tama").
		WithAttack(100).
		WithDefense(20).
		WithSpeed(2).
		WithHealth(50).
		Build()
	s.target = newCombatant(def, SidePlayer, 0)
}

func (s *StatusTestSuite) TestRefreshOnReapply() {
	p := NewStatusProcessor(0)

	p.Apply(s.target, StatusEffect{Kind: entities.StatusDOT, Remaining: 3, Magnitude: 5, SourceID: "a"})
	p.Apply(s.target, StatusEffect{Kind: entities.StatusDOT, Remaining: 2, Magnitude: 7, SourceID: "b"})

	effects := s.target.Effects()
	s.Require().Len(effects, 1)
	s.Assert().Equal(3, effects[0].Remaining)
	s.Assert().Equal(7, effects[0].Magnitude)
	s.Assert().Equal(1, effects[0].Stacks)
	s.Assert().Equal("b", effects[0].SourceID)
}

func (s *StatusTestSuite) TestStacksUpToCap() {
	p := NewStatusProcessor(3)

	for i := 0; i < 5; i++ {
		p.Apply(s.target, StatusEffect{Kind: entities.StatusDOT, Remaining: 2, Magnitude: 4})
	}

	effects := s.target.Effects()
	s.Require().Len(effects, 1)
	s.Assert().Equal(3, effects[0].Stacks)

	tick := p.Tick(s.target)
	s.Require().Len(tick.Damage, 1)
	s.Assert().Equal(12, tick.Damage[0].Amount)
	s.Assert().Equal(38, s.target.Health())
}

func (s *StatusTestSuite) TestTickCountsDownAndExpires() {
	p := NewStatusProcessor(1)
	p.Apply(s.target, StatusEffect{Kind: entities.StatusDOT, Remaining: 2, Magnitude: 5})

	p.Tick(s.target)
	s.Assert().Equal(45, s.target.Health())
	s.Require().Len(s.target.Effects(), 1)
	s.Assert().Equal(1, s.target.Effects()[0].Remaining)

	p.Tick(s.target)
	s.Assert().Equal(40, s.target.Health())
	s.Assert().Empty(s.target.Effects())

	p.Tick(s.target)
	s.Assert().Equal(40, s.target.Health())
}

func (s *StatusTestSuite) TestDOTKillClampsAndClears() {
	p := NewStatusProcessor(1)
	p.Apply(s.target, StatusEffect{Kind: entities.StatusDOT, Remaining: 3, Magnitude: 80})
	p.Apply(s.target, StatusEffect{Kind: entities.StatusAttackUp, Remaining: 3, Magnitude: 10})

	tick := p.Tick(s.target)
	s.Assert().True(tick.Killed)
	s.Assert().Equal(50, tick.Damage[0].Amount)
	s.Assert().Equal(0, s.target.Health())
	s.Assert().False(s.target.Alive())
	s.Assert().Empty(s.target.Effects())
}

func (s *StatusTestSuite) TestStunMarksCombatant() {
	p := NewStatusProcessor(1)
	p.Apply(s.target, StatusEffect{Kind: entities.StatusStun, Remaining: 1})

	tick := p.Tick(s.target)
	s.Assert().True(tick.Stunned)
	s.Assert().True(s.target.Stunned())
	s.Assert().Empty(s.target.Effects())

	tick = p.Tick(s.target)
	s.Assert().False(tick.Stunned)
	s.Assert().False(s.target.Stunned())
}

func (s *StatusTestSuite) TestModifiersFoldIntoEffectiveStats() {
	p := NewStatusProcessor(1)
	p.Apply(s.target, StatusEffect{Kind: entities.StatusAttackUp, Remaining: 2, Magnitude: 50})
	p.Apply(s.target, StatusEffect{Kind: entities.StatusDefenseDown, Remaining: 2, Magnitude: 25})
	p.Apply(s.target, StatusEffect{Kind: entities.StatusSpeedDown, Remaining: 2, Magnitude: 50})

	st := s.target.EffectiveStats()
	s.Assert().Equal(150, st.Attack)
	s.Assert().Equal(15, st.Defense)
	s.Assert().Equal(1.0, s.target.EffectiveSpeed())

	p.Apply(s.target, StatusEffect{Kind: entities.StatusDefenseDown, Remaining: 2, Magnitude: 500})
	s.Assert().Equal(0, s.target.EffectiveStats().Defense)
}

func (s *StatusTestSuite) TestDeadCombatantIgnoresEffects() {
	s.target.takeDamage(1000)
	p := NewStatusProcessor(1)
	p.Apply(s.target, StatusEffect{Kind: entities.StatusDOT, Remaining: 2, Magnitude: 5})
	s.Assert().Empty(s.target.Effects())
}

type CooldownTestSuite struct {
	suite.Suite
	skill   entities.Skill
	tracker *CooldownTracker
}

func TestCooldownSuite(t *testing.T) {
	suite.Run(t, new(CooldownTestSuite))
}

func (s *CooldownTestSuite) SetupTest() {
	s.skill = builders.NewSkillBuilder("fireball", entities.SkillCategoryAttack).
		WithMagnitude(60).
		WithCooldown(3).
		Build()
	s.tracker = NewCooldownTracker([]entities.Skill{s.skill})
}

func (s *CooldownTestSuite) TestUseTickCycle() {
	s.Require().True(s.tracker.Available(s.skill.ID))
	s.Require().NoError(s.tracker.Use(&s.skill))
	s.Assert().Equal(s.skill.Cooldown, s.tracker.Remaining(s.skill.ID))

	for i := 0; i < s.skill.Cooldown; i++ {
		s.Assert().False(s.tracker.Available(s.skill.ID))
		s.tracker.Tick()
	}

	s.Assert().Equal(0, s.tracker.Remaining(s.skill.ID))
	s.Assert().True(s.tracker.Available(s.skill.ID))
	s.Assert().NoError(s.tracker.Use(&s.skill))
}

func (s *CooldownTestSuite) TestUseWhileCoolingDown() {
	s.Require().NoError(s.tracker.Use(&s.skill))
	s.tracker.Tick()

	err := s.tracker.Use(&s.skill)
	s.Require().Error(err)
	s.Assert().True(errors.IsActionNotAllowed(err))
	s.Assert().Equal(2, s.tracker.Remaining(s.skill.ID))
}

func (s *CooldownTestSuite) TestTickNeverGoesNegative() {
	for i := 0; i < 5; i++ {
		s.tracker.Tick()
	}
	s.Assert().Equal(0, s.tracker.Remaining(s.skill.ID))
}

func (s *CooldownTestSuite) TestZeroCooldownAlwaysAvailable() {
	jab := builders.NewSkillBuilder("jab", entities.SkillCategoryAttack).Build()
	tracker := NewCooldownTracker([]entities.Skill{jab})

	s.Require().NoError(tracker.Use(&jab))
	s.Require().NoError(tracker.Use(&jab))
	s.Assert().True(tracker.Available(jab.ID))
}
