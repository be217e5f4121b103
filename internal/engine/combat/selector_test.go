package combat

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
	"github.com/KirkDiggler/nyanko-battle/internal/testutils/builders"
)

type AISelectorTestSuite struct {
	suite.Suite
	ai *AISelector
}

func TestAISelectorSuite(t *testing.T) {
	suite.Run(t, new(AISelectorTestSuite))
}

func (s *AISelectorTestSuite) SetupTest() {
	s.ai = NewAISelector()
}

func (s *AISelectorTestSuite) field(player, enemy []entities.CombatantDefinition) *Battlefield {
	players := make([]*Combatant, len(player))
	for i, def := range player {
		players[i] = newCombatant(def, SidePlayer, i)
	}
	enemies := make([]*Combatant, len(enemy))
	for i, def := range enemy {
		enemies[i] = newCombatant(def, SideEnemy, i)
	}
	return newBattlefield(players, enemies)
}

func (s *AISelectorTestSuite) TestBasicAttackOnWeakestEnemy() {
	f := s.field(
		[]entities.CombatantDefinition{builders.NewCombatantBuilder("p1").Build()},
		[]entities.CombatantDefinition{
			builders.NewCombatantBuilder("e1").Build(),
			builders.NewCombatantBuilder("e2").Build(),
			builders.NewCombatantBuilder("e3").Build(),
		},
	)
	f.enemies[1].takeDamage(30)
	f.enemies[2].takeDamage(30)

	choice, err := s.ai.SelectAction(f, f.players[0])
	s.Require().NoError(err)
	s.Assert().Equal(ActionChoice{TargetID: "e2"}, choice)
}

func (s *AISelectorTestSuite) TestStrongestReadyDamageSkill() {
	claw := builders.NewSkillBuilder("claw", entities.SkillCategoryAttack).WithMagnitude(30).Build()
	blast := builders.NewSkillBuilder("blast", entities.SkillCategorySpecial).
		WithMagnitude(80).
		WithTarget(entities.TargetAllEnemies).
		WithCooldown(3).
		Build()

	f := s.field(
		[]entities.CombatantDefinition{builders.NewCombatantBuilder("p1").WithSkill(claw).WithSkill(blast).Build()},
		[]entities.CombatantDefinition{builders.NewCombatantBuilder("e1").Build()},
	)
	actor := f.players[0]

	choice, err := s.ai.SelectAction(f, actor)
	s.Require().NoError(err)
	s.Assert().Equal(ActionChoice{SkillID: "blast"}, choice)

	s.Require().NoError(actor.Cooldowns().Use(&blast))
	choice, err = s.ai.SelectAction(f, actor)
	s.Require().NoError(err)
	s.Assert().Equal(ActionChoice{SkillID: "claw", TargetID: "e1"}, choice)
}

func (s *AISelectorTestSuite) TestHealsHurtAlly() {
	mend := builders.NewSkillBuilder("mend", entities.SkillCategoryHeal).
		WithMagnitude(40).
		WithTarget(entities.TargetSingleAlly).
		Build()
	claw := builders.NewSkillBuilder("claw", entities.SkillCategoryAttack).WithMagnitude(30).Build()

	f := s.field(
		[]entities.CombatantDefinition{
			builders.NewCombatantBuilder("healer").WithSkill(mend).WithSkill(claw).Build(),
			builders.NewCombatantBuilder("tank").Build(),
		},
		[]entities.CombatantDefinition{builders.NewCombatantBuilder("e1").Build()},
	)

	choice, err := s.ai.SelectAction(f, f.players[0])
	s.Require().NoError(err)
	s.Assert().Equal("claw", choice.SkillID)

	f.players[1].takeDamage(60)
	choice, err = s.ai.SelectAction(f, f.players[0])
	s.Require().NoError(err)
	s.Assert().Equal(ActionChoice{SkillID: "mend", TargetID: "tank"}, choice)
}

func (s *AISelectorTestSuite) TestRevivesFirst() {
	rise := builders.NewSkillBuilder("rise", entities.SkillCategoryRevive).
		WithMagnitude(50).
		WithTarget(entities.TargetSingleAlly).
		Build()

	f := s.field(
		[]entities.CombatantDefinition{
			builders.NewCombatantBuilder("priest").WithSkill(rise).Build(),
			builders.NewCombatantBuilder("fallen").Build(),
		},
		[]entities.CombatantDefinition{builders.NewCombatantBuilder("e1").Build()},
	)
	f.players[1].takeDamage(1000)

	choice, err := s.ai.SelectAction(f, f.players[0])
	s.Require().NoError(err)
	s.Assert().Equal(ActionChoice{SkillID: "rise", TargetID: "fallen"}, choice)
}

func (s *AISelectorTestSuite) TestStatusSkillSkipsAffectedTargets() {
	guard := builders.NewSkillBuilder("guard", entities.SkillCategoryBuff).
		WithMagnitude(20).
		WithTarget(entities.TargetSelf).
		WithEffect(entities.StatusDefenseUp, 2).
		Build()

	f := s.field(
		[]entities.CombatantDefinition{builders.NewCombatantBuilder("p1").WithSkill(guard).Build()},
		[]entities.CombatantDefinition{builders.NewCombatantBuilder("e1").Build()},
	)
	actor := f.players[0]

	choice, err := s.ai.SelectAction(f, actor)
	s.Require().NoError(err)
	s.Assert().Equal(ActionChoice{SkillID: "guard"}, choice)

	NewStatusProcessor(1).Apply(actor, StatusEffect{Kind: entities.StatusDefenseUp, Remaining: 2, Magnitude: 20})
	choice, err = s.ai.SelectAction(f, actor)
	s.Require().NoError(err)
	s.Assert().Equal(ActionChoice{TargetID: "e1"}, choice)
}

type ScriptedSelectorTestSuite struct {
	suite.Suite
}

func TestScriptedSelectorSuite(t *testing.T) {
	suite.Run(t, new(ScriptedSelectorTestSuite))
}

func (s *ScriptedSelectorTestSuite) TestReturnsChoicePerRound() {
	p1 := newCombatant(builders.NewCombatantBuilder("p1").Build(), SidePlayer, 0)
	f := newBattlefield([]*Combatant{p1}, nil)

	sel := NewScriptedSelector([]RecordedChoice{{Round: 1, ActorID: "p1", TargetID: "e1"}})
	sel.Submit(2, map[string]ActionChoice{"p1": {SkillID: "claw", TargetID: "e2"}})

	f.round = 1
	choice, err := sel.SelectAction(f, p1)
	s.Require().NoError(err)
	s.Assert().Equal(ActionChoice{TargetID: "e1"}, choice)

	f.round = 2
	choice, err = sel.SelectAction(f, p1)
	s.Require().NoError(err)
	s.Assert().Equal(ActionChoice{SkillID: "claw", TargetID: "e2"}, choice)

	f.round = 3
	_, err = sel.SelectAction(f, p1)
	s.Require().Error(err)
	s.Assert().True(errors.IsActionNotAllowed(err))
	s.Assert().Equal("p1", errors.GetMeta(err)["actor_id"])
}
