package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
)

type EntitiesTestSuite struct {
	suite.Suite
}

func TestEntitiesSuite(t *testing.T) {
	suite.Run(t, new(EntitiesTestSuite))
}

func (s *EntitiesTestSuite) TestEffectivenessTable() {
	testCases := []struct {
		attacker entities.Element
		defender entities.Element
		expected float64
	}{
		{entities.ElementFire, entities.ElementEarth, 1.5},
		{entities.ElementFire, entities.ElementWater, 0.5},
		{entities.ElementWater, entities.ElementFire, 1.5},
		{entities.ElementWater, entities.ElementEarth, 0.5},
		{entities.ElementEarth, entities.ElementWater, 1.5},
		{entities.ElementEarth, entities.ElementFire, 0.5},
		{entities.ElementLight, entities.ElementDark, 1.5},
		{entities.ElementLight, entities.ElementLight, 0.5},
		{entities.ElementDark, entities.ElementLight, 1.5},
		{entities.ElementDark, entities.ElementDark, 0.5},
		{entities.ElementFire, entities.ElementFire, 1.0},
		{entities.ElementWater, entities.ElementLight, 1.0},
		{entities.ElementEarth, entities.ElementDark, 1.0},
	}

	for _, tc := range testCases {
		s.Run(string(tc.attacker)+"_vs_"+string(tc.defender), func() {
			s.Assert().Equal(tc.expected, entities.Effectiveness(tc.attacker, tc.defender))
		})
	}
}

func (s *EntitiesTestSuite) TestEffectivenessAntiSymmetricForOpposingPairs() {
	pairs := [][2]entities.Element{
		{entities.ElementFire, entities.ElementWater},
		{entities.ElementWater, entities.ElementEarth},
		{entities.ElementEarth, entities.ElementFire},
	}
	for _, p := range pairs {
		s.Assert().Equal(0.5, entities.Effectiveness(p[0], p[1]))
		s.Assert().Equal(1.5, entities.Effectiveness(p[1], p[0]))
	}
}

func (s *EntitiesTestSuite) TestNoneIsNeutral() {
	for _, e := range entities.AllElements() {
		s.Assert().Equal(1.0, entities.Effectiveness(e, entities.ElementNone), e)
		s.Assert().Equal(1.0, entities.Effectiveness(entities.ElementNone, e), e)
	}
}

func (s *EntitiesTestSuite) TestUnknownElementIsNeutral() {
	unknown := entities.Element("PLASMA")
	for _, e := range entities.AllElements() {
		s.Assert().Equal(1.0, entities.Effectiveness(unknown, e))
	}
	s.Assert().Equal(entities.ElementNone, entities.ParseElement("plasma"))
	s.Assert().Equal(entities.ElementFire, entities.ParseElement(" fire "))
}

func (s *EntitiesTestSuite) TestPower() {
	def := entities.CombatantDefinition{
		Attack:    50,
		Defense:   21,
		MaxHealth: 301,
		Speed:     1.25,
		Level:     3,
	}
	// 100 + 31.5 + 150.5 + 62.5 + 30
	s.Assert().Equal(374, def.Power())
}

func (s *EntitiesTestSuite) TestDecodeYAMLAppliesDefaults() {
	src := `
id: tama
name: Tama
element: fire
attack: 40
defense: 10
max_health: 200
speed: 1.2
skills:
  - id: claw
    name: Claw
    category: attack
    magnitude: 60
    target: single_enemy
    cooldown: 2
`
	var def entities.CombatantDefinition
	s.Require().NoError(yaml.Unmarshal([]byte(src), &def))

	s.Assert().Equal(entities.ElementFire, def.Element)
	s.Assert().Equal(entities.DefaultCriticalRate, def.CriticalRate)
	s.Assert().Equal(entities.DefaultCriticalDamage, def.CriticalDamage)
	s.Assert().Equal(1, def.Level)
	s.Require().Len(def.Skills, 1)
	s.Assert().Equal(entities.SkillCategoryAttack, def.Skills[0].Category)
	s.Assert().Equal(entities.TargetSingleEnemy, def.Skills[0].Target)
	s.Assert().Equal(entities.DefaultActivationRate, def.Skills[0].ActivationRate)
	s.Assert().Equal(entities.DefaultEffectDuration, def.Skills[0].Duration)
}

func (s *EntitiesTestSuite) TestDecodeJSONKeepsExplicitValues() {
	src := `{"id":"kuro","name":"Kuro","element":"DARK","attack":30,"defense":5,
		"max_health":120,"speed":2,"critical_rate":0,"critical_damage":2,"level":4,
		"skills":[{"id":"hex","name":"Hex","category":"DEBUFF","magnitude":10,
		"activation_rate":50,"target":"SINGLE_ENEMY","cooldown":3}]}`

	var def entities.CombatantDefinition
	s.Require().NoError(json.Unmarshal([]byte(src), &def))

	s.Assert().Equal(0.0, def.CriticalRate)
	s.Assert().Equal(2.0, def.CriticalDamage)
	s.Assert().Equal(4, def.Level)
	s.Assert().Equal(50, def.Skills[0].ActivationRate)
	s.Assert().Equal(entities.StatusDefenseDown, def.Skills[0].EffectKind())
}

func (s *EntitiesTestSuite) TestSkillEffectKind() {
	testCases := []struct {
		category entities.SkillCategory
		effect   entities.StatusKind
		expected entities.StatusKind
	}{
		{entities.SkillCategoryBuff, "", entities.StatusAttackUp},
		{entities.SkillCategoryBuff, entities.StatusSpeedUp, entities.StatusSpeedUp},
		{entities.SkillCategoryDebuff, "", entities.StatusDefenseDown},
		{entities.SkillCategoryDOT, "", entities.StatusDOT},
		{entities.SkillCategoryCounter, "", entities.StatusCounter},
		{entities.SkillCategoryAttack, "", entities.StatusNone},
		{entities.SkillCategorySpecial, entities.StatusStun, entities.StatusStun},
	}

	for _, tc := range testCases {
		s.Run(string(tc.category)+"/"+string(tc.effect), func() {
			skill := entities.Skill{Category: tc.category, Effect: tc.effect}
			s.Assert().Equal(tc.expected, skill.EffectKind())
		})
	}
}

func (s *EntitiesTestSuite) TestStageEnemyRosterLevelsCopies() {
	stage := entities.Stage{
		ID:         "1-1",
		EnemyLevel: 7,
		Enemies: []entities.CombatantDefinition{
			{ID: "rat", Level: 1, Skills: []entities.Skill{{ID: "bite"}}},
		},
	}

	roster := stage.EnemyRoster()
	s.Require().Len(roster, 1)
	s.Assert().Equal(7, roster[0].Level)
	s.Assert().Equal(1, stage.Enemies[0].Level)

	roster[0].Skills[0].ID = "changed"
	s.Assert().Equal("bite", stage.Enemies[0].Skills[0].ID)
}
