package stages_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
	"github.com/KirkDiggler/nyanko-battle/internal/repositories/stages"
	"github.com/KirkDiggler/nyanko-battle/internal/testutils/builders"
)

const catalog = `
stages:
  - id: "2-1"
    name: Temple
    chapter: 2
    number: 1
    turn_limit: 30
    exp_reward: 400
    point_reward: 150
    enemies:
      - id: acolyte
        name: Acolyte
        element: light
        attack: 20
        max_health: 200
        speed: 1.1
  - id: "1-2"
    name: Rooftop
    chapter: 1
    number: 2
    enemy_level: 3
    enemies:
      - id: shade
        name: Shade
        attack: 30
        max_health: 160
        speed: 1.6
  - id: "1-1"
    name: Alley
    chapter: 1
    number: 1
    enemies:
      - id: stray
        name: Stray
        attack: 18
        max_health: 140
        speed: 0.9
`

type StagesTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo *stages.InMemoryRepository
}

func TestStagesSuite(t *testing.T) {
	suite.Run(t, new(StagesTestSuite))
}

func (s *StagesTestSuite) SetupTest() {
	s.ctx = context.Background()

	repo, err := stages.LoadYAML(strings.NewReader(catalog))
	s.Require().NoError(err)
	s.repo = repo
}

func (s *StagesTestSuite) TestGet() {
	out, err := s.repo.Get(s.ctx, &stages.GetInput{StageID: "2-1"})
	s.Require().NoError(err)

	s.Assert().Equal("Temple", out.Stage.Name)
	s.Assert().Equal(30, out.Stage.TurnLimit)
	s.Assert().Equal(400, out.Stage.ExpReward)
	s.Require().Len(out.Stage.Enemies, 1)

	enemy := out.Stage.Enemies[0]
	s.Assert().Equal(entities.ElementLight, enemy.Element)
	s.Assert().Equal(entities.DefaultCriticalRate, enemy.CriticalRate)
	s.Assert().Equal(1, enemy.Level)
}

func (s *StagesTestSuite) TestGetErrors() {
	_, err := s.repo.Get(s.ctx, &stages.GetInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, &stages.GetInput{StageID: "9-9"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *StagesTestSuite) TestGetReturnsCopy() {
	out, err := s.repo.Get(s.ctx, &stages.GetInput{StageID: "1-1"})
	s.Require().NoError(err)
	out.Stage.Enemies[0].Attack = 9999

	again, err := s.repo.Get(s.ctx, &stages.GetInput{StageID: "1-1"})
	s.Require().NoError(err)
	s.Assert().Equal(18, again.Stage.Enemies[0].Attack)
}

func (s *StagesTestSuite) TestListOrdersByChapterAndNumber() {
	out, err := s.repo.List(s.ctx, &stages.ListInput{})
	s.Require().NoError(err)

	ids := make([]string, len(out.Stages))
	for i, stage := range out.Stages {
		ids[i] = stage.ID
	}
	s.Assert().Equal([]string{"1-1", "1-2", "2-1"}, ids)

	out, err = s.repo.List(s.ctx, &stages.ListInput{Chapter: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Stages, 1)
	s.Assert().Equal("2-1", out.Stages[0].ID)
}

func (s *StagesTestSuite) TestEnemyLevelApplied() {
	out, err := s.repo.Get(s.ctx, &stages.GetInput{StageID: "1-2"})
	s.Require().NoError(err)

	roster := out.Stage.EnemyRoster()
	s.Require().Len(roster, 1)
	s.Assert().Equal(3, roster[0].Level)
}

func (s *StagesTestSuite) TestInvalidCatalog() {
	testCases := []struct {
		name   string
		stages []entities.Stage
		errMsg string
	}{
		{
			name:   "missing id",
			stages: []entities.Stage{{Enemies: []entities.CombatantDefinition{builders.NewCombatantBuilder("e").Build()}}},
			errMsg: "has no id",
		},
		{
			name: "duplicate id",
			stages: []entities.Stage{
				{ID: "a", Enemies: []entities.CombatantDefinition{builders.NewCombatantBuilder("e").Build()}},
				{ID: "a", Enemies: []entities.CombatantDefinition{builders.NewCombatantBuilder("e").Build()}},
			},
			errMsg: "duplicate stage id",
		},
		{
			name:   "no enemies",
			stages: []entities.Stage{{ID: "a"}},
			errMsg: "a.enemies",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := stages.NewInMemory(tc.stages...)
			s.Require().Error(err)
			s.Assert().Nil(repo)
			s.Assert().True(errors.IsInvalidArgument(err))
			s.Assert().Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *StagesTestSuite) TestLoadYAMLRejectsUnknownFields() {
	_, err := stages.LoadYAML(strings.NewReader("stages:\n  - id: a\n    boss: true\n"))
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *StagesTestSuite) TestNewYAMLMissingFile() {
	_, err := stages.NewYAML("does-not-exist.yaml")
	s.Require().Error(err)

	_, err = stages.NewYAML("")
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *StagesTestSuite) TestBundledCatalogLoads() {
	repo, err := stages.NewYAML("../../../data/stages.yaml")
	s.Require().NoError(err)

	out, err := repo.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Assert().NotEmpty(out.Stages)
}
