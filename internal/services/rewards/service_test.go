package rewards_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/nyanko-battle/internal/engine/combat"
	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
	"github.com/KirkDiggler/nyanko-battle/internal/services/rewards"
)

type StageCalculatorTestSuite struct {
	suite.Suite
	ctx   context.Context
	calc  *rewards.StageCalculator
	stage *entities.Stage
}

func TestStageCalculatorSuite(t *testing.T) {
	suite.Run(t, new(StageCalculatorTestSuite))
}

func (s *StageCalculatorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.calc = rewards.NewStageCalculator()
	s.stage = &entities.Stage{ID: "1-1", ExpReward: 125, PointReward: 41}
}

func (s *StageCalculatorTestSuite) TestOutcomes() {
	testCases := []struct {
		name     string
		outcome  combat.Outcome
		expected combat.Rewards
	}{
		{name: "victory", outcome: combat.OutcomeVictory, expected: combat.Rewards{Experience: 125, Currency: 41}},
		{name: "draw", outcome: combat.OutcomeDraw, expected: combat.Rewards{Experience: 62, Currency: 20}},
		{name: "defeat", outcome: combat.OutcomeDefeat, expected: combat.Rewards{Experience: 12}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.calc.Calculate(s.ctx, &rewards.CalculateInput{
				Result: &combat.BattleResult{Outcome: tc.outcome},
				Stage:  s.stage,
			})
			s.Require().NoError(err)
			s.Assert().Equal(tc.expected, out.Rewards)
		})
	}
}

func (s *StageCalculatorTestSuite) TestNoStageGrantsNothing() {
	out, err := s.calc.Calculate(s.ctx, &rewards.CalculateInput{
		Result: &combat.BattleResult{Outcome: combat.OutcomeVictory, Victory: true},
	})
	s.Require().NoError(err)
	s.Assert().Equal(combat.Rewards{}, out.Rewards)
}

func (s *StageCalculatorTestSuite) TestInvalidInput() {
	_, err := s.calc.Calculate(s.ctx, nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.calc.Calculate(s.ctx, &rewards.CalculateInput{Stage: s.stage})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.calc.Calculate(s.ctx, &rewards.CalculateInput{
		Result: &combat.BattleResult{Outcome: "FLED"},
		Stage:  s.stage,
	})
	s.Assert().True(errors.IsInvalidArgument(err))
}
