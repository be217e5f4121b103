// Package rewards decides what a finished battle grants the player
package rewards

import (
	"context"

	"github.com/KirkDiggler/nyanko-battle/internal/engine/combat"
	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
)

//go:generate mockgen -destination=mock/mock_calculator.go -package=rewardsmock github.com/KirkDiggler/nyanko-battle/internal/services/rewards Calculator

// Calculator computes battle rewards
type Calculator interface {
	Calculate(ctx context.Context, input *CalculateInput) (*CalculateOutput, error)
}

// CalculateInput contains the finished battle
type CalculateInput struct {
	Result *combat.BattleResult `json:"result"`
	// Stage is nil for battles against an explicit enemy roster
	Stage *entities.Stage `json:"stage,omitempty"`
}

// CalculateOutput contains the granted rewards
type CalculateOutput struct {
	Rewards combat.Rewards `json:"rewards"`
}

// Consolation share of stage experience granted on defeat, in percent
const defeatExperiencePercent = 10

// StageCalculator grants stage rewards scaled by outcome
type StageCalculator struct{}

// NewStageCalculator creates the default calculator
func NewStageCalculator() *StageCalculator {
	return &StageCalculator{}
}

var _ Calculator = (*StageCalculator)(nil)

// Calculate grants the full stage reward on victory, half on a draw, and a
// share of the experience only on defeat
func (c *StageCalculator) Calculate(_ context.Context, input *CalculateInput) (*CalculateOutput, error) {
	if input == nil || input.Result == nil {
		return nil, errors.InvalidArgument("battle result is required")
	}
	if input.Stage == nil {
		return &CalculateOutput{}, nil
	}

	exp, points := input.Stage.ExpReward, input.Stage.PointReward

	var rewards combat.Rewards
	switch input.Result.Outcome {
	case combat.OutcomeVictory:
		rewards = combat.Rewards{Experience: exp, Currency: points}
	case combat.OutcomeDraw:
		rewards = combat.Rewards{Experience: exp / 2, Currency: points / 2}
	case combat.OutcomeDefeat:
		rewards = combat.Rewards{Experience: exp * defeatExperiencePercent / 100}
	default:
		return nil, errors.InvalidArgumentf("unknown outcome %q", input.Result.Outcome)
	}

	return &CalculateOutput{Rewards: rewards}, nil
}
