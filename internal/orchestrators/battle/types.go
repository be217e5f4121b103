package battle

import (
	"time"

	"github.com/KirkDiggler/nyanko-battle/internal/engine/combat"
	"github.com/KirkDiggler/nyanko-battle/internal/entities"
)

// StartBattleInput defines the request for starting a battle. Exactly one of
// StageID and Enemies must be set.
type StartBattleInput struct {
	PlayerID string                         `json:"player_id"`
	Roster   []entities.CombatantDefinition `json:"roster"`
	StageID  string                         `json:"stage_id,omitempty"`
	Enemies  []entities.CombatantDefinition `json:"enemies,omitempty"`
	// TurnLimit overrides the stage turn limit when positive
	TurnLimit int `json:"turn_limit,omitempty"`
	// Seed pins the battle randomness; a seed is derived from the clock when nil.
	// Encoded as a string since JSON numbers lose precision past 2^53.
	Seed *int64 `json:"seed,omitempty,string"`
	// AutoPlayer lets the AI choose actions for the player side
	AutoPlayer bool `json:"auto_player,omitempty"`
}

// StartBattleOutput defines the response for starting a battle
type StartBattleOutput struct {
	Battle *BattleView `json:"battle"`
	Seed   int64       `json:"seed,string"`
}

// AdvanceRoundInput defines the request for resolving one round
type AdvanceRoundInput struct {
	BattleID string `json:"battle_id"`
	// Choices for the player side keyed by combatant ID. Ignored for battles
	// started with AutoPlayer.
	Choices map[string]combat.ActionChoice `json:"choices,omitempty"`
}

// AdvanceRoundOutput defines the response for resolving one round
type AdvanceRoundOutput struct {
	Report *combat.RoundReport `json:"report"`
	Battle *BattleView         `json:"battle"`
	// Result is set once the battle is over
	Result *combat.BattleResult `json:"result,omitempty"`
}

// GetBattleInput defines the request for a battle snapshot
type GetBattleInput struct {
	BattleID string `json:"battle_id"`
}

// GetBattleOutput defines the response for a battle snapshot
type GetBattleOutput struct {
	Battle *BattleView `json:"battle"`
}

// GetResultInput defines the request for a finished battle's result
type GetResultInput struct {
	BattleID string `json:"battle_id"`
}

// GetResultOutput defines the response for a finished battle's result
type GetResultOutput struct {
	BattleID string               `json:"battle_id"`
	Result   *combat.BattleResult `json:"result"`
}

// AutoBattleInput defines the request for a battle resolved entirely by the AI
type AutoBattleInput struct {
	PlayerID  string                         `json:"player_id"`
	Roster    []entities.CombatantDefinition `json:"roster"`
	StageID   string                         `json:"stage_id,omitempty"`
	Enemies   []entities.CombatantDefinition `json:"enemies,omitempty"`
	TurnLimit int                            `json:"turn_limit,omitempty"`
	Seed      *int64                         `json:"seed,omitempty,string"`
}

// AutoBattleOutput defines the response for an auto battle
type AutoBattleOutput struct {
	BattleID string               `json:"battle_id"`
	Seed     int64                `json:"seed,string"`
	Result   *combat.BattleResult `json:"result"`
}

// ListBattlesInput defines the request for a player's battle history
type ListBattlesInput struct {
	PlayerID string `json:"player_id"`
	Limit    int    `json:"limit,omitempty"`
}

// ListBattlesOutput defines the response for a player's battle history
type ListBattlesOutput struct {
	Battles []*BattleSummary `json:"battles"`
}

// ReplayBattleInput defines the request for re-simulating a stored battle
type ReplayBattleInput struct {
	BattleID string `json:"battle_id"`
}

// ReplayBattleOutput defines the response for a replay
type ReplayBattleOutput struct {
	BattleID string `json:"battle_id"`
	// Identical reports whether the replayed action log matches the stored one
	Identical bool                 `json:"identical"`
	Result    *combat.BattleResult `json:"result"`
}

// BattleView is a point-in-time view of a battle
type BattleView struct {
	BattleID   string                     `json:"battle_id"`
	PlayerID   string                     `json:"player_id"`
	StageID    string                     `json:"stage_id,omitempty"`
	State      combat.State               `json:"state"`
	Round      int                        `json:"round"`
	TurnLimit  int                        `json:"turn_limit"`
	AutoPlayer bool                       `json:"auto_player,omitempty"`
	Combatants []combat.CombatantSnapshot `json:"combatants,omitempty"`
}

// BattleSummary is one entry of a player's battle history
type BattleSummary struct {
	BattleID  string         `json:"battle_id"`
	StageID   string         `json:"stage_id,omitempty"`
	Outcome   combat.Outcome `json:"outcome"`
	Rounds    int            `json:"rounds"`
	Rewards   combat.Rewards `json:"rewards"`
	CreatedAt time.Time      `json:"created_at"`
}
