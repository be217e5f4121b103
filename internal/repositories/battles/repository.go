// Package battles persists finished battle records
package battles

//go:generate mockgen -destination=mock/mock_repository.go -package=battlesmock github.com/KirkDiggler/nyanko-battle/internal/repositories/battles Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/nyanko-battle/internal/engine/combat"
	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
)

// Repository defines the storage interface for battle records
type Repository interface {
	// Save stores a record, replacing any record with the same ID
	// Returns errors.InvalidArgument when the ID or player ID is missing
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves a record by battle ID
	// Returns errors.NotFound if no record exists
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// ListByPlayer returns a player's records, newest first
	ListByPlayer(ctx context.Context, input *ListByPlayerInput) (*ListByPlayerOutput, error)
}

// Record is everything needed to show or re-simulate a finished battle
type Record struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	StageID  string `json:"stage_id,omitempty"`

	Seed      int64 `json:"seed"`
	TurnLimit int   `json:"turn_limit"`
	TeamSize  int   `json:"team_size"`
	MaxStacks int   `json:"max_stacks"`

	PlayerRoster []entities.CombatantDefinition `json:"player_roster"`
	EnemyRoster  []entities.CombatantDefinition `json:"enemy_roster"`
	Choices      []combat.RecordedChoice        `json:"choices"`
	Result       *combat.BattleResult           `json:"result"`

	CreatedAt time.Time `json:"created_at"`
}

// SaveInput defines the request for saving a record
type SaveInput struct {
	Record *Record
}

// SaveOutput defines the response for saving a record
type SaveOutput struct{}

// GetInput defines the request for retrieving a record
type GetInput struct {
	BattleID string
}

// GetOutput defines the response for retrieving a record
type GetOutput struct {
	Record *Record
}

// ListByPlayerInput defines the request for listing a player's records
type ListByPlayerInput struct {
	PlayerID string
	// Limit caps the number of records; 0 returns all
	Limit int
}

// ListByPlayerOutput defines the response for listing a player's records
type ListByPlayerOutput struct {
	Records []*Record
}

func validateRecord(record *Record) error {
	vb := errors.NewValidationBuilder()
	if record == nil {
		vb.RequiredField("record")
		return vb.Build()
	}
	errors.ValidateRequired("id", record.ID, vb)
	errors.ValidateRequired("player_id", record.PlayerID, vb)
	return vb.Build()
}
