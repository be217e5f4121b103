package battles

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/nyanko-battle/internal/engine/combat"
	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Record
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*Record),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a record
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Record.ID] = copyRecord(input.Record)

	return &SaveOutput{}, nil
}

// Get retrieves a record by battle ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.store[input.BattleID]
	if !exists {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID)
	}

	return &GetOutput{Record: copyRecord(record)}, nil
}

// ListByPlayer returns a player's records, newest first
func (r *InMemoryRepository) ListByPlayer(_ context.Context, input *ListByPlayerInput) (*ListByPlayerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*Record
	for _, record := range r.store {
		if record.PlayerID == input.PlayerID {
			records = append(records, copyRecord(record))
		}
	}

	slices.SortFunc(records, func(a, b *Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if input.Limit > 0 && len(records) > input.Limit {
		records = records[:input.Limit]
	}

	return &ListByPlayerOutput{Records: records}, nil
}

func copyRecord(record *Record) *Record {
	cp := *record
	cp.PlayerRoster = copyRoster(record.PlayerRoster)
	cp.EnemyRoster = copyRoster(record.EnemyRoster)
	cp.Choices = append([]combat.RecordedChoice(nil), record.Choices...)
	cp.Result = record.Result.Clone()
	return &cp
}

func copyRoster(roster []entities.CombatantDefinition) []entities.CombatantDefinition {
	if roster == nil {
		return nil
	}
	out := make([]entities.CombatantDefinition, len(roster))
	for i, def := range roster {
		out[i] = def.Clone()
	}
	return out
}
