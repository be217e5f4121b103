package stages

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
)

// InMemoryRepository implements Repository over a fixed set of stages
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*entities.Stage
}

// NewInMemory creates a repository holding the given stages
func NewInMemory(stages ...entities.Stage) (*InMemoryRepository, error) {
	if err := validateCatalog(stages); err != nil {
		return nil, err
	}

	r := &InMemoryRepository{
		store: make(map[string]*entities.Stage, len(stages)),
	}
	for i := range stages {
		r.store[stages[i].ID] = copyStage(&stages[i])
	}
	return r, nil
}

var _ Repository = (*InMemoryRepository)(nil)

// Get retrieves a stage by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.StageID == "" {
		return nil, errors.InvalidArgument("stage ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stage, exists := r.store[input.StageID]
	if !exists {
		return nil, errors.NotFoundf("stage %s not found", input.StageID)
	}

	return &GetOutput{Stage: copyStage(stage)}, nil
}

// List returns stages ordered by chapter and number
func (r *InMemoryRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		input = &ListInput{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Stage, 0, len(r.store))
	for _, stage := range r.store {
		if input.Chapter != 0 && stage.Chapter != input.Chapter {
			continue
		}
		out = append(out, copyStage(stage))
	}

	slices.SortFunc(out, func(a, b *entities.Stage) int {
		if c := cmp.Compare(a.Chapter, b.Chapter); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Number, b.Number); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return &ListOutput{Stages: out}, nil
}

func copyStage(s *entities.Stage) *entities.Stage {
	cp := *s
	cp.Enemies = make([]entities.CombatantDefinition, len(s.Enemies))
	for i, enemy := range s.Enemies {
		cp.Enemies[i] = enemy.Clone()
	}
	return &cp
}

func validateCatalog(stages []entities.Stage) error {
	vb := errors.NewValidationBuilder()
	seen := make(map[string]bool, len(stages))

	for i := range stages {
		stage := &stages[i]
		if stage.ID == "" {
			vb.Fieldf("stages", "entry %d has no id", i)
			continue
		}
		if seen[stage.ID] {
			vb.Fieldf(stage.ID, "duplicate stage id")
		}
		seen[stage.ID] = true

		if len(stage.Enemies) == 0 {
			vb.Field(stage.ID+".enemies", "must not be empty")
		}
		if stage.TurnLimit < 0 {
			vb.Field(stage.ID+".turn_limit", "must not be negative")
		}
		if stage.EnemyLevel < 0 {
			vb.Field(stage.ID+".enemy_level", "must not be negative")
		}
	}

	return vb.Build()
}
