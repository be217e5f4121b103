// Package stages provides read access to the stage catalog
package stages

//go:generate mockgen -destination=mock/mock_repository.go -package=stagesmock github.com/KirkDiggler/nyanko-battle/internal/repositories/stages Repository

import (
	"context"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
)

// Repository defines read access to stages
type Repository interface {
	// Get retrieves a stage by ID
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if the stage does not exist
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// List returns stages ordered by chapter and number
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// GetInput defines the request for retrieving a stage
type GetInput struct {
	StageID string
}

// GetOutput defines the response for retrieving a stage
type GetOutput struct {
	Stage *entities.Stage
}

// ListInput defines the request for listing stages
type ListInput struct {
	// Chapter filters by chapter when non-zero
	Chapter int
}

// ListOutput defines the response for listing stages
type ListOutput struct {
	Stages []*entities.Stage
}
