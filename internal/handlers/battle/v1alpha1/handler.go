// Package v1alpha1 handles the battle grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/nyanko-battle/internal/errors"
	"github.com/KirkDiggler/nyanko-battle/internal/orchestrators/battle"
)

// HandlerConfig holds dependencies for the battle handler
type HandlerConfig struct {
	BattleService battle.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.BattleService == nil {
		return errors.InvalidArgument("battle service is required")
	}
	return nil
}

// Handler implements the battle gRPC service
type Handler struct {
	battleService battle.Service
}

var _ BattleServiceServer = (*Handler)(nil)

// NewHandler creates a new battle handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		battleService: cfg.BattleService,
	}, nil
}

// handle decodes the request, calls the service and encodes the response.
// Every error leaves as a gRPC status.
func handle[In, Out any](
	ctx context.Context,
	req *structpb.Struct,
	validate func(*In) error,
	call func(context.Context, *In) (*Out, error),
) (*structpb.Struct, error) {
	input := new(In)
	if err := DecodeStruct(req, input); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if validate != nil {
		if err := validate(input); err != nil {
			return nil, errors.ToGRPCError(err)
		}
	}

	output, err := call(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := EncodeStruct(output)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

func requireBattleID(id string) error {
	if id == "" {
		return errors.InvalidArgument("battle_id is required")
	}
	return nil
}

// StartBattle creates a battle against a stage or an explicit enemy roster
func (h *Handler) StartBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, req, func(in *battle.StartBattleInput) error {
		if in.PlayerID == "" {
			return errors.InvalidArgument("player_id is required")
		}
		return nil
	}, h.battleService.StartBattle)
}

// AdvanceRound resolves the next round of a battle
func (h *Handler) AdvanceRound(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, req, func(in *battle.AdvanceRoundInput) error {
		return requireBattleID(in.BattleID)
	}, h.battleService.AdvanceRound)
}

// GetBattle returns the current view of a battle
func (h *Handler) GetBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, req, func(in *battle.GetBattleInput) error {
		return requireBattleID(in.BattleID)
	}, h.battleService.GetBattle)
}

// GetResult returns the result of a finished battle
func (h *Handler) GetResult(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, req, func(in *battle.GetResultInput) error {
		return requireBattleID(in.BattleID)
	}, h.battleService.GetResult)
}

// AutoBattle runs a battle to completion with the AI on both sides
func (h *Handler) AutoBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, req, func(in *battle.AutoBattleInput) error {
		if in.PlayerID == "" {
			return errors.InvalidArgument("player_id is required")
		}
		return nil
	}, h.battleService.AutoBattle)
}

// ListBattles returns a player's finished battles
func (h *Handler) ListBattles(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, req, func(in *battle.ListBattlesInput) error {
		if in.PlayerID == "" {
			return errors.InvalidArgument("player_id is required")
		}
		if in.Limit < 0 {
			return errors.InvalidArgument("limit must not be negative")
		}
		return nil
	}, h.battleService.ListBattles)
}

// ReplayBattle re-simulates a stored battle
func (h *Handler) ReplayBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, req, func(in *battle.ReplayBattleInput) error {
		return requireBattleID(in.BattleID)
	}, h.battleService.ReplayBattle)
}
