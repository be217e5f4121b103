package battle

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/nyanko-battle/internal/engine/combat"
)

// Event types published on the event bus
const (
	EventBattleStarted  = "battle.started"
	EventBattleAction   = "battle.action"
	EventBattleFinished = "battle.finished"
)

// Event context keys
const (
	EventKeyPlayerID = "player_id"
	EventKeyStageID  = "stage_id"
	EventKeyAction   = "action"
	EventKeyResult   = "result"
)

// battleEntity is the event source for everything a battle publishes
type battleEntity struct {
	id string
}

func (b *battleEntity) GetID() string   { return b.id }
func (b *battleEntity) GetType() string { return "battle" }

var _ core.Entity = (*battleEntity)(nil)

func (o *orchestrator) publish(ctx context.Context, eventType string, state *battleState, data map[string]any) {
	if o.eventBus == nil {
		return
	}

	event := events.NewGameEvent(eventType, &battleEntity{id: state.id}, nil)
	event.Context().Set(EventKeyPlayerID, state.playerID)
	if state.stageID != "" {
		event.Context().Set(EventKeyStageID, state.stageID)
	}
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish battle event",
			"battle_id", state.id,
			"event_type", eventType,
			"error", err,
		)
	}
}

func (o *orchestrator) publishActions(ctx context.Context, state *battleState, actions []combat.BattleAction) {
	for _, action := range actions {
		o.publish(ctx, EventBattleAction, state, map[string]any{EventKeyAction: action})
	}
}
