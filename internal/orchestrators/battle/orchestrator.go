// Package battle runs battles for players: it builds rosters, drives the
// combat engine round by round, and settles rewards and history when a
// battle ends.
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/KirkDiggler/nyanko-battle/internal/orchestrators/battle Service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/nyanko-battle/internal/engine/combat"
	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/errors"
	"github.com/KirkDiggler/nyanko-battle/internal/pkg/clock"
	"github.com/KirkDiggler/nyanko-battle/internal/pkg/idgen"
	"github.com/KirkDiggler/nyanko-battle/internal/pkg/rng"
	"github.com/KirkDiggler/nyanko-battle/internal/repositories/battles"
	"github.com/KirkDiggler/nyanko-battle/internal/repositories/stages"
	"github.com/KirkDiggler/nyanko-battle/internal/services/rewards"
)

// Service defines the interface for battle operations
type Service interface {
	// StartBattle creates a battle against a stage or an explicit enemy roster
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)

	// AdvanceRound resolves the next round with the submitted player choices
	AdvanceRound(ctx context.Context, input *AdvanceRoundInput) (*AdvanceRoundOutput, error)

	// GetBattle returns the current view of a battle
	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)

	// GetResult returns the result of a finished battle
	GetResult(ctx context.Context, input *GetResultInput) (*GetResultOutput, error)

	// AutoBattle runs a battle to completion with the AI on both sides
	AutoBattle(ctx context.Context, input *AutoBattleInput) (*AutoBattleOutput, error)

	// ListBattles returns a player's finished battles, newest first
	ListBattles(ctx context.Context, input *ListBattlesInput) (*ListBattlesOutput, error)

	// ReplayBattle re-simulates a stored battle from its seed and choices
	ReplayBattle(ctx context.Context, input *ReplayBattleInput) (*ReplayBattleOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	IDGenerator idgen.Generator
	Clock       clock.Clock
	StageRepo   stages.Repository
	BattleRepo  battles.Repository
	Rewards     rewards.Calculator
	// EventBus is optional
	EventBus events.EventBus

	// TeamSize caps both rosters; 0 uses combat.DefaultTeamSize
	TeamSize int
	// MaxStacks is the status stacking cap passed to every controller
	MaxStacks int
	// DefaultTurnLimit applies when neither the request nor the stage sets one
	DefaultTurnLimit int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.StageRepo == nil {
		vb.RequiredField("StageRepo")
	}
	if c.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}
	if c.Rewards == nil {
		vb.RequiredField("Rewards")
	}
	if c.TeamSize < 0 {
		vb.Field("TeamSize", "must not be negative")
	}
	if c.MaxStacks < 0 {
		vb.Field("MaxStacks", "must not be negative")
	}
	if c.DefaultTurnLimit < 0 {
		vb.Field("DefaultTurnLimit", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	idGen      idgen.Generator
	clock      clock.Clock
	stageRepo  stages.Repository
	battleRepo battles.Repository
	rewards    rewards.Calculator
	eventBus   events.EventBus

	teamSize         int
	maxStacks        int
	defaultTurnLimit int

	mu      sync.RWMutex
	battles map[string]*battleState
}

// battleState is a live battle. mu serializes every call into controller.
type battleState struct {
	mu sync.Mutex

	id        string
	playerID  string
	stageID   string
	stage     *entities.Stage
	seed      int64
	turnLimit int
	createdAt time.Time

	playerRoster []entities.CombatantDefinition
	enemyRoster  []entities.CombatantDefinition

	controller *combat.Controller
	// script is nil when the AI plays the player side
	script *combat.ScriptedSelector
	result *combat.BattleResult
	// pending is a finished battle's record that has not been stored yet
	pending *battles.Record
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	teamSize := cfg.TeamSize
	if teamSize == 0 {
		teamSize = combat.DefaultTeamSize
	}

	return &orchestrator{
		idGen:            cfg.IDGenerator,
		clock:            cfg.Clock,
		stageRepo:        cfg.StageRepo,
		battleRepo:       cfg.BattleRepo,
		rewards:          cfg.Rewards,
		eventBus:         cfg.EventBus,
		teamSize:         teamSize,
		maxStacks:        cfg.MaxStacks,
		defaultTurnLimit: cfg.DefaultTurnLimit,
		battles:          make(map[string]*battleState),
	}, nil
}

// StartBattle creates a battle against a stage or an explicit enemy roster
func (o *orchestrator) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.start(ctx, input)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	return &StartBattleOutput{
		Battle: state.view(),
		Seed:   state.seed,
	}, nil
}

func (o *orchestrator) start(ctx context.Context, input *StartBattleInput) (*battleState, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("player_id", input.PlayerID, vb)
	if input.StageID == "" && len(input.Enemies) == 0 {
		vb.Field("stage_id", "a stage or an enemy roster is required")
	}
	if input.StageID != "" && len(input.Enemies) > 0 {
		vb.Field("enemies", "cannot be combined with a stage")
	}
	if input.TurnLimit < 0 {
		vb.Field("turn_limit", "must not be negative")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	state := &battleState{
		id:        o.idGen.Generate(),
		playerID:  input.PlayerID,
		stageID:   input.StageID,
		createdAt: o.clock.Now(),
	}

	state.enemyRoster = copyRoster(input.Enemies)
	state.turnLimit = o.defaultTurnLimit
	if input.StageID != "" {
		out, err := o.stageRepo.Get(ctx, &stages.GetInput{StageID: input.StageID})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load stage %s", input.StageID)
		}
		state.stage = out.Stage
		state.enemyRoster = out.Stage.EnemyRoster()
		if out.Stage.TurnLimit > 0 {
			state.turnLimit = out.Stage.TurnLimit
		}
	}
	if input.TurnLimit > 0 {
		state.turnLimit = input.TurnLimit
	}

	state.seed = state.createdAt.UnixNano()
	if input.Seed != nil {
		state.seed = *input.Seed
	}
	state.playerRoster = copyRoster(input.Roster)

	var playerSelector combat.ActionSelector = combat.NewAISelector()
	if !input.AutoPlayer {
		state.script = combat.NewScriptedSelector(nil)
		playerSelector = state.script
	}

	controller, err := combat.NewController(&combat.Config{
		TurnLimit:      state.turnLimit,
		TeamSize:       o.teamSize,
		MaxStacks:      o.maxStacks,
		Roller:         rng.NewSeeded(state.seed),
		PlayerSelector: playerSelector,
		EnemySelector:  combat.NewAISelector(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create battle controller")
	}
	if err := controller.Start(state.playerRoster, state.enemyRoster); err != nil {
		return nil, err
	}
	state.controller = controller

	o.mu.Lock()
	o.battles[state.id] = state
	o.mu.Unlock()

	slog.Info("Battle started",
		"battle_id", state.id,
		"player_id", state.playerID,
		"stage_id", state.stageID,
		"seed", state.seed,
		"turn_limit", state.turnLimit,
		"auto_player", input.AutoPlayer,
	)
	o.publish(ctx, EventBattleStarted, state, nil)

	return state, nil
}

// AdvanceRound resolves the next round with the submitted player choices
func (o *orchestrator) AdvanceRound(ctx context.Context, input *AdvanceRoundInput) (*AdvanceRoundOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.live(input.BattleID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if len(input.Choices) > 0 {
		if err := state.checkChoices(input.Choices); err != nil {
			return nil, err
		}
		state.script.Submit(state.controller.PendingRound(), input.Choices)
	}

	report, err := o.advance(ctx, state)
	if err != nil {
		return nil, err
	}

	return &AdvanceRoundOutput{
		Report: report,
		Battle: state.view(),
		Result: state.result.Clone(),
	}, nil
}

// advance resolves one round and settles the battle if it ended. The caller
// holds state.mu.
func (o *orchestrator) advance(ctx context.Context, state *battleState) (*combat.RoundReport, error) {
	report, err := state.controller.AdvanceRound(ctx)
	if err != nil {
		if errors.IsActionNotAllowed(err) {
			slog.Debug("Battle choice rejected",
				"battle_id", state.id,
				"round", state.controller.PendingRound(),
				"error", err,
			)
		}
		return nil, err
	}

	o.publishActions(ctx, state, report.Actions)

	if report.Terminal() {
		if err := o.finish(ctx, state); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// finish grants rewards, stores the record and retires the live battle. The
// caller holds state.mu.
func (o *orchestrator) finish(ctx context.Context, state *battleState) error {
	result, err := state.controller.Result()
	if err != nil {
		return errors.Wrap(err, "failed to read battle result")
	}

	rewardOut, err := o.rewards.Calculate(ctx, &rewards.CalculateInput{
		Result: result,
		Stage:  state.stage,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to calculate rewards for battle %s", state.id)
	}
	result.Rewards = rewardOut.Rewards
	state.result = result

	record := &battles.Record{
		ID:           state.id,
		PlayerID:     state.playerID,
		StageID:      state.stageID,
		Seed:         state.seed,
		TurnLimit:    state.turnLimit,
		TeamSize:     o.teamSize,
		MaxStacks:    o.maxStacks,
		PlayerRoster: state.playerRoster,
		EnemyRoster:  state.enemyRoster,
		Choices:      state.controller.Choices(),
		Result:       result.Clone(),
		CreatedAt:    state.createdAt,
	}
	state.pending = record

	return o.persist(ctx, state)
}

// persist stores the pending record and retires the live battle. On failure
// the battle stays live with its record pending so a later GetResult can
// store it. The caller holds state.mu.
func (o *orchestrator) persist(ctx context.Context, state *battleState) error {
	if _, err := o.battleRepo.Save(ctx, &battles.SaveInput{Record: state.pending}); err != nil {
		slog.Error("Failed to store battle record",
			"battle_id", state.id,
			"error", err,
		)
		return errors.Wrapf(err, "failed to store battle %s", state.id)
	}
	state.pending = nil
	result := state.result

	o.mu.Lock()
	delete(o.battles, state.id)
	o.mu.Unlock()

	slog.Info("Battle finished",
		"battle_id", state.id,
		"player_id", state.playerID,
		"outcome", result.Outcome,
		"rounds", result.Rounds,
		"experience", result.Rewards.Experience,
		"currency", result.Rewards.Currency,
	)
	o.publish(ctx, EventBattleFinished, state, map[string]any{EventKeyResult: result.Clone()})

	return nil
}

// GetBattle returns the current view of a battle. Finished battles that have
// left memory are described from their stored record.
func (o *orchestrator) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	if state, err := o.live(input.BattleID); err == nil {
		state.mu.Lock()
		defer state.mu.Unlock()
		return &GetBattleOutput{Battle: state.view()}, nil
	}

	out, err := o.battleRepo.Get(ctx, &battles.GetInput{BattleID: input.BattleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battle %s", input.BattleID)
	}
	record := out.Record

	view := &BattleView{
		BattleID:  record.ID,
		PlayerID:  record.PlayerID,
		StageID:   record.StageID,
		TurnLimit: record.TurnLimit,
	}
	if record.Result != nil {
		view.State = stateFor(record.Result.Outcome)
		view.Round = record.Result.Rounds
	}
	return &GetBattleOutput{Battle: view}, nil
}

// GetResult returns the result of a finished battle
func (o *orchestrator) GetResult(ctx context.Context, input *GetResultInput) (*GetResultOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	if state, err := o.live(input.BattleID); err == nil {
		state.mu.Lock()
		defer state.mu.Unlock()
		if state.result == nil {
			return nil, errors.InvalidBattleStatef("battle %s is still %s", state.id, state.controller.State())
		}
		if state.pending != nil {
			// the result stays readable while the store is down
			_ = o.persist(ctx, state)
		}
		return &GetResultOutput{BattleID: state.id, Result: state.result.Clone()}, nil
	}

	out, err := o.battleRepo.Get(ctx, &battles.GetInput{BattleID: input.BattleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battle %s", input.BattleID)
	}

	return &GetResultOutput{BattleID: out.Record.ID, Result: out.Record.Result}, nil
}

// AutoBattle runs a battle to completion with the AI on both sides. When ctx
// ends early the battle stays live and can be continued with AdvanceRound.
func (o *orchestrator) AutoBattle(ctx context.Context, input *AutoBattleInput) (*AutoBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.start(ctx, &StartBattleInput{
		PlayerID:   input.PlayerID,
		Roster:     input.Roster,
		StageID:    input.StageID,
		Enemies:    input.Enemies,
		TurnLimit:  input.TurnLimit,
		Seed:       input.Seed,
		AutoPlayer: true,
	})
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	for state.result == nil {
		if _, err := o.advance(ctx, state); err != nil {
			return nil, errors.Wrapf(err, "auto battle %s stopped in round %d", state.id, state.controller.Round())
		}
	}

	return &AutoBattleOutput{
		BattleID: state.id,
		Seed:     state.seed,
		Result:   state.result.Clone(),
	}, nil
}

// ListBattles returns a player's finished battles, newest first
func (o *orchestrator) ListBattles(ctx context.Context, input *ListBattlesInput) (*ListBattlesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.battleRepo.ListByPlayer(ctx, &battles.ListByPlayerInput{
		PlayerID: input.PlayerID,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list battles for player %s", input.PlayerID)
	}

	summaries := make([]*BattleSummary, 0, len(out.Records))
	for _, record := range out.Records {
		summary := &BattleSummary{
			BattleID:  record.ID,
			StageID:   record.StageID,
			CreatedAt: record.CreatedAt,
		}
		if record.Result != nil {
			summary.Outcome = record.Result.Outcome
			summary.Rounds = record.Result.Rounds
			summary.Rewards = record.Result.Rewards
		}
		summaries = append(summaries, summary)
	}

	return &ListBattlesOutput{Battles: summaries}, nil
}

// ReplayBattle re-simulates a stored battle from its seed and choices
func (o *orchestrator) ReplayBattle(ctx context.Context, input *ReplayBattleInput) (*ReplayBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	out, err := o.battleRepo.Get(ctx, &battles.GetInput{BattleID: input.BattleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battle %s", input.BattleID)
	}
	record := out.Record
	if record.Result == nil {
		return nil, errors.InvalidBattleStatef("battle %s has no stored result", record.ID)
	}

	controller, err := combat.NewController(&combat.Config{
		TurnLimit:      record.TurnLimit,
		TeamSize:       record.TeamSize,
		MaxStacks:      record.MaxStacks,
		Roller:         rng.NewSeeded(record.Seed),
		PlayerSelector: combat.NewScriptedSelector(record.Choices),
		EnemySelector:  combat.NewScriptedSelector(record.Choices),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create replay controller")
	}
	if err := controller.Start(record.PlayerRoster, record.EnemyRoster); err != nil {
		return nil, errors.Wrapf(err, "stored rosters of battle %s are invalid", record.ID)
	}

	for !controller.State().IsTerminal() {
		if _, err := controller.AdvanceRound(ctx); err != nil {
			return nil, errors.Wrapf(err, "replay of battle %s diverged in round %d", record.ID, controller.PendingRound())
		}
	}

	replayed, err := controller.Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read replay result")
	}
	replayed.Rewards = record.Result.Rewards

	identical, err := sameActions(record.Result.Actions, replayed.Actions)
	if err != nil {
		return nil, err
	}
	if !identical {
		slog.Warn("Battle replay does not match stored log",
			"battle_id", record.ID,
			"stored_actions", len(record.Result.Actions),
			"replayed_actions", len(replayed.Actions),
		)
	}

	return &ReplayBattleOutput{
		BattleID:  record.ID,
		Identical: identical,
		Result:    replayed,
	}, nil
}

func (o *orchestrator) live(battleID string) (*battleState, error) {
	if battleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	state, exists := o.battles[battleID]
	if !exists {
		return nil, errors.NotFoundf("battle %s is not in progress", battleID)
	}
	return state, nil
}

// view builds the battle snapshot. The caller holds b.mu.
func (b *battleState) view() *BattleView {
	return &BattleView{
		BattleID:   b.id,
		PlayerID:   b.playerID,
		StageID:    b.stageID,
		State:      b.controller.State(),
		Round:      b.controller.Round(),
		TurnLimit:  b.turnLimit,
		AutoPlayer: b.script == nil,
		Combatants: b.controller.Snapshot(),
	}
}

// checkChoices rejects choices nothing would read: battles the AI plays for
// the player, and ids outside the player roster. The caller holds b.mu.
func (b *battleState) checkChoices(choices map[string]combat.ActionChoice) error {
	if b.script == nil {
		return errors.InvalidArgumentf("battle %s is played by the AI and takes no choices", b.id)
	}
	for _, id := range slices.Sorted(maps.Keys(choices)) {
		inRoster := slices.ContainsFunc(b.playerRoster, func(def entities.CombatantDefinition) bool {
			return def.ID == id
		})
		if !inRoster {
			return errors.InvalidArgumentf("%s is not in the player roster of battle %s", id, b.id).
				WithMeta("combatant_id", id)
		}
	}
	return nil
}

func stateFor(outcome combat.Outcome) combat.State {
	switch outcome {
	case combat.OutcomeVictory:
		return combat.StateVictory
	case combat.OutcomeDefeat:
		return combat.StateDefeat
	default:
		return combat.StateDraw
	}
}

// sameActions compares two logs by their JSON encoding
func sameActions(a, b []combat.BattleAction) (bool, error) {
	left, err := json.Marshal(a)
	if err != nil {
		return false, errors.Wrap(err, "failed to encode stored actions")
	}
	right, err := json.Marshal(b)
	if err != nil {
		return false, errors.Wrap(err, "failed to encode replayed actions")
	}
	return bytes.Equal(left, right), nil
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
