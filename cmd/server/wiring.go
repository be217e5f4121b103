package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/nyanko-battle/internal/entities"
	"github.com/KirkDiggler/nyanko-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/nyanko-battle/internal/pkg/clock"
	"github.com/KirkDiggler/nyanko-battle/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/nyanko-battle/internal/redis"
	"github.com/KirkDiggler/nyanko-battle/internal/repositories/battles"
	"github.com/KirkDiggler/nyanko-battle/internal/repositories/stages"
	"github.com/KirkDiggler/nyanko-battle/internal/services/rewards"
)

// serviceOptions collects the flags shared by the server and simulate commands
type serviceOptions struct {
	stagesPath string
	redisAddr  string
	recordTTL  time.Duration
	teamSize   int
	maxStacks  int
	turnLimit  int
	eventBus   events.EventBus
}

func newBattleService(opts *serviceOptions) (battle.Service, error) {
	stageRepo, err := newStageRepository(opts.stagesPath)
	if err != nil {
		return nil, err
	}

	battleRepo, err := newBattleRepository(opts.redisAddr, opts.recordTTL)
	if err != nil {
		return nil, err
	}

	return battle.NewOrchestrator(&battle.Config{
		IDGenerator:      idgen.NewUUID("battle"),
		Clock:            clock.New(),
		StageRepo:        stageRepo,
		BattleRepo:       battleRepo,
		Rewards:          rewards.NewStageCalculator(),
		EventBus:         opts.eventBus,
		TeamSize:         opts.teamSize,
		MaxStacks:        opts.maxStacks,
		DefaultTurnLimit: opts.turnLimit,
	})
}

func newStageRepository(path string) (stages.Repository, error) {
	if path == "" {
		slog.Warn("No stage catalog configured, only explicit enemy rosters can be fought")
		repo, err := stages.NewInMemory()
		if err != nil {
			return nil, err
		}
		return repo, nil
	}

	repo, err := stages.NewYAML(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load stages: %w", err)
	}
	return repo, nil
}

func newBattleRepository(addr string, ttl time.Duration) (battles.Repository, error) {
	if addr == "" {
		slog.Info("Using in-memory battle records")
		return battles.NewInMemory(), nil
	}

	client, err := redisclient.NewClient(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	slog.Info("Using redis battle records", "addr", addr, "ttl", ttl)
	return battles.NewRedis(&battles.RedisConfig{
		Client: client,
		TTL:    ttl,
	})
}

// loadRoster reads a YAML list of combatant definitions
func loadRoster(path string) ([]entities.CombatantDefinition, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open roster %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var roster []entities.CombatantDefinition
	if err := yaml.NewDecoder(f).Decode(&roster); err != nil {
		return nil, fmt.Errorf("failed to decode roster %s: %w", path, err)
	}
	return roster, nil
}
