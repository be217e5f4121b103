package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/nyanko-battle/internal/engine/combat"
	"github.com/KirkDiggler/nyanko-battle/internal/orchestrators/battle"
)

var (
	simulateOpts    serviceOptions
	simulateTeam    string
	simulateStage   string
	simulateEnemies string
	simulateSeed    int64
	simulateVerify  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run an auto battle locally",
	Long: `Run a battle between a team YAML file and either a stage from the catalog
or an enemy roster YAML file, with the AI choosing for both sides. The result
is printed as JSON.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simulateTeam, "team", "data/team.yaml", "player team YAML file")
	simulateCmd.Flags().StringVar(&simulateStage, "stage", "", "stage id to fight")
	simulateCmd.Flags().StringVar(&simulateEnemies, "enemies", "", "enemy roster YAML file")
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 0, "battle seed (derived from the clock when unset)")
	simulateCmd.Flags().BoolVar(&simulateVerify, "verify", false, "replay the battle and report whether the log matches")
	simulateCmd.Flags().StringVar(&simulateOpts.stagesPath, "stages", "data/stages.yaml", "stage catalog YAML file")
	simulateCmd.Flags().IntVar(&simulateOpts.teamSize, "team-size", 5, "maximum combatants per side")
	simulateCmd.Flags().IntVar(&simulateOpts.maxStacks, "max-stacks", 1, "maximum stacks of one status effect")
	simulateCmd.Flags().IntVar(&simulateOpts.turnLimit, "turn-limit", 30, "turn limit when the stage sets none")
}

// simulateOutput is what the simulate command prints
type simulateOutput struct {
	BattleID string               `json:"battle_id"`
	Seed     int64                `json:"seed"`
	Result   *combat.BattleResult `json:"result"`
	// Identical is only set with --verify
	Identical *bool `json:"replay_identical,omitempty"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if (simulateStage == "") == (simulateEnemies == "") {
		return fmt.Errorf("exactly one of --stage and --enemies is required")
	}

	team, err := loadRoster(simulateTeam)
	if err != nil {
		return err
	}

	input := &battle.AutoBattleInput{
		PlayerID: "local",
		Roster:   team,
		StageID:  simulateStage,
	}
	if simulateEnemies != "" {
		enemies, err := loadRoster(simulateEnemies)
		if err != nil {
			return err
		}
		input.Enemies = enemies
	}
	if cmd.Flags().Changed("seed") {
		input.Seed = &simulateSeed
	}

	svc, err := newBattleService(&simulateOpts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out, err := svc.AutoBattle(ctx, input)
	if err != nil {
		return fmt.Errorf("battle failed: %w", err)
	}

	result := simulateOutput{
		BattleID: out.BattleID,
		Seed:     out.Seed,
		Result:   out.Result,
	}

	if simulateVerify {
		replay, err := svc.ReplayBattle(ctx, &battle.ReplayBattleInput{BattleID: out.BattleID})
		if err != nil {
			return fmt.Errorf("replay failed: %w", err)
		}
		result.Identical = &replay.Identical
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
