package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/nyanko-battle/internal/handlers/battle/v1alpha1"
	"github.com/KirkDiggler/nyanko-battle/internal/orchestrators/battle"
)

var (
	clientAddr     string
	clientTimeout  time.Duration
	clientPlayerID string
	clientTeam     string
	clientStage    string
	clientSeed     int64
	clientBattleID string
	clientLimit    int
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running battle server",
}

var autoBattleCmd = &cobra.Command{
	Use:   "auto-battle",
	Short: "Run an auto battle on the server",
	RunE:  runAutoBattle,
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a stored battle on the server",
	RunE:  runReplay,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a player's finished battles",
	RunE:  runList,
}

func init() {
	clientCmd.PersistentFlags().StringVar(&clientAddr, "addr", "localhost:50051", "server address")
	clientCmd.PersistentFlags().DurationVar(&clientTimeout, "timeout", 30*time.Second, "request timeout")
	clientCmd.PersistentFlags().StringVar(&clientPlayerID, "player", "local", "player id")

	autoBattleCmd.Flags().StringVar(&clientTeam, "team", "data/team.yaml", "player team YAML file")
	autoBattleCmd.Flags().StringVar(&clientStage, "stage", "1-1", "stage id to fight")
	autoBattleCmd.Flags().Int64Var(&clientSeed, "seed", 0, "battle seed (server derives one when unset)")

	replayCmd.Flags().StringVar(&clientBattleID, "battle-id", "", "battle to replay")
	_ = replayCmd.MarkFlagRequired("battle-id")

	listCmd.Flags().IntVar(&clientLimit, "limit", 10, "maximum battles to list")

	clientCmd.AddCommand(autoBattleCmd)
	clientCmd.AddCommand(replayCmd)
	clientCmd.AddCommand(listCmd)
}

func withClient(cmd *cobra.Command, call func(context.Context, v1alpha1.BattleServiceClient) (*structpb.Struct, error)) error {
	conn, err := grpc.NewClient(clientAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", clientAddr, err)
	}
	defer func() { _ = conn.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, clientTimeout)
	defer cancel()

	resp, err := call(ctx, v1alpha1.NewBattleServiceClient(conn))
	if err != nil {
		return err
	}

	data, err := protojson.MarshalOptions{Multiline: true}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func runAutoBattle(cmd *cobra.Command, args []string) error {
	team, err := loadRoster(clientTeam)
	if err != nil {
		return err
	}

	input := &battle.AutoBattleInput{
		PlayerID: clientPlayerID,
		Roster:   team,
		StageID:  clientStage,
	}
	if cmd.Flags().Changed("seed") {
		input.Seed = &clientSeed
	}

	req, err := v1alpha1.EncodeStruct(input)
	if err != nil {
		return err
	}

	return withClient(cmd, func(ctx context.Context, c v1alpha1.BattleServiceClient) (*structpb.Struct, error) {
		return c.AutoBattle(ctx, req)
	})
}

func runReplay(cmd *cobra.Command, args []string) error {
	req, err := v1alpha1.EncodeStruct(&battle.ReplayBattleInput{BattleID: clientBattleID})
	if err != nil {
		return err
	}

	return withClient(cmd, func(ctx context.Context, c v1alpha1.BattleServiceClient) (*structpb.Struct, error) {
		return c.ReplayBattle(ctx, req)
	})
}

func runList(cmd *cobra.Command, args []string) error {
	req, err := v1alpha1.EncodeStruct(&battle.ListBattlesInput{
		PlayerID: clientPlayerID,
		Limit:    clientLimit,
	})
	if err != nil {
		return err
	}

	return withClient(cmd, func(ctx context.Context, c v1alpha1.BattleServiceClient) (*structpb.Struct, error) {
		return c.ListBattles(ctx, req)
	})
}
