package battles

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/nyanko-battle/internal/errors"
	redisclient "github.com/KirkDiggler/nyanko-battle/internal/redis"
)

const (
	// Key pattern: battle:{battle_id}
	battleKeyPrefix = "battle:"
	// Key pattern: battle:player:{player_id}, a sorted set scored by creation time
	playerIndexPrefix = "battle:player:"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	// TTL expires records; 0 keeps them forever
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl must not be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed battle record repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    cfg.TTL,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Save stores the record and indexes it under its player
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}
	record := input.Record

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal battle record")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, battleKey(record.ID), data, r.ttl)
		pipe.ZAdd(ctx, playerIndexKey(record.PlayerID), redis.Z{
			Score:  float64(record.CreatedAt.Unix()),
			Member: record.ID,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store battle %s", record.ID)
	}

	return &SaveOutput{}, nil
}

// Get retrieves a record by battle ID
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	data, err := r.client.Get(ctx, battleKey(input.BattleID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("battle %s not found", input.BattleID)
		}
		return nil, errors.Wrapf(err, "failed to get battle %s", input.BattleID)
	}

	record, err := decodeRecord(data)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Record: record}, nil
}

// ListByPlayer returns a player's records, newest first. Index entries whose
// record has expired are dropped from the index.
func (r *redisRepository) ListByPlayer(ctx context.Context, input *ListByPlayerInput) (*ListByPlayerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit) - 1
	}

	indexKey := playerIndexKey(input.PlayerID)
	ids, err := r.client.ZRevRange(ctx, indexKey, 0, stop).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read battle index for player %s", input.PlayerID)
	}
	if len(ids) == 0 {
		return &ListByPlayerOutput{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = battleKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load battles for player %s", input.PlayerID)
	}

	records := make([]*Record, 0, len(values))
	var stale []interface{}
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		record, err := decodeRecord([]byte(raw))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if len(stale) > 0 {
		_ = r.client.ZRem(ctx, indexKey, stale...)
	}

	return &ListByPlayerOutput{Records: records}, nil
}

func decodeRecord(data []byte) (*Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal battle record")
	}
	return &record, nil
}

func battleKey(id string) string {
	return battleKeyPrefix + id
}

func playerIndexKey(playerID string) string {
	return fmt.Sprintf("%s%s", playerIndexPrefix, playerID)
}
