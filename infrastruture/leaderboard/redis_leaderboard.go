// Package leaderboard ranks solved maze runs in a Redis sorted set.
package leaderboard

import (
	"context"
	"errors"

	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const defaultKey = "labyrinth:leaderboard"

// RedisLeaderboard stores each player's best run as a sorted-set member
// scored by step count. Updates are read-modify-write, so a distributed
// lock guards them against concurrent replicas.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
}

// NewRedisLeaderboard initializes a leaderboard on the provided Redis
// client. An empty key selects the default.
func NewRedisLeaderboard(client *redis.Client, key string) (i.Leaderboard, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if key == "" {
		key = defaultKey
	}

	board := &RedisLeaderboard{
		client: client,
		key:    key,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// RecordRun stores a finished run, keeping only the player's best score.
func (rl *RedisLeaderboard) RecordRun(ctx context.Context, username string, steps int) error {
	mutex := rl.locker.NewMutex(rl.key + ":record_lock")
	if err := mutex.Lock(); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	current, err := rl.client.ZScore(ctx, rl.key, username).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil && int(current) <= steps {
		return nil
	}

	return rl.client.ZAdd(ctx, rl.key, redis.Z{
		Score:  float64(steps),
		Member: username,
	}).Err()
}

// Top returns up to n best runs, fewest steps first.
func (rl *RedisLeaderboard) Top(ctx context.Context, n int64) ([]i.RankedRun, error) {
	if n <= 0 {
		return nil, nil
	}

	entries, err := rl.client.ZRangeWithScores(ctx, rl.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	runs := make([]i.RankedRun, 0, len(entries))
	for _, e := range entries {
		username, ok := e.Member.(string)
		if !ok {
			continue
		}
		runs = append(runs, i.RankedRun{Username: username, Steps: int(e.Score)})
	}
	return runs, nil
}
