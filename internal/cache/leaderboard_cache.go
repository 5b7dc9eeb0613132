package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitlog/leaderboard"

	"github.com/redis/go-redis/v9"
)

// LeaderboardCache keeps computed boards in Redis for a short TTL so hot
// community pages do not recompute the same aggregate per request.
type LeaderboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewLeaderboardCache creates a cache over the given client with the given TTL.
func NewLeaderboardCache(rdb *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{rdb: rdb, ttl: ttl}
}

func boardKey(scopeOwner, metric string, window leaderboard.TimeWindow) string {
	return fmt.Sprintf("board:%s:%s:%s", scopeOwner, metric, window)
}

// Get returns a cached board, if one is fresh.
func (c *LeaderboardCache) Get(ctx context.Context, scopeOwner, metric string, window leaderboard.TimeWindow) (leaderboard.Board, bool) {
	if c == nil || c.rdb == nil {
		return leaderboard.Board{}, false
	}
	data, err := c.rdb.Get(ctx, boardKey(scopeOwner, metric, window)).Bytes()
	if err != nil {
		return leaderboard.Board{}, false
	}
	var board leaderboard.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return leaderboard.Board{}, false
	}
	return board, true
}

// Put stores a computed board. Cache failures are not surfaced; the board
// was already computed.
func (c *LeaderboardCache) Put(ctx context.Context, scopeOwner, metric string, window leaderboard.TimeWindow, board leaderboard.Board) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(board)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, boardKey(scopeOwner, metric, window), data, c.ttl)
}
