package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const stateCacheTTL = 2 * time.Hour

// StateCache keeps the latest room snapshot in redis so reconnecting
// clients can be served without touching postgres. The database stays
// authoritative; every cache operation is best-effort and a dead redis
// only costs the fast path.
type StateCache struct {
	rdb *redis.Client
}

func NewStateCache(rdb *redis.Client) *StateCache {
	return &StateCache{rdb: rdb}
}

func stateKey(code string) string {
	return "room:" + code
}

func (c *StateCache) Put(ctx context.Context, code string, state *RoomState) {
	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("state cache: marshal error for room %s: %v", code, err)
		return
	}
	if err := c.rdb.Set(ctx, stateKey(code), data, stateCacheTTL).Err(); err != nil {
		log.Printf("state cache: set error for room %s: %v", code, err)
	}
}

// Get returns the cached snapshot, or nil on a miss or any redis error.
func (c *StateCache) Get(ctx context.Context, code string) *RoomState {
	data, err := c.rdb.Get(ctx, stateKey(code)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("state cache: get error for room %s: %v", code, err)
		}
		return nil
	}
	var state RoomState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("state cache: unmarshal error for room %s: %v", code, err)
		return nil
	}
	return &state
}

func (c *StateCache) Delete(ctx context.Context, code string) {
	if err := c.rdb.Del(ctx, stateKey(code)).Err(); err != nil {
		log.Printf("state cache: del error for room %s: %v", code, err)
	}
}
