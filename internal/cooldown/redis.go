package cooldown

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/medvox-ai/intake-pipeline/internal/logger"
	"github.com/medvox-ai/intake-pipeline/internal/types"
)

const reservationKey = "intake:initiate:cooldown"

// releaseScript deletes the reservation only while it still holds the
// caller's token, so a slow failure path cannot wipe out a newer reservation.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisClient is the subset of the go-redis API the gate uses.
type RedisClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisGate shares the initiation window across replicas. The reservation is
// a keyed token with the window as TTL; SET NX makes the claim atomic.
type RedisGate struct {
	rdb    RedisClient
	window time.Duration
}

func NewRedisGate(rdb RedisClient, window time.Duration) *RedisGate {
	return &RedisGate{rdb: rdb, window: window}
}

func (g *RedisGate) Reserve(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	ok, err := g.rdb.SetNX(ctx, reservationKey, token, g.window).Result()
	if err != nil {
		// Fail open when redis is unreachable.
		logger.Error("cooldown reservation check failed, admitting call", zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, types.NewTooManyRequestsError()
	}

	release := func() {
		// Runs on the failure path, possibly after the request context is gone.
		if err := releaseScript.Run(context.Background(), g.rdb, []string{reservationKey}, token).Err(); err != nil {
			logger.Warn("cooldown reservation release failed", zap.Error(err))
		}
	}
	return release, nil
}
