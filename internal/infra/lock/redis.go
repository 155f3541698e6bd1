package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "studio:lock:"

// Удаляем ключ, только если он всё ещё принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// RedisLocker распределённая блокировка по ключу (SET NX PX + Lua compare-and-delete)
// TTL ограничивает время удержания, если процесс упал, не освободив ключ
type RedisLocker struct {
	client     redis.UniversalClient
	ttl        time.Duration
	retryDelay time.Duration
	logger     Logger
}

// NewRedisLocker создает распределённую блокировку
func NewRedisLocker(client redis.UniversalClient, ttl, retryDelay time.Duration, logger Logger) *RedisLocker {
	return &RedisLocker{
		client:     client,
		ttl:        ttl,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// Lock захватывает ключ, повторяя попытки до отмены контекста
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrLockTimeout, key, ctx.Err())
			}
			return nil, fmt.Errorf("%w: SETNX %s: %v", ErrRedis, key, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrLockTimeout, key, ctx.Err())
		case <-time.After(l.retryDelay):
		}
	}

	return func() {
		// Контекст запроса может быть уже отменён, освобождаем независимо от него
		releaseCtx, cancel := context.WithTimeout(context.Background(), l.ttl)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
			l.logger.Warn("RedisLocker: failed to release key=%s: %v", key, err)
		}
	}, nil
}
