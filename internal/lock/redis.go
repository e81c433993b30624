// Пакет lock — блокировка аккаунта на время прогона: распределённая (Redis) и локальная.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var _ ports.TenantLocker = (*RedisLocker)(nil)

const keyPrefix = "bronze-sync:lock:"

// DefaultTTL — запас сверх таймаута одного вызова синхронизации.
const DefaultTTL = 15 * time.Minute

// RedisLocker — SET NX с TTL; снять блокировку может только владелец.
type RedisLocker struct {
	client  redis.UniversalClient
	ttl     time.Duration
	ownerID string
}

// NewRedisLocker — ttl <= 0 → DefaultTTL.
func NewRedisLocker(client redis.UniversalClient, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	hostname, _ := os.Hostname()
	return &RedisLocker{
		client:  client,
		ttl:     ttl,
		ownerID: fmt.Sprintf("%s:%d:%s", hostname, os.Getpid(), uuid.NewString()),
	}
}

// Acquire — true, если блокировка взята; false — аккаунт уже синхронизируется.
func (l *RedisLocker) Acquire(ctx context.Context, tenantID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, keyPrefix+tenantID, l.ownerID, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", tenantID, err)
	}
	return ok, nil
}

// releaseScript — удаляет ключ, только если он наш.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Release — безопасно вызывать, даже если блокировка истекла или чужая.
func (l *RedisLocker) Release(ctx context.Context, tenantID string) error {
	_, err := releaseScript.Run(ctx, l.client, []string{keyPrefix + tenantID}, l.ownerID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release lock %s: %w", tenantID, err)
	}
	return nil
}

// OwnerID — идентификатор владельца (для логов).
func (l *RedisLocker) OwnerID() string { return l.ownerID }

// NewRedisClient — клиент с проверкой соединения.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}
