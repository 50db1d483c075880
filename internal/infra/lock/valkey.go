package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
	"go.uber.org/zap"
)

const keyPrefix = "advantage:lock:"

// apaga a chave só se ela ainda pertencer a quem adquiriu
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) else return 0 end`

// ValkeyLocker é um lease distribuído (SET NX PX) compartilhado entre instâncias da API.
type ValkeyLocker struct {
	client valkey.Client
	ttl    time.Duration
}

func NewValkeyClient(addr string) (valkey.Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no Valkey: %w", err)
	}
	return client, nil
}

func NewValkeyLocker(client valkey.Client, ttl time.Duration) *ValkeyLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ValkeyLocker{client: client, ttl: ttl}
}

func (l *ValkeyLocker) TryAcquire(ctx context.Context, key string) (func(), bool, error) {
	fullKey := keyPrefix + key
	token := uuid.NewString()

	cmd := l.client.B().Set().Key(fullKey).Value(token).Nx().PxMilliseconds(l.ttl.Milliseconds()).Build()
	err := l.client.Do(ctx, cmd).Error()
	if valkey.IsValkeyNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("erro ao adquirir lock %s: %w", key, err)
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		cmd := l.client.B().Eval().Script(releaseScript).Numkeys(1).Key(fullKey).Arg(token).Build()
		if err := l.client.Do(releaseCtx, cmd).Error(); err != nil {
			zap.S().Warnw("Falha ao liberar lock, expira pelo TTL", "key", key, "error", err)
		}
	}
	return release, true, nil
}
