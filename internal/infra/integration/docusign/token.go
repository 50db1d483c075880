package docusign

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultExpiryMargin antecipa a renovação para não usar um token prestes a expirar.
const DefaultExpiryMargin = 5 * time.Minute

// TokenCache guarda o access token do DocuSign e seu instante de expiração.
type TokenCache struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	margin    time.Duration
	token     string
	expiresAt time.Time
}

func NewTokenCache(clock clockwork.Clock) *TokenCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TokenCache{clock: clock, margin: DefaultExpiryMargin}
}

// Valid devolve o token se ele existir e ainda estiver fora da margem de expiração.
func (t *TokenCache) Valid() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token == "" {
		return "", false
	}
	if !t.clock.Now().Add(t.margin).Before(t.expiresAt) {
		return "", false
	}
	return t.token, true
}

func (t *TokenCache) Store(token string, ttl time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.token = token
	t.expiresAt = t.clock.Now().Add(ttl)
}

func (t *TokenCache) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.token = ""
	t.expiresAt = time.Time{}
}

func (t *TokenCache) ExpiresAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expiresAt
}

func (t *TokenCache) now() time.Time {
	return t.clock.Now()
}
