package mailer

import (
	"context"
	"sync"
	"time"
)

// expiryBuffer makes the cache refresh one minute before the token actually
// expires, so a token handed out near the boundary cannot die mid-request.
const expiryBuffer = time.Minute

type tokenFetcher func(ctx context.Context) (token string, expiresIn time.Duration, err error)

// TokenCache memoizes an OAuth client-credentials token per process. The
// clock is injected so expiry is testable; the mutex covers concurrent
// requests inside one instance (multi-instance deployments each keep their
// own cache, which only costs redundant token requests).
type TokenCache struct {
	mu     sync.Mutex
	fetch  tokenFetcher
	now    func() time.Time
	token  string
	expiry time.Time
}

func NewTokenCache(fetch tokenFetcher, now func() time.Time) *TokenCache {
	if now == nil {
		now = time.Now
	}
	return &TokenCache{fetch: fetch, now: now}
}

// Token returns the cached token, fetching a fresh one when the cache is
// empty or inside the expiry buffer.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiry.Add(-expiryBuffer)) {
		return c.token, nil
	}

	token, expiresIn, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.expiry = c.now().Add(expiresIn)
	return c.token, nil
}
