package auth

import (
	"sync"
	"time"
)

// expiryBuffer is subtracted from the token lifetime so a token is retired
// before the server-side expiry. It absorbs clock skew and requests that
// are in flight when the boundary passes.
const expiryBuffer = 60 * time.Second

// TokenCache holds the current access/refresh token pair and its absolute
// expiry. It is safe for concurrent use so the same cache can back a
// long-running process, not just a single-shot CLI invocation.
type TokenCache struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time

	now func() time.Time
}

// NewTokenCache creates an empty cache. The zero expiry means the cache
// starts out expired and the first AccessToken call must acquire a token.
func NewTokenCache() *TokenCache {
	return &TokenCache{now: time.Now}
}

// IsExpired reports whether the cached token is no longer usable,
// applying the safety buffer. A fresh cache is always expired.
func (c *TokenCache) IsExpired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isExpiredLocked()
}

func (c *TokenCache) isExpiredLocked() bool {
	return !c.now().Before(c.expiresAt.Add(-expiryBuffer))
}

// SetTokens replaces all three fields atomically. The expiry is computed
// from the current clock at the moment the token is accepted, never lazily.
func (c *TokenCache) SetTokens(accessToken, refreshToken string, expiresIn int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
	c.expiresAt = c.now().Add(time.Duration(expiresIn) * time.Second)
}

// AccessToken returns the cached access token, which may be empty or stale.
func (c *TokenCache) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// RefreshToken returns the cached refresh token, if any.
func (c *TokenCache) RefreshToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshToken
}
