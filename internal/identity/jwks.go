package identity

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// minRefreshInterval bounds how often an unknown kid can trigger a fetch.
	minRefreshInterval = 5 * time.Minute
	defaultKeyTTL      = time.Hour
)

var ErrKeyNotFound = errors.New("signing key not found")

type jsonWebKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKSClient fetches and caches the RSA signing keys published by an
// identity provider. Keys are kept until the Cache-Control max-age of the
// last response elapses.
type JWKSClient struct {
	url        string
	httpClient *http.Client
	now        func() time.Time
	refreshMu  sync.Mutex

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
	expiresAt time.Time
}

func NewJWKSClient(url string) *JWKSClient {
	return &JWKSClient{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
		keys:       map[string]*rsa.PublicKey{},
	}
}

// GetKey returns the key for kid. An expired key set is refetched; if that
// fetch fails, a key still present in the expired set is returned.
func (c *JWKSClient) GetKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	snap := c.lookup(kid)
	if snap.found && !snap.stale {
		return snap.key, nil
	}
	if !snap.found && !snap.stale && c.now().Sub(snap.fetchedAt) <= minRefreshInterval {
		return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
	}

	if err := c.refreshSince(ctx, snap.fetchedAt); err != nil {
		if snap.found {
			return snap.key, nil
		}
		return nil, fmt.Errorf("failed to refresh JWKS: %w", err)
	}

	if snap = c.lookup(kid); !snap.found {
		return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, kid)
	}
	return snap.key, nil
}

type keySnapshot struct {
	key       *rsa.PublicKey
	found     bool
	stale     bool
	fetchedAt time.Time
}

func (c *JWKSClient) lookup(kid string) keySnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, ok := c.keys[kid]
	return keySnapshot{
		key:       key,
		found:     ok,
		stale:     !c.now().Before(c.expiresAt),
		fetchedAt: c.fetchedAt,
	}
}

// refreshSince fetches the key set unless another caller already replaced
// the one fetched at seen. Concurrent callers share a single fetch.
func (c *JWKSClient) refreshSince(ctx context.Context, seen time.Time) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.mu.RLock()
	done := c.fetchedAt.After(seen)
	c.mu.RUnlock()
	if done {
		return nil
	}
	return c.refresh(ctx)
}

func (c *JWKSClient) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to build JWKS request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	var doc struct {
		Keys []jsonWebKey `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode JWKS: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || (k.Use != "" && k.Use != "sig") {
			continue
		}
		if pub, err := k.publicKey(); err == nil {
			keys[k.Kid] = pub
		}
	}

	now := c.now()
	c.mu.Lock()
	c.keys = keys
	c.fetchedAt = now
	c.expiresAt = now.Add(maxAge(resp.Header.Get("Cache-Control")))
	c.mu.Unlock()

	return nil
}

// maxAge extracts max-age from a Cache-Control header, falling back to
// defaultKeyTTL.
func maxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(directive), "=")
		if !ok || !strings.EqualFold(name, "max-age") {
			continue
		}
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultKeyTTL
}

func (k jsonWebKey) publicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: int(new(big.Int).SetBytes(e).Int64()),
	}, nil
}
