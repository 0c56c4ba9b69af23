package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	jose "github.com/go-jose/go-jose/v4"
)

// ErrKeyNotFound is returned when the key set has no key with the token's kid.
var ErrKeyNotFound = errors.New("identity: signing key not found")

const defaultKeyTTL = time.Hour

// KeySet fetches and caches a provider's JSON Web Key Set.
type KeySet struct {
	url        *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	ttl        time.Duration
	now        func() time.Time

	mu     sync.RWMutex
	keys   map[string]jose.JSONWebKey
	expiry time.Time

	refreshMu sync.Mutex
}

// NewKeySet creates a key set for the absolute JWKS URL.
func NewKeySet(rawURL string, timeout time.Duration, logger *slog.Logger) (*KeySet, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse jwks url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("jwks url must be absolute")
	}
	return &KeySet{
		url:        parsed,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		ttl:        defaultKeyTTL,
		now:        time.Now,
	}, nil
}

// Key returns the public key for kid, refreshing the set when it is stale
// or does not know kid yet.
func (k *KeySet) Key(ctx context.Context, kid string) (any, error) {
	if key, ok := k.cached(kid); ok {
		return key, nil
	}
	if err := k.refresh(ctx); err != nil {
		return nil, err
	}
	if key, ok := k.cached(kid); ok {
		return key, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, kid)
}

func (k *KeySet) cached(kid string) (any, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.now().After(k.expiry) {
		return nil, false
	}
	jwk, ok := k.keys[kid]
	if !ok {
		return nil, false
	}
	return jwk.Key, true
}

func (k *KeySet) refresh(ctx context.Context) error {
	k.refreshMu.Lock()
	defer k.refreshMu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url.String(), nil)
	if err != nil {
		return fmt.Errorf("build jwks request: %w", err)
	}
	resp, err := k.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch jwks: unexpected status %d", resp.StatusCode)
	}

	var set jose.JSONWebKeySet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]jose.JSONWebKey, len(set.Keys))
	for _, jwk := range set.Keys {
		if jwk.KeyID == "" || !jwk.Valid() || !jwk.IsPublic() {
			continue
		}
		keys[jwk.KeyID] = jwk
	}
	if len(keys) == 0 {
		return fmt.Errorf("decode jwks: empty key set")
	}

	k.mu.Lock()
	k.keys = keys
	k.expiry = k.now().Add(k.ttl)
	k.mu.Unlock()

	k.logger.Debug("jwks refreshed", slog.Int("keys", len(keys)))
	return nil
}
