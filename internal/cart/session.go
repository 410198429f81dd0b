package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/fairyhunter13/storefront-checkout/internal/model"
)

// DefaultSessionTTL is how long an untouched cart is kept in Redis.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionStore keeps cart state between requests. Loading an unknown
// session yields an empty cart.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (model.CartState, error)
	Save(ctx context.Context, sessionID string, state model.CartState) error
	Delete(ctx context.Context, sessionID string) error
}

func emptyState() model.CartState {
	return model.CartState{Items: []model.LineItem{}}
}

// MemorySessionStore keeps carts in process memory.
type MemorySessionStore struct {
	mu    sync.RWMutex
	carts map[string]model.CartState
}

// NewMemorySessionStore creates an empty MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{carts: make(map[string]model.CartState)}
}

// Load returns a copy of the session's cart, or an empty cart for an unknown session.
func (m *MemorySessionStore) Load(_ context.Context, sessionID string) (model.CartState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.carts[sessionID]
	if !ok {
		return emptyState(), nil
	}
	return clone(state), nil
}

// Save stores a copy of state under the session id.
func (m *MemorySessionStore) Save(_ context.Context, sessionID string, state model.CartState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.carts[sessionID] = clone(state)
	return nil
}

// Delete drops the session's cart.
func (m *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, sessionID)
	return nil
}

// RedisClient is the subset of redis.Cmdable used by RedisSessionStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisSessionStore keeps carts as JSON documents in Redis with a sliding TTL.
type RedisSessionStore struct {
	client RedisClient
	ttl    time.Duration
}

// NewRedisSessionStore creates a RedisSessionStore. A non-positive ttl uses DefaultSessionTTL.
func NewRedisSessionStore(client RedisClient, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return "cart:" + sessionID
}

// Load reads and decodes the session's cart. A missing key yields an empty cart.
func (r *RedisSessionStore) Load(ctx context.Context, sessionID string) (model.CartState, error) {
	raw, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return emptyState(), nil
		}
		return model.CartState{}, fmt.Errorf("load cart %s: %w", sessionID, err)
	}

	var state model.CartState
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.CartState{}, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}
	if state.Items == nil {
		state.Items = []model.LineItem{}
	}
	return state, nil
}

// Save encodes state and writes it, resetting the TTL.
func (r *RedisSessionStore) Save(ctx context.Context, sessionID string, state model.CartState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", sessionID, err)
	}
	if err := r.client.Set(ctx, sessionKey(sessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save cart %s: %w", sessionID, err)
	}
	return nil
}

// Delete removes the session's cart key.
func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete cart %s: %w", sessionID, err)
	}
	return nil
}
