// Package session provides HTTP session management for the admin API.
// Sessions are identified by a secure cookie and stored as JSON with a TTL,
// either in Valkey (shared across instances) or in process memory.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "folio_session"

	// DefaultTTL is how long a session lives before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Data holds the session payload: the signed-in admin account.
type Data struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// backend stores serialized sessions by key.
type backend interface {
	set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	get(ctx context.Context, key string) ([]byte, bool, error)
	del(ctx context.Context, key string) error
}

// Store manages session lifecycle.
type Store struct {
	backend backend
	ttl     time.Duration
	secure  bool
}

// NewStore creates a session store backed by the given Valkey client.
// secure sets the Secure flag on cookies; enable it behind TLS.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{backend: valkeyBackend{client: client}, ttl: DefaultTTL, secure: secure}
}

// NewMemoryStore creates a session store kept in process memory. Sessions
// do not survive a restart and are not shared between instances.
func NewMemoryStore(secure bool) *Store {
	return &Store{
		backend: memoryBackend{cache: cache.New(DefaultTTL, 10*time.Minute)},
		ttl:     DefaultTTL,
		secure:  secure,
	}
}

// Create generates a new session, stores it, and sets the session cookie on
// the response. Returns the session ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	data.CreatedAt = time.Now()

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("session marshal: %w", err)
	}

	if err := s.backend.set(ctx, keyPrefix+id, payload, s.ttl); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	return id, nil
}

// Get retrieves session data using the session ID from the request cookie.
// Returns nil if no valid session exists.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil // No cookie = no session (not an error)
	}

	payload, ok, err := s.backend.get(ctx, keyPrefix+cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	if !ok {
		return nil, nil // Session expired or doesn't exist
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}

	return &data, nil
}

// Destroy removes the session and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil // No cookie, nothing to destroy
	}

	if err := s.backend.del(ctx, keyPrefix+cookie.Value); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		MaxAge:   -1,
	})

	return nil
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type valkeyBackend struct {
	client *redis.Client
}

func (b valkeyBackend) set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return b.client.Set(ctx, key, payload, ttl).Err()
}

func (b valkeyBackend) get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := b.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (b valkeyBackend) del(ctx context.Context, key string) error {
	return b.client.Del(ctx, key).Err()
}

type memoryBackend struct {
	cache *cache.Cache
}

func (b memoryBackend) set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	b.cache.Set(key, payload, ttl)
	return nil
}

func (b memoryBackend) get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := b.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	payload, ok := v.([]byte)
	if !ok {
		return nil, false, fmt.Errorf("unexpected session value %T", v)
	}
	return payload, true, nil
}

func (b memoryBackend) del(_ context.Context, key string) error {
	b.cache.Delete(key)
	return nil
}
