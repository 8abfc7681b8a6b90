package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test keys.
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// stores returns every backend to run a test against. The Valkey store is
// only included when Valkey is reachable.
func stores(t *testing.T) map[string]func(t *testing.T) *Store {
	return map[string]func(t *testing.T) *Store{
		"memory": func(t *testing.T) *Store { return NewMemoryStore(false) },
		"valkey": func(t *testing.T) *Store { return NewStore(testValkeyClient(t), false) },
	}
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("expected session cookie to be set")
	return nil
}

func TestSessionCreateAndGet(t *testing.T) {
	for name, newStore := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()
			w := httptest.NewRecorder()

			data := &Data{UserID: 1, Username: "admin"}
			sessionID, err := store.Create(ctx, w, data)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if len(sessionID) != idLength*2 {
				t.Errorf("session id length = %d, want %d", len(sessionID), idLength*2)
			}
			if data.CreatedAt.IsZero() {
				t.Error("Create must stamp CreatedAt")
			}

			cookie := sessionCookie(t, w)
			if !cookie.HttpOnly {
				t.Error("expected HttpOnly cookie")
			}
			if cookie.Secure {
				t.Error("expected Secure=false for non-secure store")
			}
			if cookie.Value != sessionID {
				t.Errorf("cookie value = %q, want session id", cookie.Value)
			}

			req := httptest.NewRequest("GET", "/", nil)
			req.AddCookie(cookie)

			retrieved, err := store.Get(ctx, req)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if retrieved == nil {
				t.Fatal("expected session data, got nil")
			}
			if retrieved.Username != "admin" || retrieved.UserID != 1 {
				t.Errorf("retrieved = %+v", retrieved)
			}
		})
	}
}

func TestSessionGetNoCookie(t *testing.T) {
	store := NewMemoryStore(false)
	req := httptest.NewRequest("GET", "/", nil)

	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("expected nil session without a cookie")
	}
}

func TestSessionGetUnknownID(t *testing.T) {
	for name, newStore := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			req := httptest.NewRequest("GET", "/", nil)
			req.AddCookie(&http.Cookie{Name: CookieName, Value: "does-not-exist"})

			data, err := store.Get(context.Background(), req)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if data != nil {
				t.Error("expected nil for unknown session id")
			}
		})
	}
}

func TestSessionDestroy(t *testing.T) {
	for name, newStore := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			w := httptest.NewRecorder()
			if _, err := store.Create(ctx, w, &Data{UserID: 1, Username: "admin"}); err != nil {
				t.Fatalf("Create: %v", err)
			}
			cookie := sessionCookie(t, w)

			req := httptest.NewRequest("POST", "/logout", nil)
			req.AddCookie(cookie)
			w2 := httptest.NewRecorder()
			if err := store.Destroy(ctx, w2, req); err != nil {
				t.Fatalf("Destroy: %v", err)
			}

			cleared := sessionCookie(t, w2)
			if cleared.MaxAge != -1 {
				t.Errorf("cleared cookie MaxAge = %d, want -1", cleared.MaxAge)
			}

			data, err := store.Get(ctx, req)
			if err != nil {
				t.Fatalf("Get after destroy: %v", err)
			}
			if data != nil {
				t.Error("session must be gone after Destroy")
			}
		})
	}
}

func TestSessionDestroyNoCookie(t *testing.T) {
	store := NewMemoryStore(false)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/logout", nil)

	if err := store.Destroy(context.Background(), w, req); err != nil {
		t.Fatalf("Destroy without cookie: %v", err)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("no cookie should be written when there was no session")
	}
}

func TestSecureCookie(t *testing.T) {
	store := NewMemoryStore(true)
	w := httptest.NewRecorder()
	if _, err := store.Create(context.Background(), w, &Data{Username: "admin"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !sessionCookie(t, w).Secure {
		t.Error("expected Secure cookie")
	}
}

func TestMemorySessionExpires(t *testing.T) {
	store := NewMemoryStore(false)
	store.ttl = 50 * time.Millisecond
	ctx := context.Background()

	w := httptest.NewRecorder()
	if _, err := store.Create(ctx, w, &Data{Username: "admin"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(sessionCookie(t, w))

	time.Sleep(100 * time.Millisecond)

	data, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("expected session to have expired")
	}
}
