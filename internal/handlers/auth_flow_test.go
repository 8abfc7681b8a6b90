package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"folioadmin/internal/portfolio"
	"folioadmin/internal/session"
	"folioadmin/internal/store"
)

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.Users.Create(context.Background(), "admin", "s3cret"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	rr := httptest.NewRecorder()
	env.Auth.Login(rr, formRequest(http.MethodPost, "/api/login", url.Values{
		"username": {"admin"},
		"password": {"s3cret"},
	}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}

	var me meResponse
	decode(t, rr, &me)
	if me.Username != "admin" || me.UserID == 0 {
		t.Errorf("me: got %+v", me)
	}

	cookie := sessionCookie(rr)
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(cookie)
	data, err := env.Sessions.Get(context.Background(), req)
	if err != nil || data == nil {
		t.Fatalf("session not stored: %v", err)
	}
	if data.Username != "admin" {
		t.Errorf("session username: got %q", data.Username)
	}
}

func TestLoginRejected(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.Users.Create(context.Background(), "admin", "s3cret"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "ghost", "s3cret"},
		{"empty username", "", "s3cret"},
		{"empty password", "admin", ""},
		{"oversized username", strings.Repeat("a", maxUsernameLen+1), "s3cret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			env.Auth.Login(rr, formRequest(http.MethodPost, "/api/login", url.Values{
				"username": {tt.username},
				"password": {tt.password},
			}))

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", rr.Code)
			}
			if resp := decode(t, rr, nil); resp.Error != portfolio.MsgInvalidCredentials {
				t.Errorf("error: got %q", resp.Error)
			}
			if sessionCookie(rr) != nil {
				t.Error("no session cookie may be issued on failure")
			}
		})
	}
}

func TestLoginKeepsLegacyHash(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.DB.Exec("INSERT INTO users (username, password_hash) VALUES ($1, $2)",
		"legacy", store.HashSHA256("old-password")); err != nil {
		t.Fatalf("insert legacy user: %v", err)
	}

	rr := httptest.NewRecorder()
	env.Auth.Login(rr, formRequest(http.MethodPost, "/api/login", url.Values{
		"username": {"legacy"},
		"password": {"old-password"},
	}))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}

	user, err := env.Users.FindByUsername(ctx, "legacy")
	if err != nil || user == nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if user.PasswordHash != store.HashSHA256("old-password") {
		t.Errorf("password_hash rewritten by login: %q", user.PasswordHash)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	w := httptest.NewRecorder()
	if _, err := env.Sessions.Create(ctx, w, &session.Data{UserID: 1, Username: "admin"}); err != nil {
		t.Fatalf("create session: %v", err)
	}
	cookie := sessionCookie(w)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	env.Auth.Logout(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", rr.Code)
	}
	if c := sessionCookie(rr); c == nil || c.MaxAge != -1 {
		t.Error("expected the session cookie to be cleared")
	}

	data, err := env.Sessions.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("session should be destroyed")
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)

	t.Run("with session", func(t *testing.T) {
		req := withSession(httptest.NewRequest(http.MethodGet, "/api/me", nil),
			&session.Data{UserID: 3, Username: "admin"})
		rr := httptest.NewRecorder()
		env.Auth.Me(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		var me meResponse
		decode(t, rr, &me)
		if me.UserID != 3 || me.Username != "admin" {
			t.Errorf("me: got %+v", me)
		}
	})

	t.Run("without session", func(t *testing.T) {
		rr := httptest.NewRecorder()
		env.Auth.Me(rr, httptest.NewRequest(http.MethodGet, "/api/me", nil))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rr.Code)
		}
	})
}
