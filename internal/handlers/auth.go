package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"folioadmin/internal/middleware"
	"folioadmin/internal/portfolio"
	"folioadmin/internal/session"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions *session.Store
	auth     *portfolio.Authenticator
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, auth *portfolio.Authenticator) *Auth {
	return &Auth{sessions: sessions, auth: auth}
}

// meResponse describes the signed-in account.
type meResponse struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	CSRFToken string `json:"csrf_token,omitempty"`
}

// Login checks the submitted credentials and starts a session.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" || len(username) > maxUsernameLen {
		writeError(w, http.StatusUnauthorized, portfolio.MsgInvalidCredentials)
		return
	}

	user, ok := a.auth.Authenticate(r.Context(), username, password)
	if !ok {
		writeError(w, http.StatusUnauthorized, portfolio.MsgInvalidCredentials)
		return
	}

	data := &session.Data{UserID: user.ID, Username: user.Username}
	if _, err := a.sessions.Create(r.Context(), w, data); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	slog.Info("admin signed in", "username", user.Username)
	respond(w, nil, http.StatusOK, meResponse{
		UserID:    user.ID,
		Username:  user.Username,
		CSRFToken: middleware.CSRFTokenFromCtx(r.Context()),
	})
}

// Logout destroys the session. The front end returns to its login view.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the account bound to the current session.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required.")
		return
	}
	respond(w, nil, http.StatusOK, meResponse{
		UserID:    sess.UserID,
		Username:  sess.Username,
		CSRFToken: middleware.CSRFTokenFromCtx(r.Context()),
	})
}
