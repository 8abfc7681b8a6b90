package portfolio

import (
	"context"
	"log/slog"

	"folioadmin/internal/models"
	"folioadmin/internal/store"
)

// MsgInvalidCredentials is shown for every failed sign-in.
const MsgInvalidCredentials = "Invalid username or password."

// Authenticator checks the admin credential.
type Authenticator struct {
	users *store.UserStore
}

// NewAuthenticator creates an Authenticator over the users table.
func NewAuthenticator(users *store.UserStore) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate returns the user and true when password matches the stored
// hash for username. Every failure, including a store error, yields false.
// The users table is only read.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*models.User, bool) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		slog.Error("authentication failed", "error", err)
		return nil, false
	}
	if user == nil || !a.users.CheckPassword(user, password) {
		return nil, false
	}
	return user, true
}
