// Package session holds the storefront's single "current user" pointer.
package session

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/kv"
)

// Session tracks which user is signed in. It persists only the user id.
type Session struct {
	store kv.Store
}

func New(store kv.Store) *Session {
	return &Session{store: store}
}

// Begin marks userID as the current user.
func (s *Session) Begin(ctx context.Context, userID string) error {
	return kv.SetJSON(ctx, s.store, kv.KeyCurrentUser, userID)
}

// End clears the pointer. User records are untouched.
func (s *Session) End(ctx context.Context) error {
	return s.store.Delete(ctx, kv.KeyCurrentUser)
}

// UserID reports the current user id, if any.
func (s *Session) UserID(ctx context.Context) (string, bool, error) {
	var id string
	found, err := kv.GetJSON(ctx, s.store, kv.KeyCurrentUser, &id)
	if err != nil || !found || id == "" {
		return "", false, err
	}
	return id, true, nil
}
