package service

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by every use case that needs a signed-in
// user when the context carries none.
var ErrNotAuthenticated = errors.New("not signed in")

type userKey struct{}

// WithUserID returns a context carrying the signed-in user's id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserIDFromContext returns the signed-in user's id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userKey{}).(string)
	return id, ok && id != ""
}

func requireUser(ctx context.Context) (string, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", ErrNotAuthenticated
	}
	return id, nil
}

// notOwned hides rows belonging to other users behind the not-found error
// of the underlying store.
func notOwned(kind, id string, notFound error) error {
	return fmt.Errorf("%s %s: %w", kind, id, notFound)
}
