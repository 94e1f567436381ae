package auth

import (
	"context"

	"github.com/google/uuid"
)

type callerKey struct{}

// WithCaller attaches the authenticated user's id to the context. The
// transfer engine trusts this value; authentication happened upstream.
func WithCaller(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, callerKey{}, id)
}

func CallerFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(callerKey{}).(uuid.UUID)
	return id, ok
}
