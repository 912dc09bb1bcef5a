package api

import "context"

// userIDContextKey is the context key for the caller identity.
type userIDContextKey struct{}

// AnonymousUser is the identity used when no bearer token names a subject.
const AnonymousUser = "anonymous"

// WithUserID returns a new context with the caller identity attached.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, id)
}

// UserIDFromContext extracts the caller identity from the context.
// Returns AnonymousUser if not present or empty.
func UserIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(userIDContextKey{}).(string)
	if !ok || id == "" {
		return AnonymousUser
	}
	return id
}
