// Package session builds the per-request authentication context. It runs
// once per inbound request, before any resolver, and attaches the verified
// identity (if any) and a fresh loader bundle to the request context.
package session

import "context"

// Identity is the verified subject of a request. It exists only for the
// duration of one request and is never persisted. A nil Identity on the
// context means the request is unauthenticated.
type Identity struct {
	UserID int64
}

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const identityContextKey ContextKey = "session_identity"

// WithIdentity attaches a verified identity to the request context
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext returns the request's verified identity, or nil for
// anonymous requests
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityContextKey).(*Identity)
	return identity
}
