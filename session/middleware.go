package session

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-blog-server/loader"
	"github.com/jrsteele09/go-blog-server/storage"
	"github.com/jrsteele09/go-blog-server/token"
)

// ContextBuilder turns raw transport headers into the per-request context:
// identity from the Authorization header plus a new loader bundle.
type ContextBuilder struct {
	tokens *token.Service
	repos  storage.Repos
}

func NewContextBuilder(tokens *token.Service, repos storage.Repos) *ContextBuilder {
	return &ContextBuilder{
		tokens: tokens,
		repos:  repos,
	}
}

// Middleware wraps a handler so every request carries the session context
// before resolver dispatch begins. A missing, malformed or expired token
// degrades the request to anonymous rather than rejecting it: some fields
// are public, and it is the resolvers that decide what needs authentication.
func (cb *ContextBuilder) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if identity := cb.identityFromHeader(r.Header.Get("Authorization")); identity != nil {
			ctx = WithIdentity(ctx, identity)
		}
		ctx = loader.WithLoaders(ctx, loader.NewLoaders(cb.repos))

		next(w, r.WithContext(ctx))
	}
}

// identityFromHeader verifies a "Bearer <token>" header. Every failure path
// returns nil (anonymous); verification errors are logged but never
// propagated.
func (cb *ContextBuilder) identityFromHeader(authHeader string) *Identity {
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}

	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return nil
	}

	subjectID, err := cb.tokens.Verify(rawToken)
	if err != nil {
		log.Debug().Err(err).Msg("session: token rejected, treating request as anonymous")
		return nil
	}

	return &Identity{UserID: subjectID}
}
