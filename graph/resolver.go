// Package graph wires the GraphQL schema onto the domain services. The
// resolvers are thin: validation, the ownership guard and the token service
// do the real work, and relation fields go through the per-request loaders.
package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/jrsteele09/go-blog-server/authz"
	"github.com/jrsteele09/go-blog-server/internal/config"
	"github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/internal/utils"
	"github.com/jrsteele09/go-blog-server/session"
	"github.com/jrsteele09/go-blog-server/storage"
	"github.com/jrsteele09/go-blog-server/token"
)

// Resolver is the root resolver for queries and mutations. It holds the
// request-independent collaborators; per-request state (identity, loaders)
// travels on the context.
type Resolver struct {
	repos    storage.Repos
	tokens   *token.Service
	guard    *authz.Guard
	security config.SecurityConfig
}

// NewResolver creates the root resolver with the given dependencies
func NewResolver(repos storage.Repos, tokens *token.Service, security config.SecurityConfig) *Resolver {
	return &Resolver{
		repos:    repos,
		tokens:   tokens,
		guard:    authz.NewGuard(repos.Posts),
		security: security,
	}
}

// Me resolves the authenticated user, or null for anonymous requests and
// for tokens whose subject no longer exists
func (r *Resolver) Me(ctx context.Context) (*UserResolver, error) {
	identity := session.IdentityFromContext(ctx)
	if identity == nil {
		return nil, nil
	}

	user, err := r.repos.Users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &UserResolver{root: r, user: user}, nil
}

// Posts resolves the public feed: published posts, newest first
func (r *Resolver) Posts(ctx context.Context) ([]*PostResolver, error) {
	listed, err := r.repos.Posts.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*PostResolver, 0, len(listed))
	for _, post := range listed {
		resolvers = append(resolvers, &PostResolver{root: r, post: post})
	}
	return resolvers, nil
}

type ProfileArgs struct {
	UserID graphql.ID
}

// Profile resolves a user's profile by user id, or null if none exists
func (r *Resolver) Profile(ctx context.Context, args ProfileArgs) (*ProfileResolver, error) {
	userID, err := utils.ParseID(string(args.UserID))
	if err != nil {
		return nil, err
	}

	profile, err := r.repos.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ProfileResolver{root: r, profile: profile}, nil
}
