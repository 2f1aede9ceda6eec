package loader

import (
	"context"

	"github.com/jrsteele09/go-blog-server/storage"
	"github.com/jrsteele09/go-blog-server/users"
)

// Loaders bundles every request-scoped loader. A fresh bundle is built for
// each incoming request and discarded with it, so nothing here is ever
// cached across requests.
type Loaders struct {
	Users *Loader[int64, *users.User]
}

// NewLoaders builds the loader bundle for one request
func NewLoaders(repos storage.Repos) *Loaders {
	return &Loaders{
		Users: New(repos.Users.GetManyByID),
	}
}

type contextKey struct{}

// WithLoaders attaches a request's loader bundle to its context
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, contextKey{}, loaders)
}

// FromContext returns the request's loader bundle, or nil outside a request
func FromContext(ctx context.Context) *Loaders {
	loaders, _ := ctx.Value(contextKey{}).(*Loaders)
	return loaders
}
