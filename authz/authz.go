// Package authz holds the ownership checks gating every post mutation.
package authz

import (
	"context"

	"github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/posts"
	"github.com/jrsteele09/go-blog-server/session"
)

// Guard decides whether an identity may mutate a post. It is the sole
// authorization gate: mutating resolvers must call it before touching
// storage, even when they re-fetch the post themselves afterwards.
type Guard struct {
	posts posts.PostRepo
}

func NewGuard(postRepo posts.PostRepo) *Guard {
	return &Guard{posts: postRepo}
}

// CanMutatePost authorizes a mutation of the given post. The sequence is
// fixed: unauthenticated callers are rejected first, then the post's
// existence is checked with the guard's own fetch, then ownership.
// A nil return means authorized. The existence read and the caller's
// later write are not transactional; a concurrent delete in between
// surfaces as a storage error from the write.
func (g *Guard) CanMutatePost(ctx context.Context, postID int64, identity *session.Identity) error {
	if identity == nil {
		return errors.Wrapf(errors.ErrUnauthenticated, "authz.CanMutatePost")
	}

	post, err := g.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.Wrapf(errors.ErrNotFound, "authz.CanMutatePost post %d", postID)
		}
		return errors.Wrapf(err, "authz.CanMutatePost post %d", postID)
	}

	if post.AuthorID != identity.UserID {
		return errors.Wrapf(errors.ErrNotOwner, "authz.CanMutatePost post %d user %d", postID, identity.UserID)
	}

	return nil
}
