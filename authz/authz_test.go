package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-blog-server/authz"
	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/posts"
	"github.com/jrsteele09/go-blog-server/posts/repofake"
	"github.com/jrsteele09/go-blog-server/session"
)

func TestGuard_CanMutatePost(t *testing.T) {
	ctx := context.Background()
	postRepo := fakepostrepo.NewFakePostRepo()
	guard := authz.NewGuard(postRepo)

	owned := &posts.Post{Title: "Mine", Content: "body", AuthorID: 1}
	require.NoError(t, postRepo.Create(ctx, owned))

	t.Run("owner is authorized", func(t *testing.T) {
		err := guard.CanMutatePost(ctx, owned.ID, &session.Identity{UserID: 1})
		require.NoError(t, err)
	})

	t.Run("unauthenticated is forbidden", func(t *testing.T) {
		err := guard.CanMutatePost(ctx, owned.ID, nil)
		require.Error(t, err)
		require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		err := guard.CanMutatePost(ctx, owned.ID, &session.Identity{UserID: 2})
		require.Error(t, err)
		require.ErrorIs(t, err, apperrors.ErrNotOwner)
	})

	t.Run("missing post is not found regardless of identity", func(t *testing.T) {
		err := guard.CanMutatePost(ctx, 9999, &session.Identity{UserID: 1})
		require.ErrorIs(t, err, apperrors.ErrNotFound)

		err = guard.CanMutatePost(ctx, 9999, &session.Identity{UserID: 2})
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("unauthenticated wins over not found", func(t *testing.T) {
		err := guard.CanMutatePost(ctx, 9999, nil)
		require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}
