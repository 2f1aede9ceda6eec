package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/internal/utils"
	"github.com/jrsteele09/go-blog-server/posts"
	"github.com/jrsteele09/go-blog-server/session"
)

// PostInput mirrors the PostInput schema type; both fields are optional
type PostInput struct {
	Title   *string
	Content *string
}

func (in PostInput) title() string {
	if in.Title == nil {
		return ""
	}
	return *in.Title
}

func (in PostInput) content() string {
	if in.Content == nil {
		return ""
	}
	return *in.Content
}

type PostCreateArgs struct {
	Post PostInput
}

// PostCreate creates an unpublished post owned by the caller
func (r *Resolver) PostCreate(ctx context.Context, args PostCreateArgs) (*PostPayloadResolver, error) {
	identity := session.IdentityFromContext(ctx)
	if identity == nil {
		return postFailure("Forbidden. Unauthenticated user"), nil
	}

	title, content := args.Post.title(), args.Post.content()
	if title == "" || content == "" {
		return postFailure("Title and Content should be provided"), nil
	}

	post := &posts.Post{
		Title:    title,
		Content:  content,
		AuthorID: identity.UserID,
	}
	if err := r.repos.Posts.Create(ctx, post); err != nil {
		return nil, errors.Wrapf(err, "Resolver.PostCreate")
	}

	return postSuccess(r, post), nil
}

type PostUpdateArgs struct {
	PostID graphql.ID
	Post   PostInput
}

// PostUpdate changes a post's title and/or content; only provided fields
// are applied
func (r *Resolver) PostUpdate(ctx context.Context, args PostUpdateArgs) (*PostPayloadResolver, error) {
	identity := session.IdentityFromContext(ctx)
	if identity == nil {
		return postFailure("Forbidden. Unauthenticated user"), nil
	}

	postID, err := utils.ParseID(string(args.PostID))
	if err != nil {
		return postFailure("Invalid post id"), nil
	}

	if failure, err := r.authorizeMutation(ctx, postID, identity); failure != nil || err != nil {
		return failure, err
	}

	if args.Post.title() == "" && args.Post.content() == "" {
		return postFailure("Title or Content should be provided"), nil
	}

	if _, err := r.repos.Posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return postFailure("There is any post with provided id"), nil
		}
		return nil, errors.Wrapf(err, "Resolver.PostUpdate")
	}

	fields := posts.UpdateFields{}
	if args.Post.title() != "" {
		fields.Title = args.Post.Title
	}
	if args.Post.content() != "" {
		fields.Content = args.Post.Content
	}

	updated, err := r.repos.Posts.Update(ctx, postID, fields)
	if err != nil {
		return nil, errors.Wrapf(err, "Resolver.PostUpdate")
	}

	return postSuccess(r, updated), nil
}

type PostIDArgs struct {
	PostID graphql.ID
}

// PostDelete removes a post and returns its last state
func (r *Resolver) PostDelete(ctx context.Context, args PostIDArgs) (*PostPayloadResolver, error) {
	identity := session.IdentityFromContext(ctx)
	if identity == nil {
		return postFailure("Forbidden. Unauthenticated user"), nil
	}

	postID, err := utils.ParseID(string(args.PostID))
	if err != nil {
		return postFailure("Invalid post id"), nil
	}

	if failure, err := r.authorizeMutation(ctx, postID, identity); failure != nil || err != nil {
		return failure, err
	}

	toDelete, err := r.repos.Posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return postFailure("There is not any post with provided id"), nil
		}
		return nil, errors.Wrapf(err, "Resolver.PostDelete")
	}

	if err := r.repos.Posts.Delete(ctx, postID); err != nil {
		return nil, errors.Wrapf(err, "Resolver.PostDelete")
	}

	return postSuccess(r, toDelete), nil
}

// PostPublish makes a post visible in the public feed. Publishing an
// already-published post is refused without a write.
func (r *Resolver) PostPublish(ctx context.Context, args PostIDArgs) (*PostPayloadResolver, error) {
	return r.setPublished(ctx, args, true,
		"There is any post with provided id or it is already published")
}

// PostUnpublish removes a post from the public feed. Unpublishing a post
// that is not published is refused without a write.
func (r *Resolver) PostUnpublish(ctx context.Context, args PostIDArgs) (*PostPayloadResolver, error) {
	return r.setPublished(ctx, args, false,
		"There is any post with provided id or it is not published yet")
}

func (r *Resolver) setPublished(ctx context.Context, args PostIDArgs, published bool, refusedMessage string) (*PostPayloadResolver, error) {
	identity := session.IdentityFromContext(ctx)
	if identity == nil {
		return postFailure("Forbidden. Unauthenticated user"), nil
	}

	postID, err := utils.ParseID(string(args.PostID))
	if err != nil {
		return postFailure("Invalid post id"), nil
	}

	if failure, err := r.authorizeMutation(ctx, postID, identity); failure != nil || err != nil {
		return failure, err
	}

	existing, err := r.repos.Posts.GetByID(ctx, postID)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return nil, errors.Wrapf(err, "Resolver.setPublished")
	}
	if existing == nil || existing.Published == published {
		return postFailure(refusedMessage), nil
	}

	updated, err := r.repos.Posts.SetPublished(ctx, postID, published)
	if err != nil {
		return nil, errors.Wrapf(err, "Resolver.setPublished")
	}

	return postSuccess(r, updated), nil
}

// authorizeMutation runs the ownership guard and translates its expected
// failures into the userErrors envelope. Storage failures pass through as
// hard errors. A (nil, nil) return means the mutation may proceed.
func (r *Resolver) authorizeMutation(ctx context.Context, postID int64, identity *session.Identity) (*PostPayloadResolver, error) {
	err := r.guard.CanMutatePost(ctx, postID, identity)
	if err == nil {
		return nil, nil
	}

	switch {
	case errors.Is(err, errors.ErrUnauthenticated):
		return postFailure("Forbidden. Unauthenticated user"), nil
	case errors.Is(err, errors.ErrNotFound):
		return postFailure("Post does not exist"), nil
	case errors.Is(err, errors.ErrNotOwner):
		return postFailure("Post not owned by user"), nil
	default:
		return nil, err
	}
}
