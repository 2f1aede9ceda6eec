package posts

import "context"

// UpdateFields carries the optional fields of a post update. Nil fields are
// left untouched.
type UpdateFields struct {
	Title   *string
	Content *string
}

type PostRepo interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	Update(ctx context.Context, id int64, fields UpdateFields) (*Post, error)
	Delete(ctx context.Context, id int64) error
	SetPublished(ctx context.Context, id int64, published bool) (*Post, error)

	// ListPublished returns published posts, newest first
	ListPublished(ctx context.Context) ([]*Post, error)

	// ListByAuthor returns an author's posts, newest first. Unpublished
	// posts are included only when includeUnpublished is set (the author
	// viewing their own profile).
	ListByAuthor(ctx context.Context, authorID int64, includeUnpublished bool) ([]*Post, error)
}
