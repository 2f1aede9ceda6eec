package graph

import (
	"context"
	"strconv"
	"time"

	"github.com/graph-gophers/graphql-go"

	"github.com/jrsteele09/go-blog-server/loader"
	"github.com/jrsteele09/go-blog-server/posts"
	"github.com/jrsteele09/go-blog-server/session"
	"github.com/jrsteele09/go-blog-server/users"
)

// UserErrorResolver resolves one entry of the userErrors envelope
type UserErrorResolver struct {
	message string
}

func (r *UserErrorResolver) Message() string {
	return r.message
}

func userErrorsOf(messages ...string) []*UserErrorResolver {
	resolvers := make([]*UserErrorResolver, 0, len(messages))
	for _, message := range messages {
		resolvers = append(resolvers, &UserErrorResolver{message: message})
	}
	return resolvers
}

// AuthPayloadResolver resolves the signup/signin response envelope. Exactly
// one of userErrors and token is populated.
type AuthPayloadResolver struct {
	userErrors []*UserErrorResolver
	token      *string
}

func authFailure(message string) *AuthPayloadResolver {
	return &AuthPayloadResolver{userErrors: userErrorsOf(message)}
}

func authSuccess(signedToken string) *AuthPayloadResolver {
	return &AuthPayloadResolver{userErrors: userErrorsOf(), token: &signedToken}
}

func (r *AuthPayloadResolver) UserErrors() []*UserErrorResolver {
	return r.userErrors
}

func (r *AuthPayloadResolver) Token() *string {
	return r.token
}

// PostPayloadResolver resolves the post-mutation response envelope. Exactly
// one of userErrors and post is populated.
type PostPayloadResolver struct {
	root       *Resolver
	userErrors []*UserErrorResolver
	post       *posts.Post
}

func postFailure(message string) *PostPayloadResolver {
	return &PostPayloadResolver{userErrors: userErrorsOf(message)}
}

func postSuccess(root *Resolver, post *posts.Post) *PostPayloadResolver {
	return &PostPayloadResolver{root: root, userErrors: userErrorsOf(), post: post}
}

func (r *PostPayloadResolver) UserErrors() []*UserErrorResolver {
	return r.userErrors
}

func (r *PostPayloadResolver) Post() *PostResolver {
	if r.post == nil {
		return nil
	}
	return &PostResolver{root: r.root, post: r.post}
}

// UserResolver resolves the User type
type UserResolver struct {
	root *Resolver
	user *users.User
}

func (r *UserResolver) ID() graphql.ID {
	return formatID(r.user.ID)
}

func (r *UserResolver) Email() string {
	return r.user.Email
}

func (r *UserResolver) Name() string {
	return r.user.Name
}

// Posts lists the user's posts. Unpublished posts are visible only to the
// user themselves.
func (r *UserResolver) Posts(ctx context.Context) ([]*PostResolver, error) {
	identity := session.IdentityFromContext(ctx)
	isOwnProfile := identity != nil && identity.UserID == r.user.ID

	listed, err := r.root.repos.Posts.ListByAuthor(ctx, r.user.ID, isOwnProfile)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*PostResolver, 0, len(listed))
	for _, post := range listed {
		resolvers = append(resolvers, &PostResolver{root: r.root, post: post})
	}
	return resolvers, nil
}

func (r *UserResolver) Profile(ctx context.Context) (*ProfileResolver, error) {
	profile, err := r.root.repos.Profiles.GetByUserID(ctx, r.user.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileResolver{root: r.root, profile: profile}, nil
}

// PostResolver resolves the Post type
type PostResolver struct {
	root *Resolver
	post *posts.Post
}

func (r *PostResolver) ID() graphql.ID {
	return formatID(r.post.ID)
}

func (r *PostResolver) Title() string {
	return r.post.Title
}

func (r *PostResolver) Content() string {
	return r.post.Content
}

func (r *PostResolver) Published() bool {
	return r.post.Published
}

func (r *PostResolver) CreatedAt() string {
	return r.post.CreatedAt.Format(time.RFC3339)
}

// User resolves the post's author through the per-request loader, so
// resolving a whole feed costs one bulk fetch instead of one query per post
func (r *PostResolver) User(ctx context.Context) (*UserResolver, error) {
	author, err := r.root.loadUser(ctx, r.post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &UserResolver{root: r.root, user: author}, nil
}

// ProfileResolver resolves the Profile type
type ProfileResolver struct {
	root    *Resolver
	profile *users.Profile
}

func (r *ProfileResolver) ID() graphql.ID {
	return formatID(r.profile.ID)
}

func (r *ProfileResolver) Bio() string {
	return r.profile.Bio
}

func (r *ProfileResolver) User(ctx context.Context) (*UserResolver, error) {
	user, err := r.root.loadUser(ctx, r.profile.UserID)
	if err != nil {
		return nil, err
	}
	return &UserResolver{root: r.root, user: user}, nil
}

// loadUser fetches a user through the request's loader bundle, falling back
// to a direct lookup when called outside a request context
func (r *Resolver) loadUser(ctx context.Context, id int64) (*users.User, error) {
	if loaders := loader.FromContext(ctx); loaders != nil {
		return loaders.Users.Load(ctx, id)
	}
	return r.repos.Users.GetByID(ctx, id)
}

func formatID(id int64) graphql.ID {
	return graphql.ID(strconv.FormatInt(id, 10))
}
