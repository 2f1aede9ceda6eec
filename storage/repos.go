// Package storage aggregates the persistence contracts the resolvers and
// per-request loaders depend on.
package storage

import (
	"github.com/jrsteele09/go-blog-server/posts"
	"github.com/jrsteele09/go-blog-server/users"
)

type Repos struct {
	Users    users.UserRepo    // Repository for user accounts
	Profiles users.ProfileRepo // Repository for user profiles
	Posts    posts.PostRepo    // Repository for posts
}
