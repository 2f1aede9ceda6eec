package fakepostrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/posts"
)

var _ posts.PostRepo = (*FakePostRepo)(nil)

type FakePostRepo struct {
	posts  map[int64]*posts.Post
	nextID int64
	lock   sync.RWMutex
}

func NewFakePostRepo() *FakePostRepo {
	return &FakePostRepo{
		posts: make(map[int64]*posts.Post),
	}
}

func (pr *FakePostRepo) Create(_ context.Context, post *posts.Post) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	pr.nextID++
	post.ID = pr.nextID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	copied := *post
	pr.posts[post.ID] = &copied
	return nil
}

func (pr *FakePostRepo) GetByID(_ context.Context, id int64) (*posts.Post, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	post, ok := pr.posts[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (pr *FakePostRepo) Update(_ context.Context, id int64, fields posts.UpdateFields) (*posts.Post, error) {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	post, ok := pr.posts[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if fields.Title != nil {
		post.Title = *fields.Title
	}
	if fields.Content != nil {
		post.Content = *fields.Content
	}
	copied := *post
	return &copied, nil
}

func (pr *FakePostRepo) Delete(_ context.Context, id int64) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.posts[id]; !ok {
		return errors.ErrNotFound
	}
	delete(pr.posts, id)
	return nil
}

func (pr *FakePostRepo) SetPublished(_ context.Context, id int64, published bool) (*posts.Post, error) {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	post, ok := pr.posts[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	post.Published = published
	copied := *post
	return &copied, nil
}

func (pr *FakePostRepo) ListPublished(_ context.Context) ([]*posts.Post, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	listed := make([]*posts.Post, 0)
	for _, post := range pr.posts {
		if !post.Published {
			continue
		}
		copied := *post
		listed = append(listed, &copied)
	}
	sortNewestFirst(listed)
	return listed, nil
}

func (pr *FakePostRepo) ListByAuthor(_ context.Context, authorID int64, includeUnpublished bool) ([]*posts.Post, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	listed := make([]*posts.Post, 0)
	for _, post := range pr.posts {
		if post.AuthorID != authorID {
			continue
		}
		if !post.Published && !includeUnpublished {
			continue
		}
		copied := *post
		listed = append(listed, &copied)
	}
	sortNewestFirst(listed)
	return listed, nil
}

func sortNewestFirst(listed []*posts.Post) {
	sort.Slice(listed, func(i, j int) bool {
		if listed[i].CreatedAt.Equal(listed[j].CreatedAt) {
			return listed[i].ID > listed[j].ID
		}
		return listed[i].CreatedAt.After(listed[j].CreatedAt)
	})
}
