package fakeuserrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[int64]*users.User
	emailIds map[string]int64 // email to user id
	nextID   int64
	lock     sync.RWMutex

	// GetManyCalls records every bulk-fetch key set, for batching assertions
	GetManyCalls [][]int64
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[int64]*users.User),
		emailIds: make(map[string]int64),
	}
}

func (ur *FakeUserRepo) Create(_ context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.emailIds[user.Email]; ok {
		return errors.Wrapf(errors.ErrBadArgument, "email %q already taken", user.Email)
	}

	ur.nextID++
	user.ID = ur.nextID
	ur.users[user.ID] = user
	ur.emailIds[user.Email] = user.ID
	return nil
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[email]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return ur.users[id], nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id int64) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return user, nil
}

func (ur *FakeUserRepo) GetManyByID(_ context.Context, ids []int64) (map[int64]*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	ur.GetManyCalls = append(ur.GetManyCalls, append([]int64(nil), ids...))

	found := make(map[int64]*users.User, len(ids))
	for _, id := range ids {
		if user, ok := ur.users[id]; ok {
			found[id] = user
		}
	}
	return found, nil
}

var _ users.ProfileRepo = (*FakeProfileRepo)(nil)

type FakeProfileRepo struct {
	profiles map[int64]*users.Profile // keyed by user id
	nextID   int64
	lock     sync.RWMutex
}

func NewFakeProfileRepo() *FakeProfileRepo {
	return &FakeProfileRepo{
		profiles: make(map[int64]*users.Profile),
	}
}

func (pr *FakeProfileRepo) Create(_ context.Context, profile *users.Profile) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	pr.nextID++
	profile.ID = pr.nextID
	pr.profiles[profile.UserID] = profile
	return nil
}

func (pr *FakeProfileRepo) GetByUserID(_ context.Context, userID int64) (*users.Profile, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	profile, ok := pr.profiles[userID]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return profile, nil
}
