// Package bunstore implements the storage contracts on SQLite via the bun ORM.
package bunstore

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/posts"
	"github.com/jrsteele09/go-blog-server/storage"
	"github.com/jrsteele09/go-blog-server/users"
)

// Open connects to the SQLite database at dsn and returns the repo aggregate
func Open(dsn string) (storage.Repos, *bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return storage.Repos{}, nil, errors.Wrapf(err, "bunstore.Open %q", dsn)
	}
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	return New(db), db, nil
}

// New builds the repo aggregate on an existing bun DB
func New(db *bun.DB) storage.Repos {
	return storage.Repos{
		Users:    &UserRepo{db: db},
		Profiles: &ProfileRepo{db: db},
		Posts:    &PostRepo{db: db},
	}
}

// CreateTables creates the schema if it does not exist yet
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*users.User)(nil),
		(*users.Profile)(nil),
		(*posts.Post)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return errors.Wrapf(err, "bunstore.CreateTables")
		}
	}
	return nil
}

var _ users.UserRepo = (*UserRepo)(nil)

type UserRepo struct {
	db *bun.DB
}

func (ur *UserRepo) Create(ctx context.Context, user *users.User) error {
	if _, err := ur.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return errors.Wrapf(err, "UserRepo.Create")
	}
	return nil
}

func (ur *UserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	user := new(users.User)
	err := ur.db.NewSelect().Model(user).Where("u.email = ?", email).Scan(ctx)
	if err != nil {
		return nil, mapNotFound(err, "UserRepo.GetByEmail")
	}
	return user, nil
}

func (ur *UserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	user := new(users.User)
	err := ur.db.NewSelect().Model(user).Where("u.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, mapNotFound(err, "UserRepo.GetByID")
	}
	return user, nil
}

// GetManyByID is the bulk fetch behind the per-request user loader. IDs
// missing from the result are simply absent from the map, never an error.
func (ur *UserRepo) GetManyByID(ctx context.Context, ids []int64) (map[int64]*users.User, error) {
	if len(ids) == 0 {
		return map[int64]*users.User{}, nil
	}

	var fetched []*users.User
	err := ur.db.NewSelect().Model(&fetched).Where("u.id IN (?)", bun.In(ids)).Scan(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "UserRepo.GetManyByID")
	}

	found := make(map[int64]*users.User, len(fetched))
	for _, user := range fetched {
		found[user.ID] = user
	}
	return found, nil
}

var _ users.ProfileRepo = (*ProfileRepo)(nil)

type ProfileRepo struct {
	db *bun.DB
}

func (pr *ProfileRepo) Create(ctx context.Context, profile *users.Profile) error {
	if _, err := pr.db.NewInsert().Model(profile).Exec(ctx); err != nil {
		return errors.Wrapf(err, "ProfileRepo.Create")
	}
	return nil
}

func (pr *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (*users.Profile, error) {
	profile := new(users.Profile)
	err := pr.db.NewSelect().Model(profile).Where("pr.user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, mapNotFound(err, "ProfileRepo.GetByUserID")
	}
	return profile, nil
}

var _ posts.PostRepo = (*PostRepo)(nil)

type PostRepo struct {
	db *bun.DB
}

func (pr *PostRepo) Create(ctx context.Context, post *posts.Post) error {
	if _, err := pr.db.NewInsert().Model(post).Exec(ctx); err != nil {
		return errors.Wrapf(err, "PostRepo.Create")
	}
	return nil
}

func (pr *PostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	post := new(posts.Post)
	err := pr.db.NewSelect().Model(post).Where("p.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, mapNotFound(err, "PostRepo.GetByID")
	}
	return post, nil
}

func (pr *PostRepo) Update(ctx context.Context, id int64, fields posts.UpdateFields) (*posts.Post, error) {
	query := pr.db.NewUpdate().Model((*posts.Post)(nil)).Where("p.id = ?", id)
	if fields.Title != nil {
		query = query.Set("title = ?", *fields.Title)
	}
	if fields.Content != nil {
		query = query.Set("content = ?", *fields.Content)
	}

	result, err := query.Exec(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "PostRepo.Update")
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, errors.ErrNotFound
	}
	return pr.GetByID(ctx, id)
}

func (pr *PostRepo) Delete(ctx context.Context, id int64) error {
	result, err := pr.db.NewDelete().Model((*posts.Post)(nil)).Where("p.id = ?", id).Exec(ctx)
	if err != nil {
		return errors.Wrapf(err, "PostRepo.Delete")
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (pr *PostRepo) SetPublished(ctx context.Context, id int64, published bool) (*posts.Post, error) {
	result, err := pr.db.NewUpdate().
		Model((*posts.Post)(nil)).
		Set("published = ?", published).
		Where("p.id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "PostRepo.SetPublished")
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, errors.ErrNotFound
	}
	return pr.GetByID(ctx, id)
}

func (pr *PostRepo) ListPublished(ctx context.Context) ([]*posts.Post, error) {
	listed := make([]*posts.Post, 0)
	err := pr.db.NewSelect().
		Model(&listed).
		Where("p.published = ?", true).
		Order("p.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "PostRepo.ListPublished")
	}
	return listed, nil
}

func (pr *PostRepo) ListByAuthor(ctx context.Context, authorID int64, includeUnpublished bool) ([]*posts.Post, error) {
	listed := make([]*posts.Post, 0)
	query := pr.db.NewSelect().
		Model(&listed).
		Where("p.author_id = ?", authorID).
		Order("p.created_at DESC")
	if !includeUnpublished {
		query = query.Where("p.published = ?", true)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, errors.Wrapf(err, "PostRepo.ListByAuthor")
	}
	return listed, nil
}

func mapNotFound(err error, op string) error {
	if err == sql.ErrNoRows {
		return errors.Wrapf(errors.ErrNotFound, "%s", op)
	}
	return errors.Wrapf(err, "%s", op)
}
