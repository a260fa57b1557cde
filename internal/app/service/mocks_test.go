package service

import (
	"context"
	"errors"
	"social_feed/internal/common"
	"social_feed/internal/domain/model"
	"sort"
	"time"
)

// =============================================================================
// Mock repositories
// =============================================================================

type mockUserRepository struct {
	createFunc         func(ctx context.Context, user *model.User) error
	findByEmailFunc    func(ctx context.Context, email string) (*model.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	findByIDFunc       func(ctx context.Context, id int64) (*model.User, error)
	updateBioFunc      func(ctx context.Context, id int64, bio *string) (*model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) UpdateBio(ctx context.Context, id int64, bio *string) (*model.User, error) {
	if m.updateBioFunc != nil {
		return m.updateBioFunc(ctx, id, bio)
	}
	return nil, errors.New("not implemented")
}

// newMemUserRepository wires a mockUserRepository to an in-memory table that
// enforces the same unique constraints as the users table.
func newMemUserRepository() (*mockUserRepository, *[]*model.User) {
	users := []*model.User{}
	find := func(match func(*model.User) bool) (*model.User, error) {
		for _, u := range users {
			if match(u) {
				cp := *u
				return &cp, nil
			}
		}
		return nil, common.ErrNotFound
	}

	repo := &mockUserRepository{
		createFunc: func(_ context.Context, user *model.User) error {
			for _, u := range users {
				if u.Email == user.Email {
					return common.NewError(common.ErrConflict, "Email already registered")
				}
				if u.Username == user.Username {
					return common.NewError(common.ErrConflict, "Username already taken")
				}
			}
			user.ID = int64(len(users) + 1)
			user.CreatedAt = time.Now()
			cp := *user
			users = append(users, &cp)
			return nil
		},
		findByEmailFunc: func(_ context.Context, email string) (*model.User, error) {
			return find(func(u *model.User) bool { return u.Email == email })
		},
		findByUsernameFunc: func(_ context.Context, username string) (*model.User, error) {
			return find(func(u *model.User) bool { return u.Username == username })
		},
		findByIDFunc: func(_ context.Context, id int64) (*model.User, error) {
			return find(func(u *model.User) bool { return u.ID == id })
		},
		updateBioFunc: func(_ context.Context, id int64, bio *string) (*model.User, error) {
			for _, u := range users {
				if u.ID == id {
					u.Bio = bio
					cp := *u
					return &cp, nil
				}
			}
			return nil, common.ErrNotFound
		},
	}
	return repo, &users
}

type mockPostRepository struct {
	createFunc func(ctx context.Context, post *model.Post) error
	listFunc   func(ctx context.Context, offset, limit int) ([]model.Post, error)
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, post)
	}
	return errors.New("not implemented")
}

func (m *mockPostRepository) List(ctx context.Context, offset, limit int) ([]model.Post, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, offset, limit)
	}
	return nil, errors.New("not implemented")
}

// newMemPostRepository keeps posts in memory and lists them the way the SQL
// query does: created_at descending, then id descending.
func newMemPostRepository() *mockPostRepository {
	posts := []model.Post{}
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &mockPostRepository{
		createFunc: func(_ context.Context, post *model.Post) error {
			post.ID = int64(len(posts) + 1)
			post.CreatedAt = clock.Add(time.Duration(len(posts)/2) * time.Minute) // pairs share a timestamp
			posts = append(posts, *post)
			return nil
		},
		listFunc: func(_ context.Context, offset, limit int) ([]model.Post, error) {
			sorted := append([]model.Post(nil), posts...)
			sort.Slice(sorted, func(i, j int) bool {
				if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
					return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
				}
				return sorted[i].ID > sorted[j].ID
			})
			if offset >= len(sorted) {
				return []model.Post{}, nil
			}
			end := offset + limit
			if end > len(sorted) {
				end = len(sorted)
			}
			return sorted[offset:end], nil
		},
	}
}
