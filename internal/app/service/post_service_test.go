package service

import (
	"context"
	"errors"
	"fmt"
	"social_feed/internal/common"
	"social_feed/internal/domain/model"
	"testing"
)

func TestCreatePost(t *testing.T) {
	svc := NewPostService(newMemPostRepository())
	author := &model.User{ID: 1, Email: "a@x.com", Username: "a"}

	post, err := svc.CreatePost(context.Background(), "hello world", author)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.ID == 0 || post.AuthorID != 1 || post.Author != author {
		t.Errorf("post = %+v", post)
	}
	if post.Likes != 0 || post.Comments != 0 {
		t.Errorf("counters = %d/%d, want 0/0", post.Likes, post.Comments)
	}
}

func TestCreatePostEmpty(t *testing.T) {
	svc := NewPostService(newMemPostRepository())

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.CreatePost(context.Background(), content, &model.User{ID: 1})
		if !errors.Is(err, common.ErrValidation) {
			t.Errorf("CreatePost(%q) error = %v, want ErrValidation", content, err)
		}
	}
}

func TestListPostsNewestFirst(t *testing.T) {
	svc := NewPostService(newMemPostRepository())
	ctx := context.Background()
	author := &model.User{ID: 1}
	for i := 0; i < 7; i++ {
		if _, err := svc.CreatePost(ctx, fmt.Sprintf("post %d", i), author); err != nil {
			t.Fatalf("CreatePost: %v", err)
		}
	}

	posts, err := svc.ListPosts(ctx, 0, 0)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 7 {
		t.Fatalf("len = %d, want 7", len(posts))
	}
	for i := 1; i < len(posts); i++ {
		if posts[i].CreatedAt.After(posts[i-1].CreatedAt) {
			t.Errorf("post %d (%v) is newer than post %d (%v)", i, posts[i].CreatedAt, i-1, posts[i-1].CreatedAt)
		}
	}
}

func TestListPostsPagination(t *testing.T) {
	svc := NewPostService(newMemPostRepository())
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		svc.CreatePost(ctx, fmt.Sprintf("post %d", i), &model.User{ID: 1})
	}

	page, err := svc.ListPosts(ctx, 2, 2)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("len = %d, want 2", len(page))
	}

	past, err := svc.ListPosts(ctx, 10, 2)
	if err != nil || len(past) != 0 {
		t.Errorf("ListPosts past end = %v, %v", past, err)
	}
}

func TestListPostsLimits(t *testing.T) {
	var gotLimit int
	repo := &mockPostRepository{
		listFunc: func(_ context.Context, _, limit int) ([]model.Post, error) {
			gotLimit = limit
			return []model.Post{}, nil
		},
	}
	svc := NewPostService(repo)
	ctx := context.Background()

	svc.ListPosts(ctx, 0, 0)
	if gotLimit != DefaultPostLimit {
		t.Errorf("limit 0 -> %d, want %d", gotLimit, DefaultPostLimit)
	}
	svc.ListPosts(ctx, 0, 5000)
	if gotLimit != MaxPostLimit {
		t.Errorf("limit 5000 -> %d, want %d", gotLimit, MaxPostLimit)
	}

	if _, err := svc.ListPosts(ctx, -1, 10); !errors.Is(err, common.ErrValidation) {
		t.Errorf("negative skip error = %v", err)
	}
	if _, err := svc.ListPosts(ctx, 0, -1); !errors.Is(err, common.ErrValidation) {
		t.Errorf("negative limit error = %v", err)
	}
}

func TestListPostsRepoError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewPostService(&mockPostRepository{
		listFunc: func(context.Context, int, int) ([]model.Post, error) { return nil, boom },
	})

	if _, err := svc.ListPosts(context.Background(), 0, 10); !errors.Is(err, boom) {
		t.Errorf("ListPosts error = %v, want %v", err, boom)
	}
}
