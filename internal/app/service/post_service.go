package service

import (
	"context"
	"fmt"
	"social_feed/internal/common"
	"social_feed/internal/domain/model"
	"social_feed/internal/domain/repository"
	"strings"
)

const (
	DefaultPostLimit = 100
	MaxPostLimit     = 100
)

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

// ListPosts returns a page of the feed, newest first. A zero limit means
// DefaultPostLimit; larger limits are capped at MaxPostLimit.
func (s *PostService) ListPosts(ctx context.Context, offset, limit int) ([]model.Post, error) {
	if offset < 0 || limit < 0 {
		return nil, common.NewError(common.ErrValidation, "skip and limit must not be negative")
	}
	if limit == 0 {
		limit = DefaultPostLimit
	}
	if limit > MaxPostLimit {
		limit = MaxPostLimit
	}

	posts, err := s.postRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) CreatePost(ctx context.Context, content string, author *model.User) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, common.NewError(common.ErrValidation, "Post content must not be empty")
	}

	post := &model.Post{
		Content:  content,
		AuthorID: author.ID,
		Author:   author,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}
