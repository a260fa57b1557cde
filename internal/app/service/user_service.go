package service

import (
	"context"
	"fmt"
	"social_feed/internal/common"
	"social_feed/internal/domain/model"
	"social_feed/internal/domain/repository"
)

const maxBioLength = 500

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileRequest struct {
	Bio *string `json:"bio"`
}

// UpdateBio replaces the user's biography. A nil bio clears it.
func (s *UserService) UpdateBio(ctx context.Context, user *model.User, bio *string) (*model.User, error) {
	if bio != nil && len([]rune(*bio)) > maxBioLength {
		return nil, common.NewError(common.ErrValidation, fmt.Sprintf("Bio must be at most %d characters", maxBioLength))
	}
	updated, err := s.userRepo.UpdateBio(ctx, user.ID, bio)
	if err != nil {
		return nil, fmt.Errorf("failed to update bio: %w", err)
	}
	return updated, nil
}
