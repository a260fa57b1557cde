package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"social_feed/internal/common"
	"social_feed/internal/common/security"
	"social_feed/internal/domain/model"
	"social_feed/internal/domain/repository"
	"strings"
)

// Bootstrap account created on first start for demos.
const (
	DefaultUserEmail    = "admin@example.com"
	DefaultUserUsername = "admin"
	DefaultUserPassword = "admin123"
	DefaultUserBio      = "Default admin account"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

var (
	errEmailTaken         = common.NewError(common.ErrConflict, "Email already registered")
	errUsernameTaken      = common.NewError(common.ErrConflict, "Username already taken")
	errInvalidCredentials = common.NewError(common.ErrUnauthorized, "Incorrect email or password")
	errBadToken           = common.NewError(common.ErrUnauthorized, "Could not validate credentials")
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Username) == "" {
		return nil, common.NewError(common.ErrValidation, "Username is required")
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, errUsernameTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	return s.createUser(ctx, req.Email, req.Username, req.Password, nil)
}

// Authenticate returns the user owning email when password matches, and
// nil otherwise. Only storage failures are returned as errors.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !security.CheckPasswordHash(password, user.HashedPassword) {
		return nil, nil
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.NewError(common.ErrValidation, "Email and password are required")
	}

	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errInvalidCredentials
	}

	token, err := security.GenerateToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResponse{Token: token, User: user}, nil
}

// CurrentUser resolves the subject of a verified token to its user.
func (s *AuthService) CurrentUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, errBadToken
		}
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	return user, nil
}

// SeedDefaultUser makes sure the bootstrap admin account exists. Calling it
// again, or from several processes at once, leaves a single account.
func (s *AuthService) SeedDefaultUser(ctx context.Context) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, DefaultUserEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up default user: %w", err)
	}

	bio := DefaultUserBio
	user, err = s.createUser(ctx, DefaultUserEmail, DefaultUserUsername, DefaultUserPassword, &bio)
	if errors.Is(err, common.ErrConflict) {
		// Lost a race with another instance.
		return s.userRepo.FindByEmail(ctx, DefaultUserEmail)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("INFO: Default user %s created (id %d).", user.Email, user.ID)
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, email, username, password string, bio *string) (*model.User, error) {
	hashedPassword, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:          email,
		Username:       username,
		HashedPassword: hashedPassword,
		Bio:            bio,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict when a unique constraint fires
		if errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return common.NewError(common.ErrValidation, "A valid email address is required")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return common.NewError(common.ErrValidation, "Password is required")
	}
	if len(password) > maxPasswordBytes {
		return common.NewError(common.ErrValidation, "Password must be at most 72 bytes")
	}
	return nil
}
