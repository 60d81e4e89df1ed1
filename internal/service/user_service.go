package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/BicEv/MovieRatings/internal/domain"
	"github.com/BicEv/MovieRatings/internal/store"
	"github.com/BicEv/MovieRatings/pkg/auth"
)

// UserService manages user accounts.
type UserService struct {
	users   store.UserStore
	reviews store.ReviewStore
	logger  *slog.Logger
}

func NewUserService(users store.UserStore, reviews store.ReviewStore, logger *slog.Logger) *UserService {
	return &UserService{
		users:   users,
		reviews: reviews,
		logger:  logger,
	}
}

// Register creates a new account with the USER role. Email and username must
// both be unused.
func (s *UserService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("user with this email already exists: %w", store.ErrUserAlreadyExists)
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByUserName(ctx, req.UserName); err == nil {
		return nil, fmt.Errorf("user with this username already exists: %w", store.ErrUserAlreadyExists)
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		UserName:     req.UserName,
		PasswordHash: hashedPassword,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User registered", slog.String("userID", user.ID), slog.String("userName", user.UserName))
	return user, nil
}

// Authenticate verifies the email/password pair and returns the account.
// The failure is the same ErrAccessDenied whether the email is unknown or the
// password is wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("invalid email or password: %w", ErrAccessDenied)
		}
		return nil, err
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		s.logger.WarnContext(ctx, "Invalid password attempt", slog.String("email", email))
		return nil, fmt.Errorf("invalid email or password: %w", ErrAccessDenied)
	}
	return user, nil
}

// GetByID returns a user by id.
func (s *UserService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("user with id: %s is not found: %w", userID, err)
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail returns a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("user with email: %s is not found: %w", email, err)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the user's own email and/or username.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.UserName != nil {
		user.UserName = *req.UserName
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "User profile updated", slog.String("userID", user.ID))
	return user, nil
}

// ChangePassword replaces the user's password after verifying the old one.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return fmt.Errorf("invalid password: %w", ErrAccessDenied)
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashedPassword
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "User password changed", slog.String("userID", user.ID))
	return nil
}

// Delete removes a user and all reviews they have written. The reviews go
// first, as an explicit application-level step.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.reviews.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "User and their reviews deleted", slog.String("userID", userID))
	return nil
}

// userNamePattern mirrors the registration rule for usernames. EnsureAdmin
// runs below the HTTP boundary, so it has to enforce the rule itself.
var userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{6,14}$`)

// EnsureAdmin makes sure an admin account with the given email exists,
// creating it if absent. Safe to call on every startup.
func (s *UserService) EnsureAdmin(ctx context.Context, email, userName, password string) error {
	if !userNamePattern.MatchString(userName) {
		return fmt.Errorf("admin username %q must be 6 to 14 alphanumeric characters", userName)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		s.logger.InfoContext(ctx, "Admin user already exists", slog.String("email", email))
		return nil
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		UserName:     userName,
		PasswordHash: hashedPassword,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Admin user created", slog.String("email", email))
	return nil
}
