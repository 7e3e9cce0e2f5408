package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"devflow/internal/domain/entity"
	"devflow/internal/repository"
)

// Service provides account use cases.
type Service struct {
	Users   repository.UserRepository
	Follows repository.FollowRepository
}

// RegisterInput represents the input parameters for creating an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Bio      string
}

// Profile is a user's public view plus the viewer's follow flag. Following
// is nil for an anonymous viewer and omitted from the response.
type Profile struct {
	User      *entity.User
	Following *bool
}

// Register creates a new account with a bcrypt password hash.
// Returns ValidationErrors, ErrDuplicateUsername, or ErrDuplicateEmail. The
// uniqueness check is the database constraint itself, so two concurrent
// registrations of the same name cannot both succeed.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if errs := entity.ValidateRegistration(in.Username, in.Email, in.Password); len(errs) > 0 {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Bio:          in.Bio,
		CreatedAt:    time.Now(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrDuplicateUsername
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate checks a username/password pair and returns the account.
// Returns ErrInvalidCredentials for both unknown users and bad passwords.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetProfile retrieves a public profile by username, with the viewer's
// follow flag when a viewer is present.
// Returns ErrUserNotFound.
func (s *Service) GetProfile(ctx context.Context, username string, viewerID *int64) (*Profile, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	profile := &Profile{User: u}
	if viewerID != nil && *viewerID != u.ID {
		set, err := s.Follows.FollowingSet(ctx, *viewerID, []int64{u.ID})
		if err != nil {
			return nil, fmt.Errorf("following set: %w", err)
		}
		following := set[u.ID]
		profile.Following = &following
	}
	return profile, nil
}
