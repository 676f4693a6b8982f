package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecoTrackAPI/internal/repository"
	"ecoTrackAPI/internal/types/user"
)

var ErrMissingEmail = errors.New("email is required")

type UserService struct {
	users repository.UserRepo
}

func NewUserService(users repository.UserRepo) *UserService {
	return &UserService{users: users}
}

// RegisterUser inserts a user once per email. A repeat registration returns
// the existing user untouched; created reports which case happened.
func (s *UserService) RegisterUser(ctx context.Context, req *user.RegisterRequest) (*user.User, bool, error) {
	if req.Email == "" {
		return nil, false, ErrMissingEmail
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	u := &user.User{
		Name:      req.Name,
		Email:     req.Email,
		Photo:     req.Photo,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.users.Insert(ctx, u)
	if errors.Is(err, repository.ErrDuplicate) {
		// A concurrent registration won the race; the unique email index
		// guarantees the record it inserted is the one we want.
		existing, ferr := s.users.FindByEmail(ctx, req.Email)
		if ferr != nil {
			return nil, false, fmt.Errorf("failed to fetch user after duplicate insert: %w", ferr)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to register user: %w", err)
	}

	return u, true, nil
}
