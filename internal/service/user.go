package service

import (
	"fmt"

	"github.com/reportdesk/backend/internal/apperr"
	"github.com/reportdesk/backend/internal/model"
	"github.com/reportdesk/backend/internal/policy"
	"github.com/reportdesk/backend/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Create(username, role, bio string) (*model.UserProfile, error) {
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	if !policy.IsValidRole(policy.Role(role)) {
		return nil, apperr.InvalidArgument("unknown role: %s", role)
	}

	user := &model.UserProfile{
		Username: username,
		Role:     role,
		Bio:      bio,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Get(id uint) (*model.UserProfile, error) {
	user, err := s.userRepo.Get(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.NotFound("user %d not found", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List() ([]model.UserProfile, error) {
	return s.userRepo.List()
}
