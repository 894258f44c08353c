package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/safar/storefront/internal/models"
)

type UserService struct {
	c *Client
}

func NewUserService(c *Client) *UserService {
	return &UserService{c: c}
}

func (s *UserService) GetUser(ctx context.Context, token string, id int64) (*models.User, error) {
	var user models.User
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/user/%d", id), Token: token}, &user); err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, token string, id int64, in models.UserInput) (*models.User, error) {
	var user models.User
	if err := s.c.Do(ctx, Request{Method: http.MethodPatch, Path: fmt.Sprintf("/user/%d", id), Token: token, Body: in}, &user); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return &user, nil
}

// CreateUser, UpdateUserByAdmin and DeleteUser back the admin user screens.
func (s *UserService) CreateUser(ctx context.Context, token string, in models.UserInput) (*models.User, error) {
	var user models.User
	if err := s.c.Do(ctx, Request{Method: http.MethodPost, Path: "/user", Token: token, Body: in}, &user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateUserByAdmin(ctx context.Context, token string, in models.UserInput) (*models.User, error) {
	var user models.User
	if err := s.c.Do(ctx, Request{Method: http.MethodPatch, Path: "/user", Token: token, Body: in}, &user); err != nil {
		return nil, fmt.Errorf("update user %d: %w", in.ID, err)
	}
	return &user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, token string, id int64) error {
	if err := s.c.Do(ctx, Request{Method: http.MethodDelete, Path: fmt.Sprintf("/user/%d", id), Token: token}, nil); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
