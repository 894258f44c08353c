package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/safar/storefront/internal/models"
)

type AuthService struct {
	c *Client
}

func NewAuthService(c *Client) *AuthService {
	return &AuthService{c: c}
}

func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	var result models.LoginResult
	if err := s.c.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/login", Body: creds}, &result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &result, nil
}

// The remaining auth calls pass the backend payload through untouched.

func (s *AuthService) Signup(ctx context.Context, in models.Signup) (json.RawMessage, error) {
	return s.post(ctx, "/auth/signup", in)
}

func (s *AuthService) CheckCode(ctx context.Context, in models.CheckCode) (json.RawMessage, error) {
	return s.post(ctx, "/auth/check-code", in)
}

func (s *AuthService) RetryActive(ctx context.Context, in models.EmailOnly) (json.RawMessage, error) {
	return s.post(ctx, "/auth/retry-active", in)
}

func (s *AuthService) RetryPassword(ctx context.Context, in models.EmailOnly) (json.RawMessage, error) {
	return s.post(ctx, "/auth/retry-password", in)
}

func (s *AuthService) ChangePassword(ctx context.Context, in models.ChangePassword) (json.RawMessage, error) {
	return s.post(ctx, "/auth/change-password", in)
}

func (s *AuthService) Profile(ctx context.Context, token string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: "/auth/profile", Token: token}, &out); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return out, nil
}

func (s *AuthService) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, &out); err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	return out, nil
}
