package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/safar/storefront/internal/models"
)

type ReviewService struct {
	c *Client
}

func NewReviewService(c *Client) *ReviewService {
	return &ReviewService{c: c}
}

func (s *ReviewService) CreateReview(ctx context.Context, token string, in models.NewReview) (*models.Review, error) {
	if err := s.c.Validate(in); err != nil {
		return nil, err
	}
	var review models.Review
	if err := s.c.Do(ctx, Request{Method: http.MethodPost, Path: "/reviews", Token: token, Body: in}, &review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, token string, id int64, patch models.ReviewPatch) (*models.Review, error) {
	if err := s.c.Validate(patch); err != nil {
		return nil, err
	}
	var review models.Review
	if err := s.c.Do(ctx, Request{Method: http.MethodPatch, Path: fmt.Sprintf("/reviews/%d", id), Token: token, Body: patch}, &review); err != nil {
		return nil, fmt.Errorf("update review %d: %w", id, err)
	}
	return &review, nil
}
