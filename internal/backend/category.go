package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/safar/storefront/internal/models"
)

type CategoryService struct {
	c *Client
}

func NewCategoryService(c *Client) *CategoryService {
	return &CategoryService{c: c}
}

func (s *CategoryService) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: "/category", Token: token}, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, token string, id int64) (*models.Category, error) {
	var category models.Category
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/category/%d", id), Token: token}, &category); err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &category, nil
}
