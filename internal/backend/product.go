package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/safar/storefront/internal/models"
)

type ProductService struct {
	c *Client
}

func NewProductService(c *Client) *ProductService {
	return &ProductService{c: c}
}

// ListProducts returns one page. The backend answers with a flat array and no
// pagination metadata.
func (s *ProductService) ListProducts(ctx context.Context, token string, page, perPage int) ([]models.Product, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))

	var products []models.Product
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: "/products", Query: q, Token: token}, &products); err != nil {
		return nil, fmt.Errorf("list products page %d: %w", page, err)
	}
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, token string, id int64) (*models.Product, error) {
	var product models.Product
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/products/%d", id), Token: token}, &product); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &product, nil
}

func (s *ProductService) ListProductVariants(ctx context.Context, token string, productID int64) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/products/%d/product-variants", productID), Token: token}, &variants); err != nil {
		return nil, fmt.Errorf("list variants of product %d: %w", productID, err)
	}
	return variants, nil
}

func (s *ProductService) ListProductReviews(ctx context.Context, token string, productID int64) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/products/%d/reviews", productID), Token: token}, &reviews); err != nil {
		return nil, fmt.Errorf("list reviews of product %d: %w", productID, err)
	}
	return reviews, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, token string, in models.NewProduct) (*models.Product, error) {
	if err := s.c.Validate(in); err != nil {
		return nil, err
	}
	var product models.Product
	if err := s.c.Do(ctx, Request{Method: http.MethodPost, Path: "/products", Token: token, Body: in}, &product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}
