package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/safar/storefront/internal/models"
)

type VariantService struct {
	c *Client
}

func NewVariantService(c *Client) *VariantService {
	return &VariantService{c: c}
}

// CreateVariant posts the variant as a multipart form. image may be nil.
func (s *VariantService) CreateVariant(ctx context.Context, token string, in models.NewVariant, imageName string, image io.Reader) (*models.ProductVariant, error) {
	if err := s.c.Validate(in); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"productId":        strconv.FormatInt(in.ProductID, 10),
		"createByUserId":   strconv.FormatInt(in.CreateByUserID, 10),
		"variantName":      in.VariantName,
		"variantColor":     in.VariantColor,
		"variantSize":      in.VariantSize,
		"price":            in.Price.String(),
		"stock":            strconv.Itoa(in.Stock),
		"stockKeepingUnit": in.StockKeepingUnit,
	}
	if in.VoucherID != nil {
		fields["voucherId"] = strconv.FormatInt(*in.VoucherID, 10)
	}

	form := &MultipartForm{Fields: fields}
	if image != nil {
		form.FileField = "image"
		form.FileName = imageName
		form.File = image
	}

	var variant models.ProductVariant
	if err := s.c.Do(ctx, Request{Method: http.MethodPost, Path: "/product-variants", Token: token, Form: form}, &variant); err != nil {
		return nil, fmt.Errorf("create product variant: %w", err)
	}
	return &variant, nil
}

func (s *VariantService) ListVariants(ctx context.Context, token string) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: "/product-variants", Token: token}, &variants); err != nil {
		return nil, fmt.Errorf("list product variants: %w", err)
	}
	return variants, nil
}

func (s *VariantService) GetVariant(ctx context.Context, token string, id int64) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/product-variants/%d", id), Token: token}, &variant); err != nil {
		return nil, fmt.Errorf("get product variant %d: %w", id, err)
	}
	return &variant, nil
}
