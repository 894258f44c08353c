package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/safar/storefront/internal/models"
)

type AddressService struct {
	c *Client
}

func NewAddressService(c *Client) *AddressService {
	return &AddressService{c: c}
}

func (s *AddressService) CreateAddress(ctx context.Context, token string, in models.AddressInput) (*models.Address, error) {
	var addr models.Address
	if err := s.c.Do(ctx, Request{Method: http.MethodPost, Path: "/address", Token: token, Body: in}, &addr); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return &addr, nil
}

func (s *AddressService) GetAddress(ctx context.Context, token string, id int64) (*models.Address, error) {
	var addr models.Address
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/address/%d", id), Token: token}, &addr); err != nil {
		return nil, fmt.Errorf("get address %d: %w", id, err)
	}
	return &addr, nil
}

func (s *AddressService) UpdateAddress(ctx context.Context, token string, id int64, in models.AddressInput) (*models.Address, error) {
	var addr models.Address
	if err := s.c.Do(ctx, Request{Method: http.MethodPatch, Path: fmt.Sprintf("/address/%d", id), Token: token, Body: in}, &addr); err != nil {
		return nil, fmt.Errorf("update address %d: %w", id, err)
	}
	return &addr, nil
}

func (s *AddressService) DeleteAddress(ctx context.Context, token string, id int64) error {
	if err := s.c.Do(ctx, Request{Method: http.MethodDelete, Path: fmt.Sprintf("/address/%d", id), Token: token}, nil); err != nil {
		return fmt.Errorf("delete address %d: %w", id, err)
	}
	return nil
}

func (s *AddressService) ListUserAddresses(ctx context.Context, token string, userID int64) ([]models.Address, error) {
	var list []models.Address
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/user/%d/address-list", userID), Token: token}, &list); err != nil {
		return nil, fmt.Errorf("list addresses for user %d: %w", userID, err)
	}
	return list, nil
}
