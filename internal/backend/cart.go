package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/safar/storefront/internal/models"
)

type CartService struct {
	c *Client
}

func NewCartService(c *Client) *CartService {
	return &CartService{c: c}
}

func (s *CartService) CreateCart(ctx context.Context, token string, userID int64) (*models.Cart, error) {
	var cart models.Cart
	err := s.c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/user/%d/cart", userID),
		Token:  token,
		Body:   models.NewCart{UserID: userID},
	}, &cart)
	if err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return &cart, nil
}

func (s *CartService) GetCart(ctx context.Context, token string, userID int64) (*models.Cart, error) {
	var cart models.Cart
	err := s.c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/user/%d/cart", userID),
		Token:  token,
	}, &cart)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &cart, nil
}

func (s *CartService) UpdateCart(ctx context.Context, token string, userID int64, patch models.NewCart) (*models.Cart, error) {
	var cart models.Cart
	err := s.c.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/user/%d/cart", userID),
		Token:  token,
		Body:   patch,
	}, &cart)
	if err != nil {
		return nil, fmt.Errorf("update cart: %w", err)
	}
	return &cart, nil
}

func (s *CartService) GetCartDetails(ctx context.Context, token string, userID int64) (*models.CartDetails, error) {
	var details models.CartDetails
	err := s.c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/user/%d/cart/cart-details", userID),
		Token:  token,
	}, &details)
	if err != nil {
		return nil, fmt.Errorf("get cart details: %w", err)
	}
	return &details, nil
}

func (s *CartService) CreateCartItem(ctx context.Context, token string, userID int64, item models.NewCartItem) (*models.CartItem, error) {
	var created models.CartItem
	err := s.c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/user/%d/cart/cart-item", userID),
		Token:  token,
		Body:   item,
	}, &created)
	if err != nil {
		return nil, fmt.Errorf("create cart item: %w", err)
	}
	return &created, nil
}

func (s *CartService) ListCartItems(ctx context.Context, token string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/cart-items",
		Token:  token,
	}, &items)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

func (s *CartService) UpdateCartItem(ctx context.Context, token string, itemID int64, quantity int) (*models.CartItem, error) {
	var updated models.CartItem
	err := s.c.Do(ctx, Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/cart-items/%d", itemID),
		Token:  token,
		Body:   models.CartItemPatch{Quantity: &quantity},
	}, &updated)
	if err != nil {
		return nil, fmt.Errorf("update cart item %d: %w", itemID, err)
	}
	return &updated, nil
}

func (s *CartService) DeleteCartItem(ctx context.Context, token string, itemID int64) error {
	err := s.c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/cart-items/%d", itemID),
		Token:  token,
	}, nil)
	if err != nil {
		return fmt.Errorf("delete cart item %d: %w", itemID, err)
	}
	return nil
}
