package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/safar/storefront/internal/models"
)

type OrderService struct {
	c *Client
}

func NewOrderService(c *Client) *OrderService {
	return &OrderService{c: c}
}

func (s *OrderService) CreateOrder(ctx context.Context, token string, order models.NewOrder) (*models.Order, error) {
	var created models.Order
	err := s.c.Do(ctx, Request{Method: http.MethodPost, Path: "/orders", Token: token, Body: order}, &created)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, token string, id int64) (*models.Order, error) {
	var order models.Order
	err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/orders/%d", id), Token: token}, &order)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &order, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, token string, id int64, patch models.OrderPatch) (*models.Order, error) {
	var order models.Order
	err := s.c.Do(ctx, Request{Method: http.MethodPatch, Path: fmt.Sprintf("/orders/%d", id), Token: token, Body: patch}, &order)
	if err != nil {
		return nil, fmt.Errorf("update order %d: %w", id, err)
	}
	return &order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, token string, userID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.c.Do(ctx, Request{Method: http.MethodGet, Path: fmt.Sprintf("/user/%d/order-list", userID), Token: token}, &orders)
	if err != nil {
		return nil, fmt.Errorf("list orders for user %d: %w", userID, err)
	}
	return orders, nil
}

func (s *OrderService) CreateOrderItem(ctx context.Context, token string, item models.NewOrderItem) (*models.OrderItem, error) {
	var created models.OrderItem
	err := s.c.Do(ctx, Request{Method: http.MethodPost, Path: "/order-items", Token: token, Body: item}, &created)
	if err != nil {
		return nil, fmt.Errorf("create order item: %w", err)
	}
	return &created, nil
}

func (s *OrderService) UpdateOrderItem(ctx context.Context, token string, id int64, patch models.OrderItemPatch) (*models.OrderItem, error) {
	var item models.OrderItem
	err := s.c.Do(ctx, Request{Method: http.MethodPatch, Path: fmt.Sprintf("/order-items/%d", id), Token: token, Body: patch}, &item)
	if err != nil {
		return nil, fmt.Errorf("update order item %d: %w", id, err)
	}
	return &item, nil
}

func (s *OrderService) DeleteOrderItem(ctx context.Context, token string, id int64) error {
	if err := s.c.Do(ctx, Request{Method: http.MethodDelete, Path: fmt.Sprintf("/order-items/%d", id), Token: token}, nil); err != nil {
		return fmt.Errorf("delete order item %d: %w", id, err)
	}
	return nil
}
