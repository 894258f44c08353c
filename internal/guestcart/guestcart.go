package guestcart

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/safar/storefront/internal/logger"
	"github.com/safar/storefront/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrNoGuest = errors.New("guest id is required")

// Item is one line of a cart kept for a visitor who has not signed in.
// Lines are keyed by variant id.
type Item struct {
	ID           string          `json:"id"`
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	VariantID    int64           `json:"variantId"`
	VariantSize  string          `json:"variantSize,omitempty"`
	VariantColor string          `json:"variantColor,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Qty          int             `json:"qty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Selected     bool            `json:"selected"`
}

type Addition struct {
	ProductID    int64           `json:"productId" binding:"required"`
	ProductName  string          `json:"productName" binding:"required"`
	VariantID    int64           `json:"variantId" binding:"required"`
	VariantSize  string          `json:"variantSize"`
	VariantColor string          `json:"variantColor"`
	Price        decimal.Decimal `json:"price"`
	Qty          int             `json:"qty" binding:"required,min=1"`
	ImageURL     string          `json:"imageUrl"`
	Selected     *bool           `json:"selected"`
}

// Storage persists a guest's lines as a whole. Save replaces what was
// stored; concurrent writers race and the last write wins.
type Storage interface {
	Load(ctx context.Context, guestID string) ([]Item, error)
	Save(ctx context.Context, guestID string, items []Item) error
}

type Repository struct {
	storage Storage
	log     *zap.Logger
}

func NewRepository(storage Storage, log *zap.Logger) *Repository {
	return &Repository{storage: storage, log: logger.OrNop(log).Named("guestcart")}
}

func (r *Repository) Items(ctx context.Context, guestID string) ([]Item, error) {
	if guestID == "" {
		return nil, ErrNoGuest
	}
	items, err := r.storage.Load(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("load guest cart: %w", err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Add merges into an existing line for the same variant, capping the
// quantity, or puts a new line at the front.
func (r *Repository) Add(ctx context.Context, guestID string, a Addition) ([]Item, error) {
	return r.mutate(ctx, guestID, func(items []Item) []Item {
		for i := range items {
			if items[i].VariantID == a.VariantID {
				items[i].Qty = models.ClampQuantity(items[i].Qty + a.Qty)
				return items
			}
		}

		selected := true
		if a.Selected != nil {
			selected = *a.Selected
		}
		item := Item{
			ID:           strconv.FormatInt(a.VariantID, 10),
			ProductID:    a.ProductID,
			ProductName:  a.ProductName,
			VariantID:    a.VariantID,
			VariantSize:  a.VariantSize,
			VariantColor: a.VariantColor,
			Price:        a.Price,
			Qty:          models.ClampQuantity(a.Qty),
			ImageURL:     a.ImageURL,
			Selected:     selected,
		}
		return append([]Item{item}, items...)
	})
}

func (r *Repository) UpdateQuantity(ctx context.Context, guestID string, variantID int64, qty int) ([]Item, error) {
	return r.mutate(ctx, guestID, func(items []Item) []Item {
		for i := range items {
			if items[i].VariantID == variantID {
				items[i].Qty = models.ClampQuantity(qty)
			}
		}
		return items
	})
}

func (r *Repository) Remove(ctx context.Context, guestID string, variantID int64) ([]Item, error) {
	return r.mutate(ctx, guestID, func(items []Item) []Item {
		out := items[:0]
		for _, it := range items {
			if it.VariantID != variantID {
				out = append(out, it)
			}
		}
		return out
	})
}

func (r *Repository) SelectAll(ctx context.Context, guestID string, selected bool) ([]Item, error) {
	return r.mutate(ctx, guestID, func(items []Item) []Item {
		for i := range items {
			items[i].Selected = selected
		}
		return items
	})
}

func (r *Repository) Select(ctx context.Context, guestID string, variantID int64, selected bool) ([]Item, error) {
	return r.mutate(ctx, guestID, func(items []Item) []Item {
		for i := range items {
			if items[i].VariantID == variantID {
				items[i].Selected = selected
			}
		}
		return items
	})
}

func (r *Repository) Clear(ctx context.Context, guestID string) error {
	if guestID == "" {
		return ErrNoGuest
	}
	if err := r.storage.Save(ctx, guestID, nil); err != nil {
		return fmt.Errorf("clear guest cart: %w", err)
	}
	return nil
}

func (r *Repository) mutate(ctx context.Context, guestID string, fn func([]Item) []Item) ([]Item, error) {
	items, err := r.Items(ctx, guestID)
	if err != nil {
		return nil, err
	}
	next := fn(items)
	if err := r.storage.Save(ctx, guestID, next); err != nil {
		r.log.Error("save guest cart", zap.String("guest_id", guestID), zap.Error(err))
		return nil, fmt.Errorf("save guest cart: %w", err)
	}
	return next, nil
}

// Total sums price times quantity over selected lines.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.Selected {
			total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
		}
	}
	return total
}
