package cartview

import (
	"context"
	"errors"
	"fmt"

	"github.com/safar/storefront/internal/backend"
	"github.com/safar/storefront/internal/guestcart"
	"github.com/safar/storefront/internal/logger"
	"github.com/safar/storefront/internal/models"
	"github.com/safar/storefront/internal/notify"
	"go.uber.org/zap"
)

// CartWriter is the part of the backend cart service used to add lines.
type CartWriter interface {
	GetCart(ctx context.Context, token string, userID int64) (*models.Cart, error)
	CreateCart(ctx context.Context, token string, userID int64) (*models.Cart, error)
	CreateCartItem(ctx context.Context, token string, userID int64, item models.NewCartItem) (*models.CartItem, error)
}

type Adder struct {
	api   CartWriter
	board *notify.Board
	log   *zap.Logger
}

func NewAdder(api CartWriter, board *notify.Board, log *zap.Logger) *Adder {
	return &Adder{api: api, board: board, log: logger.OrNop(log).Named("cartview")}
}

// Add makes sure the user has a cart and posts a new line to it. Repeated
// adds of the same variant create separate lines; the backend owns merging.
func (a *Adder) Add(ctx context.Context, token string, userID, variantID int64, qty int) (*models.CartItem, error) {
	item, err := a.add(ctx, token, userID, variantID, qty)
	if err != nil {
		a.toast(userID, notify.Failure, "Could not add the product to your cart")
		return nil, err
	}
	a.toast(userID, notify.Success, "Added to cart")
	return item, nil
}

func (a *Adder) add(ctx context.Context, token string, userID, variantID int64, qty int) (*models.CartItem, error) {
	cart, err := a.ensureCart(ctx, token, userID)
	if err != nil {
		return nil, err
	}

	item, err := a.api.CreateCartItem(ctx, token, userID, models.NewCartItem{
		CartID:           cart.ID,
		ProductVariantID: variantID,
		Quantity:         models.ClampQuantity(qty),
	})
	if err != nil {
		a.log.Warn("add to cart failed",
			zap.Int64("user_id", userID),
			zap.Int64("variant_id", variantID),
			zap.Error(err))
		return nil, fmt.Errorf("add variant %d to cart: %w", variantID, err)
	}
	return item, nil
}

func (a *Adder) ensureCart(ctx context.Context, token string, userID int64) (*models.Cart, error) {
	cart, err := a.api.GetCart(ctx, token, userID)
	if err == nil {
		return cart, nil
	}
	if !backend.IsNotFound(err) && !errors.Is(err, backend.ErrMissingData) {
		return nil, err
	}

	a.log.Debug("creating cart", zap.Int64("user_id", userID))
	cart, err = a.api.CreateCart(ctx, token, userID)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (a *Adder) toast(userID int64, kind notify.Kind, msg string) {
	if a.board != nil {
		a.board.Publish(userID, kind, msg)
	}
}

// Merger moves a guest's cart into their server cart after sign-in.
type Merger struct {
	adder  *Adder
	guests *guestcart.Repository
	log    *zap.Logger
}

func NewMerger(adder *Adder, guests *guestcart.Repository, log *zap.Logger) *Merger {
	return &Merger{adder: adder, guests: guests, log: logger.OrNop(log).Named("cartview")}
}

// MergeGuest replays guest lines oldest first. Each line leaves the guest
// cart as soon as the backend accepts it, so a failed merge can be retried
// without duplicating what already went through.
func (m *Merger) MergeGuest(ctx context.Context, token string, userID int64, guestID string) (int, error) {
	items, err := m.guests.Items(ctx, guestID)
	if err != nil {
		return 0, err
	}

	merged := 0
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if _, err := m.adder.add(ctx, token, userID, it.VariantID, it.Qty); err != nil {
			m.adder.toast(userID, notify.Failure, "Some items from your previous cart could not be added")
			return merged, err
		}
		if _, err := m.guests.Remove(ctx, guestID, it.VariantID); err != nil {
			return merged, err
		}
		merged++
	}

	if merged > 0 {
		m.log.Info("merged guest cart", zap.Int64("user_id", userID), zap.Int("lines", merged))
		m.adder.toast(userID, notify.Success, fmt.Sprintf("Moved %d item(s) into your cart", merged))
	}
	return merged, nil
}
