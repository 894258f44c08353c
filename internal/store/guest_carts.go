package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safar/storefront/internal/database"
	"github.com/safar/storefront/internal/guestcart"
	"github.com/shopspring/decimal"
)

// GuestCarts stores guest carts in Postgres. It satisfies guestcart.Storage.
type GuestCarts struct {
	db *sql.DB
}

func NewGuestCarts(db *sql.DB) *GuestCarts {
	return &GuestCarts{db: db}
}

func parseGuestID(guestID string) (uuid.UUID, error) {
	id, err := uuid.Parse(guestID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", database.ErrInvalidGuestID, guestID)
	}
	return id, nil
}

func (s *GuestCarts) Load(ctx context.Context, guestID string) ([]guestcart.Item, error) {
	id, err := parseGuestID(guestID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT variant_id, product_id, product_name, variant_size, variant_color,
		        price, qty, image_url, selected
		 FROM guest_cart_items
		 WHERE guest_id = $1
		 ORDER BY position`,
		id)
	if err != nil {
		return nil, fmt.Errorf("query guest cart items: %w", err)
	}
	defer rows.Close()

	items := []guestcart.Item{}
	for rows.Next() {
		var it guestcart.Item
		var price decimal.Decimal
		if err := rows.Scan(
			&it.VariantID,
			&it.ProductID,
			&it.ProductName,
			&it.VariantSize,
			&it.VariantColor,
			&price,
			&it.Qty,
			&it.ImageURL,
			&it.Selected,
		); err != nil {
			return nil, fmt.Errorf("scan guest cart item: %w", err)
		}
		it.Price = price
		it.ID = fmt.Sprintf("%d", it.VariantID)
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate guest cart items: %w", err)
	}

	return items, nil
}

// Save replaces the guest's lines. The upsert on guest_carts takes a row
// lock, so saves for the same guest run one after another.
func (s *GuestCarts) Save(ctx context.Context, guestID string, items []guestcart.Item) error {
	id, err := parseGuestID(guestID)
	if err != nil {
		return err
	}

	return database.WithRetry(ctx, s.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if len(items) == 0 {
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM guest_carts WHERE guest_id = $1", id); err != nil {
				return fmt.Errorf("delete guest cart: %w", err)
			}
			return nil
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO guest_carts (guest_id, created_at, updated_at)
			 VALUES ($1, NOW(), NOW())
			 ON CONFLICT (guest_id) DO UPDATE SET updated_at = NOW()`,
			id)
		if err != nil {
			return fmt.Errorf("upsert guest cart: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM guest_cart_items WHERE guest_id = $1", id); err != nil {
			return fmt.Errorf("clear guest cart items: %w", err)
		}

		for pos, it := range items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO guest_cart_items
				   (guest_id, variant_id, product_id, product_name, variant_size, variant_color,
				    price, qty, image_url, selected, position)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
				id, it.VariantID, it.ProductID, it.ProductName, it.VariantSize, it.VariantColor,
				it.Price, it.Qty, it.ImageURL, it.Selected, pos)
			if err != nil {
				return fmt.Errorf("insert guest cart item %d: %w", it.VariantID, err)
			}
		}

		return nil
	})
}

// PurgeStale deletes carts not touched since before and reports how many
// were removed.
func (s *GuestCarts) PurgeStale(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM guest_carts WHERE updated_at < $1", before)
	if err != nil {
		return 0, fmt.Errorf("purge guest carts: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return n, nil
}
