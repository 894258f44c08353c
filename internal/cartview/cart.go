package cartview

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/safar/storefront/internal/logger"
	"github.com/safar/storefront/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrQuantityOutOfRange = fmt.Errorf("quantity must be between %d and %d", models.MinQuantity, models.MaxQuantity)
	ErrLineNotFound       = errors.New("cart line not found")
)

// CartAPI is the part of the backend cart service the cart page needs.
type CartAPI interface {
	GetCartDetails(ctx context.Context, token string, userID int64) (*models.CartDetails, error)
	UpdateCartItem(ctx context.Context, token string, itemID int64, quantity int) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, token string, itemID int64) error
}

// Line is a cart item flattened with the display fields of its variant.
type Line struct {
	ID           int64           `json:"id"`
	CartID       int64           `json:"cartId"`
	VariantID    int64           `json:"productVariantId"`
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	VariantSize  string          `json:"variantSize,omitempty"`
	VariantColor string          `json:"variantColor,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Qty          int             `json:"quantity"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Selected     bool            `json:"selected"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// LinesFrom flattens cart details into lines, all selected.
func LinesFrom(details *models.CartDetails) []Line {
	if details == nil {
		return []Line{}
	}
	lines := make([]Line, 0, len(details.CartItems))
	for _, it := range details.CartItems {
		v := it.ProductVariant
		if v == nil {
			continue
		}
		lines = append(lines, Line{
			ID:           it.ID,
			CartID:       it.CartID,
			VariantID:    v.ID,
			ProductID:    v.ProductID,
			ProductName:  v.VariantName,
			VariantSize:  v.VariantSize,
			VariantColor: v.VariantColor,
			Price:        v.Price,
			Qty:          it.Quantity,
			ImageURL:     v.ImageURL(),
			Selected:     true,
		})
	}
	return lines
}

type Controller struct {
	api CartAPI
	log *zap.Logger
}

func NewController(api CartAPI, log *zap.Logger) *Controller {
	return &Controller{api: api, log: logger.OrNop(log).Named("cartview")}
}

func (c *Controller) Load(ctx context.Context, token string, userID int64) (*Page, error) {
	details, err := c.api.GetCartDetails(ctx, token, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return c.NewPage(token, LinesFrom(details)), nil
}

func (c *Controller) NewPage(token string, lines []Line) *Page {
	return &Page{api: c.api, log: c.log, token: token, lines: lines}
}

// Page is one user's view of their server cart. It is not safe for
// concurrent use.
type Page struct {
	api   CartAPI
	log   *zap.Logger
	token string
	lines []Line
}

func (p *Page) Lines() []Line {
	return append([]Line(nil), p.lines...)
}

func (p *Page) find(id int64) int {
	for i := range p.lines {
		if p.lines[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Page) Select(id int64, on bool) bool {
	i := p.find(id)
	if i < 0 {
		return false
	}
	p.lines[i].Selected = on
	return true
}

func (p *Page) SelectAll(on bool) {
	for i := range p.lines {
		p.lines[i].Selected = on
	}
}

// SelectOnly selects exactly the given ids.
func (p *Page) SelectOnly(ids []int64) {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for i := range p.lines {
		p.lines[i].Selected = want[p.lines[i].ID]
	}
}

func (p *Page) AllSelected() bool {
	if len(p.lines) == 0 {
		return false
	}
	for _, l := range p.lines {
		if !l.Selected {
			return false
		}
	}
	return true
}

func (p *Page) SelectedCount() int {
	n := 0
	for _, l := range p.lines {
		if l.Selected {
			n++
		}
	}
	return n
}

func (p *Page) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.lines {
		if l.Selected {
			total = total.Add(l.Subtotal())
		}
	}
	return total
}

func (p *Page) CanPurchase() bool {
	return p.SelectedCount() > 0
}

// UpdateQuantity leaves the line untouched, without calling the backend,
// when qty is outside [1, 99].
func (p *Page) UpdateQuantity(ctx context.Context, id int64, qty int) error {
	if !models.QuantityInRange(qty) {
		return ErrQuantityOutOfRange
	}
	i := p.find(id)
	if i < 0 {
		return ErrLineNotFound
	}

	updated, err := p.api.UpdateCartItem(ctx, p.token, id, qty)
	if err != nil {
		return fmt.Errorf("update quantity of line %d: %w", id, err)
	}
	p.lines[i].Qty = qty
	if updated != nil && models.QuantityInRange(updated.Quantity) {
		p.lines[i].Qty = updated.Quantity
	}
	return nil
}

func (p *Page) Remove(ctx context.Context, id int64) error {
	if p.find(id) < 0 {
		return ErrLineNotFound
	}
	if err := p.api.DeleteCartItem(ctx, p.token, id); err != nil {
		return fmt.Errorf("remove line %d: %w", id, err)
	}
	p.drop(map[int64]bool{id: true})
	return nil
}

// RemoveSelected deletes every selected line concurrently. Lines are dropped
// from the page only once all deletes have succeeded.
func (p *Page) RemoveSelected(ctx context.Context) (int, error) {
	ids := make([]int64, 0, len(p.lines))
	for _, l := range p.lines {
		if l.Selected {
			ids = append(ids, l.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		g.Go(func() error {
			if err := p.api.DeleteCartItem(gctx, p.token, id); err != nil {
				return fmt.Errorf("remove line %d: %w", id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.log.Warn("bulk remove failed", zap.Int("lines", len(ids)), zap.Error(err))
		return 0, err
	}

	gone := make(map[int64]bool, len(ids))
	for _, id := range ids {
		gone[id] = true
	}
	p.drop(gone)
	return len(ids), nil
}

func (p *Page) drop(ids map[int64]bool) {
	kept := p.lines[:0]
	for _, l := range p.lines {
		if !ids[l.ID] {
			kept = append(kept, l)
		}
	}
	p.lines = kept
}

// CheckoutQuery encodes the selected line ids as the checkout page expects
// them, e.g. "items=1,2".
func (p *Page) CheckoutQuery() string {
	ids := make([]string, 0, len(p.lines))
	for _, l := range p.lines {
		if l.Selected {
			ids = append(ids, strconv.FormatInt(l.ID, 10))
		}
	}
	return "items=" + strings.Join(ids, ",")
}
