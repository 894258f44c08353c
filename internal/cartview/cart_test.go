package cartview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/safar/storefront/internal/models"
	"github.com/shopspring/decimal"
)

type fakeCart struct {
	mu        sync.Mutex
	details   *models.CartDetails
	loadErr   error
	updates   int
	deleted   []int64
	deleteErr map[int64]error
}

func (f *fakeCart) GetCartDetails(context.Context, string, int64) (*models.CartDetails, error) {
	return f.details, f.loadErr
}

func (f *fakeCart) UpdateCartItem(_ context.Context, _ string, id int64, qty int) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	return &models.CartItem{ID: id, Quantity: qty}, nil
}

func (f *fakeCart) DeleteCartItem(_ context.Context, _ string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[id]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func detailLine(id int64, price int64, qty int) models.CartItemDetail {
	return models.CartItemDetail{
		CartItem: models.CartItem{ID: id, CartID: 9, ProductVariantID: id * 10, Quantity: qty},
		ProductVariant: &models.ProductVariant{
			ID:          id * 10,
			ProductID:   1,
			VariantName: "Tee",
			VariantSize: "M",
			Price:       decimal.NewFromInt(price),
			Stock:       10,
			Media:       []models.Media{{MediaPath: "/img/tee.png"}},
		},
	}
}

func loadPage(t *testing.T, api *fakeCart) *Page {
	t.Helper()
	p, err := NewController(api, nil).Load(context.Background(), "tok", 3)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func twoLineCart() *fakeCart {
	return &fakeCart{details: &models.CartDetails{
		ID:        9,
		CartItems: []models.CartItemDetail{detailLine(1, 100000, 2), detailLine(2, 50000, 1)},
	}}
}

func TestTotalOverSelectedLines(t *testing.T) {
	p := loadPage(t, twoLineCart())

	if !p.Total().Equal(decimal.NewFromInt(250000)) {
		t.Fatalf("Expected total 250000, got %s", p.Total())
	}

	p.Select(2, false)
	if !p.Total().Equal(decimal.NewFromInt(200000)) {
		t.Errorf("Expected total 200000 after deselecting line 2, got %s", p.Total())
	}
	if p.AllSelected() {
		t.Error("Expected AllSelected false")
	}
}

func TestDeselectAllDisablesPurchase(t *testing.T) {
	p := loadPage(t, twoLineCart())
	p.SelectAll(false)

	if !p.Total().IsZero() {
		t.Errorf("Expected zero total, got %s", p.Total())
	}
	if p.CanPurchase() {
		t.Error("Expected purchase disabled with nothing selected")
	}
}

func TestLinesCarryVariantDisplayFields(t *testing.T) {
	p := loadPage(t, twoLineCart())
	l := p.Lines()[0]

	if l.VariantID != 10 || l.ProductName != "Tee" || l.VariantSize != "M" {
		t.Errorf("Unexpected line: %+v", l)
	}
	if l.ImageURL != "/img/tee.png" {
		t.Errorf("Expected image from variant media, got %q", l.ImageURL)
	}
}

func TestUpdateQuantityOutOfRangeMakesNoCall(t *testing.T) {
	api := twoLineCart()
	p := loadPage(t, api)

	for _, qty := range []int{0, 100} {
		if err := p.UpdateQuantity(context.Background(), 1, qty); !errors.Is(err, ErrQuantityOutOfRange) {
			t.Errorf("qty %d: expected ErrQuantityOutOfRange, got %v", qty, err)
		}
	}

	if api.updates != 0 {
		t.Errorf("Expected no backend calls, got %d", api.updates)
	}
	if p.Lines()[0].Qty != 2 {
		t.Errorf("Expected quantity unchanged, got %d", p.Lines()[0].Qty)
	}
}

func TestUpdateQuantity(t *testing.T) {
	api := twoLineCart()
	p := loadPage(t, api)

	if err := p.UpdateQuantity(context.Background(), 2, 4); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if api.updates != 1 {
		t.Errorf("Expected one backend call, got %d", api.updates)
	}
	if !p.Total().Equal(decimal.NewFromInt(400000)) {
		t.Errorf("Expected total 400000, got %s", p.Total())
	}
}

func TestRemoveSelected(t *testing.T) {
	api := &fakeCart{details: &models.CartDetails{
		ID: 9,
		CartItems: []models.CartItemDetail{
			detailLine(1, 100, 1), detailLine(2, 100, 1), detailLine(3, 100, 1),
		},
	}}
	p := loadPage(t, api)
	p.Select(2, false)

	n, err := p.RemoveSelected(context.Background())
	if err != nil {
		t.Fatalf("RemoveSelected: %v", err)
	}
	if n != 2 || len(api.deleted) != 2 {
		t.Errorf("Expected 2 deletes, got n=%d deleted=%v", n, api.deleted)
	}

	lines := p.Lines()
	if len(lines) != 1 || lines[0].ID != 2 {
		t.Errorf("Expected only line 2 left, got %+v", lines)
	}
}

func TestRemoveSelectedKeepsStateOnFailure(t *testing.T) {
	api := twoLineCart()
	api.deleteErr = map[int64]error{2: errors.New("backend down")}
	p := loadPage(t, api)

	if _, err := p.RemoveSelected(context.Background()); err == nil {
		t.Fatal("Expected error")
	}
	if len(p.Lines()) != 2 {
		t.Errorf("Expected lines kept after failed bulk remove, got %d", len(p.Lines()))
	}
}

func TestCheckoutQuery(t *testing.T) {
	p := loadPage(t, &fakeCart{details: &models.CartDetails{
		ID: 9,
		CartItems: []models.CartItemDetail{
			detailLine(1, 100, 1), detailLine(2, 100, 1), detailLine(3, 100, 1),
		},
	}})
	p.SelectOnly([]int64{1, 3})

	if got := p.CheckoutQuery(); got != "items=1,3" {
		t.Errorf("Expected items=1,3, got %q", got)
	}
}

func TestLoadError(t *testing.T) {
	api := &fakeCart{loadErr: errors.New("boom")}
	if _, err := NewController(api, nil).Load(context.Background(), "tok", 3); err == nil {
		t.Error("Expected load error")
	}
}
