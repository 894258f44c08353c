package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/safar/storefront/internal/models"
	"github.com/shopspring/decimal"
)

func variant(id int64, size, color string, stock int, price int64) models.ProductVariant {
	return models.ProductVariant{
		ID:           id,
		VariantSize:  size,
		VariantColor: color,
		Stock:        stock,
		Price:        decimal.NewFromInt(price),
	}
}

var tee = models.Product{ID: 1, Name: "Tee", Price: decimal.NewFromInt(90000), Stock: 3}

func TestAvailableColorsAtSize(t *testing.T) {
	s := NewSelector(tee, []models.ProductVariant{
		variant(1, "M", "black", 0, 100000),
		variant(2, "M", "Blue", 5, 100000),
	})

	if err := s.SelectSize("M"); err != nil {
		t.Fatalf("SelectSize: %v", err)
	}

	if got := s.AvailableColors(); !reflect.DeepEqual(got, []string{"blue"}) {
		t.Errorf("Expected [blue], got %v", got)
	}
	if err := s.SelectColor("black"); !errors.Is(err, ErrColorUnavailable) {
		t.Errorf("Expected black to be rejected, got %v", err)
	}
	if s.Color() != "blue" {
		t.Errorf("Expected blue auto-selected, got %q", s.Color())
	}
}

func TestZeroStockSizeCannotBeSelected(t *testing.T) {
	s := NewSelector(tee, []models.ProductVariant{
		variant(1, "S", "black", 0, 100000),
		variant(2, "S", "white", 0, 100000),
		variant(3, "M", "black", 2, 100000),
	})

	if s.SizeAvailable("S") {
		t.Error("Expected S unavailable")
	}
	if err := s.SelectSize("S"); !errors.Is(err, ErrSizeUnavailable) {
		t.Errorf("Expected ErrSizeUnavailable, got %v", err)
	}
	if err := s.SelectSize("XXXL"); !errors.Is(err, ErrSizeUnavailable) {
		t.Errorf("Expected size outside the enumeration rejected, got %v", err)
	}
	if got := s.SizeStock()["M"]; got != 2 {
		t.Errorf("Expected M stock 2, got %d", got)
	}
}

func TestSizeChangeKeepsOrReplacesColor(t *testing.T) {
	s := NewSelector(tee, []models.ProductVariant{
		variant(1, "M", "red", 1, 100000),
		variant(2, "M", "blue", 1, 100000),
		variant(3, "L", "blue", 1, 100000),
		variant(4, "XL", "white", 1, 100000),
		variant(5, "XL", "gray", 1, 100000),
	})

	s.SelectSize("M")
	if err := s.SelectColor("blue"); err != nil {
		t.Fatalf("SelectColor: %v", err)
	}

	s.SelectSize("L")
	if s.Color() != "blue" {
		t.Errorf("Expected blue kept at L, got %q", s.Color())
	}

	s.SelectSize("XL")
	if s.Color() != "white" {
		t.Errorf("Expected first enumerated color white at XL, got %q", s.Color())
	}
}

func TestResolvedPriceAndDiscount(t *testing.T) {
	s := NewSelector(tee, []models.ProductVariant{
		variant(1, "M", "black", 4, 150000),
		variant(2, "L", "BLACK", 2, 200000),
	})

	if !s.Price().Equal(tee.Price) || s.Stock() != tee.Stock {
		t.Errorf("Expected product base values before a selection, got %s/%d", s.Price(), s.Stock())
	}
	if s.CanAddToCart() {
		t.Error("Expected add-to-cart disabled without a variant")
	}

	s.SelectSize("m")
	v, ok := s.Resolved()
	if !ok || v.ID != 1 {
		t.Fatalf("Expected variant 1 resolved, got %+v %v", v, ok)
	}
	if s.Stock() != 4 {
		t.Errorf("Expected stock 4, got %d", s.Stock())
	}

	orig, ok := s.OriginalPrice()
	if !ok || !orig.Equal(decimal.NewFromInt(200000)) {
		t.Errorf("Expected original price 200000, got %s %v", orig, ok)
	}
	if got := s.DiscountPercent(); got != 25 {
		t.Errorf("Expected 25%% off, got %d", got)
	}

	s.SelectSize("L")
	if _, ok := s.OriginalPrice(); ok {
		t.Error("Expected no original price when showing the most expensive variant")
	}
}

func TestUnreachableAndOverrides(t *testing.T) {
	variants := []models.ProductVariant{
		variant(1, "M", "black", 1, 100),
		variant(2, "XS", "black", 1, 100),
		variant(3, "M", "navy", 1, 100),
	}

	s := NewSelector(tee, variants)
	hidden := s.Unreachable()
	if len(hidden) != 2 || hidden[0].ID != 2 || hidden[1].ID != 3 {
		t.Errorf("Expected variants 2 and 3 unreachable, got %+v", hidden)
	}

	s = NewSelector(tee, variants, WithSizes("XS", "M"), WithColors("Black", "Navy"))
	if len(s.Unreachable()) != 0 {
		t.Errorf("Expected nothing hidden with overrides, got %+v", s.Unreachable())
	}
	s.SelectSize("M")
	if got := s.AvailableColors(); !reflect.DeepEqual(got, []string{"black", "navy"}) {
		t.Errorf("Expected [black navy], got %v", got)
	}
}
