package catalog

import (
	"errors"
	"strings"

	"github.com/safar/storefront/internal/models"
	"github.com/shopspring/decimal"
)

var (
	DefaultSizes  = []string{"S", "M", "L", "XL", "XXL"}
	DefaultColors = []string{"black", "white", "red", "blue", "gray"}
)

var (
	ErrSizeUnavailable  = errors.New("size is not available")
	ErrColorUnavailable = errors.New("color is not available for the selected size")
)

type Option func(*Selector)

// WithSizes replaces the size enumeration offered to shoppers.
func WithSizes(sizes ...string) Option {
	return func(s *Selector) {
		if len(sizes) > 0 {
			s.sizes = append([]string(nil), sizes...)
		}
	}
}

// WithColors replaces the color enumeration offered to shoppers.
func WithColors(colors ...string) Option {
	return func(s *Selector) {
		if len(colors) > 0 {
			s.colors = make([]string, len(colors))
			for i, c := range colors {
				s.colors[i] = strings.ToLower(c)
			}
		}
	}
}

// Selector tracks a shopper's size and color choice for one product.
// Sizes and colors come from fixed enumerations; variants outside them
// cannot be picked.
type Selector struct {
	product  models.Product
	variants []models.ProductVariant
	sizes    []string
	colors   []string
	size     string
	color    string
}

func NewSelector(product models.Product, variants []models.ProductVariant, opts ...Option) *Selector {
	s := &Selector{
		product:  product,
		variants: variants,
		sizes:    DefaultSizes,
		colors:   DefaultColors,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Selector) Sizes() []string  { return append([]string(nil), s.sizes...) }
func (s *Selector) Colors() []string { return append([]string(nil), s.colors...) }
func (s *Selector) Size() string     { return s.size }
func (s *Selector) Color() string    { return s.color }

// SizeStock sums stock across colors for each enumerated size.
func (s *Selector) SizeStock() map[string]int {
	stock := make(map[string]int, len(s.sizes))
	for _, size := range s.sizes {
		stock[size] = 0
		for _, v := range s.variants {
			if strings.EqualFold(v.VariantSize, size) {
				stock[size] += v.Stock
			}
		}
	}
	return stock
}

func (s *Selector) SizeAvailable(size string) bool {
	label, ok := s.sizeLabel(size)
	if !ok {
		return false
	}
	return s.SizeStock()[label] > 0
}

// AvailableColors lists, in enumeration order, the colors with stock at the
// selected size. It is empty until a size is chosen.
func (s *Selector) AvailableColors() []string {
	if s.size == "" {
		return []string{}
	}
	out := []string{}
	for _, c := range s.colors {
		for _, v := range s.variants {
			if strings.EqualFold(v.VariantSize, s.size) && strings.EqualFold(v.VariantColor, c) && v.Stock > 0 {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func (s *Selector) ColorAvailable(color string) bool {
	for _, c := range s.AvailableColors() {
		if strings.EqualFold(c, color) {
			return true
		}
	}
	return false
}

// SelectSize keeps the current color when it is still in stock at the new
// size and otherwise switches to the first available one.
func (s *Selector) SelectSize(size string) error {
	label, ok := s.sizeLabel(size)
	if !ok || s.SizeStock()[label] == 0 {
		return ErrSizeUnavailable
	}
	s.size = label

	available := s.AvailableColors()
	for _, c := range available {
		if c == s.color {
			return nil
		}
	}
	s.color = ""
	if len(available) > 0 {
		s.color = available[0]
	}
	return nil
}

func (s *Selector) SelectColor(color string) error {
	c := strings.ToLower(strings.TrimSpace(color))
	if !s.ColorAvailable(c) {
		return ErrColorUnavailable
	}
	s.color = c
	return nil
}

func (s *Selector) sizeLabel(size string) (string, bool) {
	size = strings.TrimSpace(size)
	for _, label := range s.sizes {
		if strings.EqualFold(label, size) {
			return label, true
		}
	}
	return "", false
}

// Resolved returns the variant matching the current size and color.
func (s *Selector) Resolved() (models.ProductVariant, bool) {
	if s.size == "" || s.color == "" {
		return models.ProductVariant{}, false
	}
	for _, v := range s.variants {
		if strings.EqualFold(v.VariantSize, s.size) && strings.EqualFold(v.VariantColor, s.color) {
			return v, true
		}
	}
	return models.ProductVariant{}, false
}

func (s *Selector) Price() decimal.Decimal {
	if v, ok := s.Resolved(); ok {
		return v.Price
	}
	return s.product.Price
}

func (s *Selector) Stock() int {
	if v, ok := s.Resolved(); ok {
		return v.Stock
	}
	return s.product.Stock
}

func (s *Selector) CanAddToCart() bool {
	v, ok := s.Resolved()
	return ok && v.Stock > 0
}

// OriginalPrice is the highest variant price, reported only when it is
// above the displayed price.
func (s *Selector) OriginalPrice() (decimal.Decimal, bool) {
	if len(s.variants) == 0 {
		return decimal.Zero, false
	}
	highest := s.variants[0].Price
	for _, v := range s.variants[1:] {
		if v.Price.GreaterThan(highest) {
			highest = v.Price
		}
	}
	if !highest.GreaterThan(s.Price()) {
		return decimal.Zero, false
	}
	return highest, true
}

func (s *Selector) DiscountPercent() int {
	original, ok := s.OriginalPrice()
	if !ok || original.IsZero() {
		return 0
	}
	pct := original.Sub(s.Price()).Div(original).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

// Unreachable lists variants whose size or color is outside the
// enumerations.
func (s *Selector) Unreachable() []models.ProductVariant {
	var out []models.ProductVariant
	for _, v := range s.variants {
		if _, ok := s.sizeLabel(v.VariantSize); !ok || !containsFold(s.colors, v.VariantColor) {
			out = append(out, v)
		}
	}
	return out
}

func containsFold(list []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
