package catalog

import (
	"context"
	"fmt"
	"math"

	"github.com/safar/storefront/internal/logger"
	"github.com/safar/storefront/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ProductSource interface {
	GetProduct(ctx context.Context, token string, id int64) (*models.Product, error)
	ListProductVariants(ctx context.Context, token string, productID int64) ([]models.ProductVariant, error)
	ListProductReviews(ctx context.Context, token string, productID int64) ([]models.Review, error)
}

type Detail struct {
	Product       models.Product          `json:"product"`
	Variants      []models.ProductVariant `json:"variants"`
	Reviews       []models.Review         `json:"reviews"`
	AverageRating float64                 `json:"averageRating"`
	ReviewCount   int                     `json:"reviewCount"`
	MinPrice      decimal.Decimal         `json:"minPrice"`
	MaxPrice      decimal.Decimal         `json:"maxPrice"`
	Images        []string                `json:"images"`
}

type Loader struct {
	src  ProductSource
	opts []Option
	log  *zap.Logger
}

func NewLoader(src ProductSource, log *zap.Logger, opts ...Option) *Loader {
	return &Loader{src: src, opts: opts, log: logger.OrNop(log).Named("catalog")}
}

// Load fetches the product, its variants and its reviews in parallel.
// Reviews are optional: when they fail to load the page shows none.
func (l *Loader) Load(ctx context.Context, token string, productID int64) (*Detail, error) {
	var (
		product  *models.Product
		variants []models.ProductVariant
		reviews  []models.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := l.src.GetProduct(gctx, token, productID)
		if err != nil {
			return fmt.Errorf("load product %d: %w", productID, err)
		}
		product = p
		return nil
	})
	g.Go(func() error {
		v, err := l.src.ListProductVariants(gctx, token, productID)
		if err != nil {
			return fmt.Errorf("load variants of product %d: %w", productID, err)
		}
		variants = v
		return nil
	})
	g.Go(func() error {
		r, err := l.src.ListProductReviews(gctx, token, productID)
		if err != nil {
			l.log.Warn("load reviews failed", zap.Int64("product_id", productID), zap.Error(err))
			return nil
		}
		reviews = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if variants == nil {
		variants = []models.ProductVariant{}
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	d := &Detail{
		Product:     *product,
		Variants:    variants,
		Reviews:     reviews,
		ReviewCount: len(reviews),
		Images:      images(variants),
	}
	d.AverageRating = averageRating(reviews)
	d.MinPrice, d.MaxPrice = priceRange(product.Price, variants)
	return d, nil
}

// Selector builds a variant selector for a loaded product. Variants that
// the enumerations hide are logged.
func (l *Loader) Selector(d *Detail) *Selector {
	s := NewSelector(d.Product, d.Variants, l.opts...)
	if hidden := s.Unreachable(); len(hidden) > 0 {
		ids := make([]int64, len(hidden))
		for i, v := range hidden {
			ids[i] = v.ID
		}
		l.log.Warn("variants outside size/color enumerations",
			zap.Int64("product_id", d.Product.ID),
			zap.Int64s("variant_ids", ids))
	}
	return s
}

func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}

func priceRange(base decimal.Decimal, variants []models.ProductVariant) (decimal.Decimal, decimal.Decimal) {
	if len(variants) == 0 {
		return base, base
	}
	lo, hi := variants[0].Price, variants[0].Price
	for _, v := range variants[1:] {
		lo = decimal.Min(lo, v.Price)
		hi = decimal.Max(hi, v.Price)
	}
	return lo, hi
}

func images(variants []models.ProductVariant) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, v := range variants {
		for _, m := range v.Media {
			link := m.Link()
			if link == "" || seen[link] {
				continue
			}
			seen[link] = true
			out = append(out, link)
		}
	}
	return out
}
