package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/safar/storefront/internal/catalog"
	"github.com/safar/storefront/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxGridPages = 10

// listProducts renders the grid through ?pages=N, the number of pages the
// client has scrolled through.
func (h *handler) listProducts(c *gin.Context) {
	ctx := c.Request.Context()
	token := optionalToken(c)
	pages := queryInt(c, "pages", 1, 1, maxGridPages)
	log := requestLogger(c)

	fetch := func(ctx context.Context, page int) ([]models.Product, error) {
		return h.api.Products.ListProducts(ctx, token, page, catalog.PageSize)
	}

	first, err := fetch(ctx, 1)
	if err != nil {
		log.Warn("load product grid failed", zap.Error(err))
		first = []models.Product{}
	}

	feed := catalog.NewFeed(first, fetch)
	for feed.State().Page < pages {
		loaded, err := feed.OnSentinelVisible(ctx)
		if err != nil {
			log.Warn("load product page failed", zap.Error(err))
			break
		}
		if !loaded {
			break
		}
	}

	ok(c, feed.State(), "ok")
}

type sizeOption struct {
	Size      string `json:"size"`
	Stock     int    `json:"stock"`
	Available bool   `json:"available"`
}

type colorOption struct {
	Color     string `json:"color"`
	Available bool   `json:"available"`
}

type selectionView struct {
	Sizes           []sizeOption           `json:"sizes"`
	Colors          []colorOption          `json:"colors"`
	Size            string                 `json:"selectedSize,omitempty"`
	Color           string                 `json:"selectedColor,omitempty"`
	Variant         *models.ProductVariant `json:"variant,omitempty"`
	Price           decimal.Decimal        `json:"price"`
	Stock           int                    `json:"stock"`
	OriginalPrice   *decimal.Decimal       `json:"originalPrice,omitempty"`
	DiscountPercent int                    `json:"discountPercent,omitempty"`
	CanAddToCart    bool                   `json:"canAddToCart"`
}

type productDetailView struct {
	*catalog.Detail
	Selection selectionView `json:"selection"`
}

func newSelectionView(s *catalog.Selector) selectionView {
	stock := s.SizeStock()
	view := selectionView{
		Size:         s.Size(),
		Color:        s.Color(),
		Price:        s.Price(),
		Stock:        s.Stock(),
		CanAddToCart: s.CanAddToCart(),
	}
	for _, size := range s.Sizes() {
		view.Sizes = append(view.Sizes, sizeOption{Size: size, Stock: stock[size], Available: s.SizeAvailable(size)})
	}
	for _, color := range s.Colors() {
		view.Colors = append(view.Colors, colorOption{Color: color, Available: s.ColorAvailable(color)})
	}
	if v, ok := s.Resolved(); ok {
		view.Variant = &v
	}
	if orig, ok := s.OriginalPrice(); ok {
		view.OriginalPrice = &orig
		view.DiscountPercent = s.DiscountPercent()
	}
	return view
}

// productDetail returns the product with the selector state for the
// optional ?size= and ?color= choice.
func (h *handler) productDetail(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}

	d, err := h.detail.Load(c.Request.Context(), optionalToken(c), id)
	if err != nil {
		fail(c, err)
		return
	}

	sel := h.detail.Selector(d)
	if size := c.Query("size"); size != "" {
		if err := sel.SelectSize(size); err != nil {
			fail(c, err)
			return
		}
	}
	if color := c.Query("color"); color != "" {
		if err := sel.SelectColor(color); err != nil {
			fail(c, err)
			return
		}
	}

	ok(c, productDetailView{Detail: d, Selection: newSelectionView(sel)}, "ok")
}

func (h *handler) listCategories(c *gin.Context) {
	list, err := h.api.Categories.ListCategories(c.Request.Context(), optionalToken(c))
	if err != nil {
		requestLogger(c).Warn("load categories failed", zap.Error(err))
		list = []models.Category{}
	}
	ok(c, list, "ok")
}

func (h *handler) getCategory(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	cat, err := h.api.Categories.GetCategory(c.Request.Context(), optionalToken(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, cat, "ok")
}

type reviewRequest struct {
	ProductID        int64  `json:"productId" binding:"required"`
	ProductVariantID int64  `json:"productVariantId"`
	Rating           int    `json:"rating" binding:"required,min=1,max=5"`
	Comment          string `json:"comment" binding:"required"`
}

func (h *handler) createReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p := principal(c)

	review, err := h.api.Reviews.CreateReview(c.Request.Context(), p.Token, models.NewReview{
		ProductID:        req.ProductID,
		UserID:           p.UserID,
		ProductVariantID: req.ProductVariantID,
		Rating:           req.Rating,
		Comment:          req.Comment,
	})
	if err != nil {
		fail(c, err)
		return
	}
	created(c, review, "review created")
}

func (h *handler) updateReview(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var patch models.ReviewPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	review, err := h.api.Reviews.UpdateReview(c.Request.Context(), principal(c).Token, id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, review, "review updated")
}
