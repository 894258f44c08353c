package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/safar/storefront/internal/cartview"
	"github.com/safar/storefront/internal/checkout"
	"github.com/safar/storefront/internal/guestcart"
	"github.com/safar/storefront/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type cartView struct {
	Lines         []cartview.Line `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	SelectedCount int             `json:"selectedCount"`
	AllSelected   bool            `json:"allSelected"`
	CanPurchase   bool            `json:"canPurchase"`
	CheckoutQuery string          `json:"checkoutQuery,omitempty"`
}

func newCartView(p *cartview.Page) cartView {
	lines := p.Lines()
	if lines == nil {
		lines = []cartview.Line{}
	}
	return cartView{
		Lines:         lines,
		Total:         p.Total(),
		SelectedCount: p.SelectedCount(),
		AllSelected:   p.AllSelected(),
		CanPurchase:   p.CanPurchase(),
		CheckoutQuery: p.CheckoutQuery(),
	}
}

// loadPage falls back to an empty cart when the backend cannot be read.
func (h *handler) loadPage(c *gin.Context) *cartview.Page {
	p := principal(c)
	page, err := h.cart.Load(c.Request.Context(), p.Token, p.UserID)
	if err != nil {
		requestLogger(c).Warn("load cart failed", zap.Error(err))
		return h.cart.NewPage(p.Token, nil)
	}
	return page
}

func idSet(ids map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	return out
}

// getCart renders the signed-in cart. ?selected=1,2 narrows the selection;
// without it every line is selected.
func (h *handler) getCart(c *gin.Context) {
	page := h.loadPage(c)
	if raw := strings.TrimSpace(c.Query("selected")); raw != "" {
		page.SelectOnly(idSet(checkout.ParseIDs(raw)))
	}
	ok(c, newCartView(page), "ok")
}

type addToCartRequest struct {
	VariantID int64 `json:"variantId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

func (h *handler) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = models.MinQuantity
	}
	p := principal(c)

	item, err := h.adder.Add(c.Request.Context(), p.Token, p.UserID, req.VariantID, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, item, "Added to cart")
}

type quantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *handler) updateCartQuantity(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if !models.QuantityInRange(req.Quantity) {
		fail(c, cartview.ErrQuantityOutOfRange)
		return
	}

	page := h.loadPage(c)
	if err := page.UpdateQuantity(c.Request.Context(), id, req.Quantity); err != nil {
		fail(c, err)
		return
	}
	ok(c, newCartView(page), "Quantity updated")
}

func (h *handler) removeCartItem(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}

	page := h.loadPage(c)
	if err := page.Remove(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, newCartView(page), "Item removed")
}

type removeSelectedRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

func (h *handler) removeSelected(c *gin.Context) {
	var req removeSelectedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	page := h.loadPage(c)
	page.SelectOnly(req.IDs)
	if _, err := page.RemoveSelected(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	ok(c, newCartView(page), "Selected items removed")
}

// mergeGuest moves the caller's guest cart into the signed-in cart. A
// caller without a guest cookie has nothing to merge.
func (h *handler) mergeGuest(c *gin.Context) {
	guest, err := c.Cookie(h.cfg.GuestCart.CookieName)
	if err != nil || guest == "" {
		ok(c, gin.H{"merged": 0}, "Nothing to merge")
		return
	}
	p := principal(c)

	merged, err := h.merger.MergeGuest(c.Request.Context(), p.Token, p.UserID, guest)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"merged": merged}, "Guest cart merged")
}

type guestCartView struct {
	Items []guestcart.Item `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

func respondGuest(c *gin.Context, items []guestcart.Item, err error, message string) {
	if err != nil {
		fail(c, err)
		return
	}
	if items == nil {
		items = []guestcart.Item{}
	}
	ok(c, guestCartView{Items: items, Total: guestcart.Total(items)}, message)
}

func (h *handler) guestCart(c *gin.Context) {
	items, err := h.guests.Items(c.Request.Context(), guestID(c))
	respondGuest(c, items, err, "ok")
}

func (h *handler) guestClear(c *gin.Context) {
	err := h.guests.Clear(c.Request.Context(), guestID(c))
	respondGuest(c, nil, err, "Cart cleared")
}

func (h *handler) guestAdd(c *gin.Context) {
	var a guestcart.Addition
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, err)
		return
	}
	items, err := h.guests.Add(c.Request.Context(), guestID(c), a)
	respondGuest(c, items, err, "Added to cart")
}

func guestVariantID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("variantId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid variantId")
	}
	return id, nil
}

func (h *handler) guestUpdateQuantity(c *gin.Context) {
	id, err := guestVariantID(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	items, err := h.guests.UpdateQuantity(c.Request.Context(), guestID(c), id, req.Quantity)
	respondGuest(c, items, err, "Quantity updated")
}

func (h *handler) guestRemove(c *gin.Context) {
	id, err := guestVariantID(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	items, err := h.guests.Remove(c.Request.Context(), guestID(c), id)
	respondGuest(c, items, err, "Item removed")
}

// guestSelectRequest toggles one line when VariantID is set, every line
// otherwise.
type guestSelectRequest struct {
	VariantID int64 `json:"variantId"`
	Selected  *bool `json:"selected" binding:"required"`
}

func (h *handler) guestSelect(c *gin.Context) {
	var req guestSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var (
		items []guestcart.Item
		err   error
	)
	if req.VariantID != 0 {
		items, err = h.guests.Select(c.Request.Context(), guestID(c), req.VariantID, *req.Selected)
	} else {
		items, err = h.guests.SelectAll(c.Request.Context(), guestID(c), *req.Selected)
	}
	respondGuest(c, items, err, "Selection updated")
}
