package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/safar/storefront/internal/apperr"
	"github.com/safar/storefront/internal/models"
	"go.uber.org/zap"
)

// checkoutPreview opens a checkout session for ?items=1,2 (every cart line
// when empty).
func (h *handler) checkoutPreview(c *gin.Context) {
	p := principal(c)
	sess, err := h.checkout.Begin(c.Request.Context(), p.Token, p.UserID, c.Query("items"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, sess, "ok")
}

type placeOrderRequest struct {
	Items     string `json:"items"`
	AddressID int64  `json:"addressId"`
}

func (h *handler) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p := principal(c)
	ctx := c.Request.Context()

	sess, err := h.checkout.Begin(ctx, p.Token, p.UserID, req.Items)
	if err != nil {
		fail(c, err)
		return
	}
	if req.AddressID != 0 {
		if err := sess.SelectAddress(req.AddressID); err != nil {
			fail(c, err)
			return
		}
	}

	result, err := h.checkout.PlaceOrder(ctx, p.Token, p.UserID, sess)
	if err != nil {
		fail(c, err)
		return
	}
	redirect(c, result.Order, "Order placed", result.Redirect)
}

func (h *handler) listOrders(c *gin.Context) {
	p := principal(c)
	orders, err := h.api.Orders.ListUserOrders(c.Request.Context(), p.Token, p.UserID)
	if err != nil {
		requestLogger(c).Warn("list orders failed", zap.Error(err))
		orders = []models.Order{}
	}
	ok(c, orders, "ok")
}

func (h *handler) getOrder(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p := principal(c)

	order, err := h.api.Orders.GetOrder(c.Request.Context(), p.Token, id)
	if err != nil {
		fail(c, err)
		return
	}
	if order.UserID != 0 && order.UserID != p.UserID && !p.Admin() {
		fail(c, apperr.NotFound("order not found"))
		return
	}
	ok(c, order, "ok")
}
