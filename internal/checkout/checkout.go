package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/safar/storefront/internal/cartview"
	"github.com/safar/storefront/internal/logger"
	"github.com/safar/storefront/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ShippingFee is a flat fee; the backend does not compute shipping.
var ShippingFee = decimal.NewFromInt(30000)

const (
	CartPath         = "/cart"
	OrderHistoryPath = "/orders"
)

var (
	ErrNothingToCheckout = errors.New("no cart lines to check out")
	ErrAddressRequired   = errors.New("a shipping address is required")
	ErrUnknownAddress    = errors.New("address does not belong to the user")
	ErrOrderNotCreated   = errors.New("backend did not return an order id")
)

type CartSource interface {
	GetCartDetails(ctx context.Context, token string, userID int64) (*models.CartDetails, error)
	DeleteCartItem(ctx context.Context, token string, itemID int64) error
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, token string, order models.NewOrder) (*models.Order, error)
	CreateOrderItem(ctx context.Context, token string, item models.NewOrderItem) (*models.OrderItem, error)
}

type AddressSource interface {
	ListUserAddresses(ctx context.Context, token string, userID int64) ([]models.Address, error)
}

type Summary struct {
	SubTotal    decimal.Decimal `json:"subTotal"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	Discount    decimal.Decimal `json:"discount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func Summarize(lines []cartview.Line) Summary {
	sub := decimal.Zero
	for _, l := range lines {
		sub = sub.Add(l.Subtotal())
	}
	discount := decimal.Zero
	return Summary{
		SubTotal:    sub,
		ShippingFee: ShippingFee,
		Discount:    discount,
		TotalAmount: sub.Add(ShippingFee).Sub(discount),
	}
}

// Session is a checkout in progress: the lines being bought, their totals
// and the address choice.
type Session struct {
	Lines     []cartview.Line  `json:"lines"`
	Summary   Summary          `json:"summary"`
	Addresses []models.Address `json:"addresses"`
	AddressID int64            `json:"selectedAddressId,omitempty"`
}

func (s *Session) SelectAddress(id int64) error {
	for _, a := range s.Addresses {
		if a.ID == id {
			s.AddressID = id
			return nil
		}
	}
	return ErrUnknownAddress
}

type Result struct {
	Order    *models.Order `json:"order"`
	Redirect string        `json:"redirect"`
}

// PartialFailureError means the order sequence stopped part way. Completed
// steps were not undone; OrderID is set when the order itself was created.
type PartialFailureError struct {
	Step      string
	Completed []string
	OrderID   int64
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("place order: step %s failed after %d completed (order %d): %v",
		e.Step, len(e.Completed), e.OrderID, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

type Service struct {
	carts     CartSource
	orders    OrderWriter
	addresses AddressSource
	staffID   int64
	now       func() time.Time
	log       *zap.Logger
}

func NewService(carts CartSource, orders OrderWriter, addresses AddressSource, staffID int64, log *zap.Logger) *Service {
	return &Service{
		carts:     carts,
		orders:    orders,
		addresses: addresses,
		staffID:   staffID,
		now:       time.Now,
		log:       logger.OrNop(log).Named("checkout"),
	}
}

// ParseIDs reads a comma-separated id list. Tokens that are not positive
// integers are skipped.
func ParseIDs(raw string) map[int64]struct{} {
	ids := make(map[int64]struct{})
	for _, tok := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids[id] = struct{}{}
	}
	return ids
}

// Begin loads the cart lines named in rawItems, or every line when rawItems
// is blank, and the user's addresses. A list naming no cart line is
// ErrNothingToCheckout.
func (s *Service) Begin(ctx context.Context, token string, userID int64, rawItems string) (*Session, error) {
	details, err := s.carts.GetCartDetails(ctx, token, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart for checkout: %w", err)
	}

	all := strings.TrimSpace(rawItems) == ""
	ids := ParseIDs(rawItems)
	var lines []cartview.Line
	for _, l := range cartview.LinesFrom(details) {
		if !all {
			if _, ok := ids[l.ID]; !ok {
				continue
			}
		}
		l.Qty = models.ClampQuantity(l.Qty)
		lines = append(lines, l)
	}
	if len(lines) == 0 {
		return nil, ErrNothingToCheckout
	}

	addresses, err := s.addresses.ListUserAddresses(ctx, token, userID)
	if err != nil {
		s.log.Warn("load addresses failed", zap.Int64("user_id", userID), zap.Error(err))
		addresses = []models.Address{}
	}

	sess := &Session{
		Lines:     lines,
		Summary:   Summarize(lines),
		Addresses: addresses,
	}
	if len(addresses) > 0 {
		sess.AddressID = addresses[0].ID
	}
	return sess, nil
}

// PlaceOrder creates the order, then one order item per line, then deletes
// the cart lines, one request at a time.
func (s *Service) PlaceOrder(ctx context.Context, token string, userID int64, sess *Session) (*Result, error) {
	if sess == nil || sess.AddressID == 0 {
		return nil, ErrAddressRequired
	}
	if len(sess.Lines) == 0 {
		return nil, ErrNothingToCheckout
	}

	var order *models.Order
	saga := NewSaga(s.log)
	saga.Add(Step{
		Name: "create-order",
		Run: func(ctx context.Context) error {
			created, err := s.orders.CreateOrder(ctx, token, models.NewOrder{
				ShippingAddressID: sess.AddressID,
				UserID:            userID,
				ProcessByStaffID:  s.staffID,
				OrderDate:         s.now().UTC(),
				Status:            models.OrderStatusPending,
				SubTotal:          sess.Summary.SubTotal,
				ShippingFee:       sess.Summary.ShippingFee,
				Discount:          sess.Summary.Discount,
				TotalAmount:       sess.Summary.TotalAmount,
			})
			if err != nil {
				return err
			}
			if created == nil || created.ID == 0 {
				return ErrOrderNotCreated
			}
			order = created
			return nil
		},
		Compensate: leaveInPlace,
	})

	for _, l := range sess.Lines {
		saga.Add(Step{
			Name: "create-order-item:" + strconv.FormatInt(l.ID, 10),
			Run: func(ctx context.Context) error {
				_, err := s.orders.CreateOrderItem(ctx, token, models.NewOrderItem{
					OrderID:          order.ID,
					ProductVariantID: l.VariantID,
					Quantity:         l.Qty,
					UnitPrice:        l.Price,
					TotalPrice:       l.Subtotal(),
				})
				return err
			},
			Compensate: leaveInPlace,
		})
	}

	for _, l := range sess.Lines {
		saga.Add(Step{
			Name: "delete-cart-item:" + strconv.FormatInt(l.ID, 10),
			Run: func(ctx context.Context) error {
				return s.carts.DeleteCartItem(ctx, token, l.ID)
			},
			Compensate: leaveInPlace,
		})
	}

	completed, err := saga.Execute(ctx)
	if err != nil {
		var stepErr *StepError
		if !errors.As(err, &stepErr) {
			return nil, err
		}
		pf := &PartialFailureError{Step: stepErr.Step, Completed: completed, Err: stepErr.Err}
		if order != nil {
			pf.OrderID = order.ID
		}
		s.log.Error("order placement stopped",
			zap.Int64("user_id", userID),
			zap.Int64("order_id", pf.OrderID),
			zap.String("failed_step", pf.Step),
			zap.Strings("completed", completed),
			zap.Error(pf.Err))
		return nil, pf
	}

	s.log.Info("order placed",
		zap.Int64("user_id", userID),
		zap.Int64("order_id", order.ID),
		zap.Int("lines", len(sess.Lines)))

	return &Result{Order: order, Redirect: OrderHistoryPath}, nil
}

// leaveInPlace is the compensation for every checkout step: partial orders
// are corrected by hand from the logged step list.
func leaveInPlace(context.Context) error {
	return nil
}
