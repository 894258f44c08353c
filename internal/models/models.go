package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend expects money as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Cart struct {
	ID        int64     `json:"id" validate:"required"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CartItem struct {
	ID               int64     `json:"id" validate:"required"`
	CartID           int64     `json:"cartId"`
	ProductVariantID int64     `json:"productVariantId" validate:"required"`
	Quantity         int       `json:"quantity"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CartItemDetail is a cart line as returned by cart-details, with its
// variant joined in.
type CartItemDetail struct {
	CartItem
	ProductVariant *ProductVariant `json:"productVariant" validate:"required"`
}

type CartDetails struct {
	ID        int64            `json:"id" validate:"required"`
	UserID    int64            `json:"userId"`
	CartItems []CartItemDetail `json:"cartItems" validate:"required,dive"`
}

type Media struct {
	ID               int64  `json:"id"`
	URL              string `json:"url,omitempty"`
	MediaPath        string `json:"mediaPath,omitempty"`
	MediaType        string `json:"mediaType,omitempty"`
	AltText          string `json:"altText,omitempty"`
	ProductVariantID *int64 `json:"productVariantId,omitempty"`
}

// Link returns whichever location field the backend filled in.
func (m Media) Link() string {
	if m.URL != "" {
		return m.URL
	}
	return m.MediaPath
}

type ProductVariant struct {
	ID               int64           `json:"id" validate:"required"`
	ProductID        int64           `json:"productId"`
	CreateByUserID   int64           `json:"createByUserId,omitempty"`
	VariantName      string          `json:"variantName"`
	VariantColor     string          `json:"variantColor,omitempty"`
	VariantSize      string          `json:"variantSize,omitempty"`
	Price            decimal.Decimal `json:"price"`
	Stock            int             `json:"stock" validate:"min=0"`
	StockKeepingUnit string          `json:"stockKeepingUnit,omitempty"`
	VoucherID        *int64          `json:"voucherId,omitempty"`
	Media            []Media         `json:"media,omitempty"`
}

func (v ProductVariant) ImageURL() string {
	if len(v.Media) == 0 {
		return ""
	}
	return v.Media[0].Link()
}

type Product struct {
	ID               int64            `json:"id" validate:"required"`
	Name             string           `json:"name" validate:"required"`
	Description      string           `json:"description"`
	Price            decimal.Decimal  `json:"price"`
	StockKeepingUnit string           `json:"stockKeepingUnit"`
	Stock            int              `json:"stock"`
	CreateByUserID   int64            `json:"createByUserId"`
	CategoryID       *int64           `json:"categoryId,omitempty"`
	VoucherID        *int64           `json:"voucherId,omitempty"`
	ProductVariants  []ProductVariant `json:"productVariants,omitempty" validate:"dive"`
}

type Category struct {
	ID             int64  `json:"id" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Description    string `json:"description"`
	ParentID       *int64 `json:"parentId,omitempty"`
	CreateByUserID int64  `json:"createByUserId"`
	VoucherID      *int64 `json:"voucherId,omitempty"`
}

type Review struct {
	ID               int64     `json:"id" validate:"required"`
	UserID           int64     `json:"userId"`
	ProductID        *int64    `json:"productId,omitempty"`
	ProductVariantID *int64    `json:"productVariantId,omitempty"`
	Rating           int       `json:"rating" validate:"min=0,max=5"`
	Comment          string    `json:"comment"`
	Medias           []Media   `json:"medias,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Address struct {
	ID       int64  `json:"id" validate:"required"`
	UserID   int64  `json:"userId"`
	Street   string `json:"street"`
	Ward     string `json:"ward"`
	District string `json:"district"`
	Province string `json:"province"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// Order.ID carries no validation tag: checkout decides what a missing id means.
type Order struct {
	ID                int64           `json:"id"`
	ShippingAddressID int64           `json:"shippingAddressId"`
	UserID            int64           `json:"userId"`
	ProcessByStaffID  int64           `json:"processByStaffId"`
	OrderDate         time.Time       `json:"orderDate"`
	Status            string          `json:"status"`
	SubTotal          decimal.Decimal `json:"subTotal"`
	ShippingFee       decimal.Decimal `json:"shippingFee"`
	Discount          decimal.Decimal `json:"discount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	OrderItems        []OrderItem     `json:"orderItems,omitempty"`
}

type OrderItem struct {
	ID               int64           `json:"id" validate:"required"`
	OrderID          int64           `json:"orderId"`
	ProductVariantID int64           `json:"productVariantId"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
}

const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

type User struct {
	ID        int64  `json:"id" validate:"required"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Role      string `json:"role,omitempty"`
	IsAdmin   bool   `json:"isAdmin,omitempty"`
}

const (
	RoleUser     = "USER"
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

type LoginUser struct {
	ID      int64  `json:"id" validate:"required"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

type LoginResult struct {
	User        LoginUser `json:"user"`
	AccessToken string    `json:"access_token" validate:"required"`
}

const (
	MinQuantity = 1
	MaxQuantity = 99
)

func QuantityInRange(q int) bool {
	return q >= MinQuantity && q <= MaxQuantity
}

func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}
