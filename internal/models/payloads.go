package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request bodies sent to the backend.

type NewCart struct {
	UserID int64 `json:"userId"`
}

type NewCartItem struct {
	CartID           int64 `json:"cartId"`
	ProductVariantID int64 `json:"productVariantId"`
	Quantity         int   `json:"quantity"`
}

type CartItemPatch struct {
	Quantity *int `json:"quantity,omitempty"`
}

type NewOrder struct {
	ShippingAddressID int64           `json:"shippingAddressId"`
	UserID            int64           `json:"userId"`
	ProcessByStaffID  int64           `json:"processByStaffId"`
	OrderDate         time.Time       `json:"orderDate"`
	Status            string          `json:"status"`
	SubTotal          decimal.Decimal `json:"subTotal"`
	ShippingFee       decimal.Decimal `json:"shippingFee"`
	Discount          decimal.Decimal `json:"discount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
}

type OrderPatch struct {
	ShippingAddressID *int64  `json:"shippingAddressId,omitempty"`
	Status            *string `json:"status,omitempty"`
}

type NewOrderItem struct {
	OrderID          int64           `json:"orderId"`
	ProductVariantID int64           `json:"productVariantId"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
}

type OrderItemPatch struct {
	Quantity   *int             `json:"quantity,omitempty"`
	UnitPrice  *decimal.Decimal `json:"unitPrice,omitempty"`
	TotalPrice *decimal.Decimal `json:"totalPrice,omitempty"`
}

type AddressInput struct {
	UserID   int64  `json:"userId"`
	Street   string `json:"street" validate:"required"`
	Ward     string `json:"ward" validate:"required"`
	District string `json:"district" validate:"required"`
	Province string `json:"province" validate:"required"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

type NewProduct struct {
	Name             string          `json:"name" validate:"required"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	StockKeepingUnit string          `json:"stockKeepingUnit" validate:"required"`
	Stock            int             `json:"stock" validate:"min=0"`
	CreateByUserID   int64           `json:"createByUserId"`
	CategoryID       int64           `json:"categoryId" validate:"required"`
	VoucherID        *int64          `json:"voucherId,omitempty"`
}

type NewVariant struct {
	ProductID        int64           `validate:"required"`
	CreateByUserID   int64           `validate:"required"`
	VariantName      string          `validate:"required"`
	VariantColor     string          `validate:"required"`
	VariantSize      string          `validate:"required"`
	Price            decimal.Decimal
	Stock            int             `validate:"min=0"`
	StockKeepingUnit string          `validate:"required"`
	VoucherID        *int64
}

type NewReview struct {
	ProductID        int64  `json:"productId" validate:"required"`
	UserID           int64  `json:"userId" validate:"required"`
	ProductVariantID int64  `json:"productVariantId,omitempty"`
	Rating           int    `json:"rating" validate:"min=1,max=5"`
	Comment          string `json:"comment" validate:"required"`
}

type ReviewPatch struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

type UserInput struct {
	ID        int64  `json:"id,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Role      string `json:"role,omitempty"`
}

type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type Signup struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Phone     string `json:"phone,omitempty"`
}

type CheckCode struct {
	ID         string `json:"id" binding:"required"`
	CodeActive string `json:"codeActive" binding:"required"`
}

type EmailOnly struct {
	Email string `json:"email" binding:"required,email"`
}

type ChangePassword struct {
	CodeActive      string `json:"codeActive" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Email           string `json:"email" binding:"required,email"`
}
