package httpapi

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/safar/storefront/internal/apperr"
	"github.com/safar/storefront/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	variantSizePresets  = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL"}
	variantColorPresets = []string{"Black", "White", "Red", "Blue", "Green", "Yellow", "Gray", "Pink", "Brown", "Navy"}
)

func (h *handler) adminCreateProduct(c *gin.Context) {
	var in models.NewProduct
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p := principal(c)
	in.CreateByUserID = p.UserID

	product, err := h.api.Products.CreateProduct(c.Request.Context(), p.Token, in)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, product, "Product created")
}

func (h *handler) adminListVariants(c *gin.Context) {
	variants, err := h.api.Variants.ListVariants(c.Request.Context(), principal(c).Token)
	if err != nil {
		fail(c, err)
		return
	}
	if variants == nil {
		variants = []models.ProductVariant{}
	}
	ok(c, variants, "ok")
}

func (h *handler) adminVariantOptions(c *gin.Context) {
	ok(c, gin.H{"sizes": variantSizePresets, "colors": variantColorPresets}, "ok")
}

// variantForm reads the multipart fields of a new variant. Required text
// fields are checked by the backend client before anything is sent.
func variantForm(c *gin.Context, userID int64) (models.NewVariant, error) {
	in := models.NewVariant{
		CreateByUserID:   userID,
		VariantName:      strings.TrimSpace(c.PostForm("variantName")),
		VariantColor:     strings.TrimSpace(c.PostForm("variantColor")),
		VariantSize:      strings.TrimSpace(c.PostForm("variantSize")),
		StockKeepingUnit: strings.TrimSpace(c.PostForm("stockKeepingUnit")),
	}

	var err error
	if in.ProductID, err = strconv.ParseInt(c.PostForm("productId"), 10, 64); err != nil {
		return in, fmt.Errorf("productId: %w", err)
	}
	if raw := c.PostForm("price"); raw != "" {
		if in.Price, err = decimal.NewFromString(raw); err != nil {
			return in, fmt.Errorf("price: %w", err)
		}
	}
	if raw := c.PostForm("stock"); raw != "" {
		if in.Stock, err = strconv.Atoi(raw); err != nil {
			return in, fmt.Errorf("stock: %w", err)
		}
	}
	if raw := c.PostForm("voucherId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return in, fmt.Errorf("voucherId: %w", err)
		}
		in.VoucherID = &id
	}
	return in, nil
}

func (h *handler) adminCreateVariant(c *gin.Context) {
	p := principal(c)
	in, err := variantForm(c, p.UserID)
	if err != nil {
		badRequest(c, err)
		return
	}

	var (
		name  string
		image io.Reader
	)
	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			fail(c, apperr.Wrap(err, apperr.CodeBadRequest, "unreadable image"))
			return
		}
		defer f.Close()
		name, image = fh.Filename, f
	}

	variant, err := h.api.Variants.CreateVariant(c.Request.Context(), p.Token, in, name, image)
	if err != nil {
		fail(c, err)
		return
	}
	requestLogger(c).Info("variant created",
		zap.Int64("variant_id", variant.ID), zap.Int64("product_id", in.ProductID))
	created(c, variant, "Variant created")
}

func (h *handler) adminCreateUser(c *gin.Context) {
	var in models.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.api.Users.CreateUser(c.Request.Context(), principal(c).Token, in)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, user, "User created")
}

func (h *handler) adminUpdateUser(c *gin.Context) {
	var in models.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if in.ID == 0 {
		fail(c, apperr.Validation("id is required"))
		return
	}
	user, err := h.api.Users.UpdateUserByAdmin(c.Request.Context(), principal(c).Token, in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user, "User updated")
}

func (h *handler) adminDeleteUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.api.Users.DeleteUser(c.Request.Context(), principal(c).Token, id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil, "User deleted")
}
