package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/safar/storefront/internal/addressbook"
	"github.com/safar/storefront/internal/auth"
	"github.com/safar/storefront/internal/backend"
	"github.com/safar/storefront/internal/cartview"
	"github.com/safar/storefront/internal/catalog"
	"github.com/safar/storefront/internal/checkout"
	"github.com/safar/storefront/internal/config"
	"github.com/safar/storefront/internal/database"
	"github.com/safar/storefront/internal/guestcart"
	"github.com/safar/storefront/internal/logger"
	"github.com/safar/storefront/internal/notify"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer is built from. DB is optional
// and only reported by the health check.
type Deps struct {
	Backend   *backend.Services
	Locations addressbook.LocationSource
	Guests    *guestcart.Repository
	Board     *notify.Board
	Verifier  *auth.Verifier
	DB        *sql.DB
}

type handler struct {
	cfg       *config.Config
	api       *backend.Services
	locations addressbook.LocationSource
	guests    *guestcart.Repository
	board     *notify.Board
	db        *sql.DB

	cart     *cartview.Controller
	adder    *cartview.Adder
	merger   *cartview.Merger
	checkout *checkout.Service
	detail   *catalog.Loader
	book     *addressbook.Book
}

func NewRouter(cfg *config.Config, deps Deps, log *zap.Logger) *gin.Engine {
	log = logger.OrNop(log)
	api := deps.Backend

	adder := cartview.NewAdder(api.Carts, deps.Board, log)
	h := &handler{
		cfg:       cfg,
		api:       api,
		locations: deps.Locations,
		guests:    deps.Guests,
		board:     deps.Board,
		db:        deps.DB,
		cart:      cartview.NewController(api.Carts, log),
		adder:     adder,
		merger:    cartview.NewMerger(adder, deps.Guests, log),
		checkout:  checkout.NewService(api.Carts, api.Orders, api.Addresses, cfg.Checkout.StaffID, log),
		detail:    catalog.NewLoader(api.Products, log),
		book:      addressbook.NewBook(api.Addresses, log),
	}

	engine := gin.New()
	engine.Use(RequestID(log.Named("http")))
	engine.Use(Logging())
	engine.Use(Recovery())
	engine.Use(CORS(&cfg.CORS))
	engine.Use(RateLimit(&cfg.RateLimit))

	engine.NoRoute(func(c *gin.Context) {
		fail(c, errRouteNotFound)
	})

	v1 := engine.Group("/api/v1")
	h.registerPublic(v1)

	authed := v1.Group("")
	authed.Use(RequireAuth(deps.Verifier))
	h.registerAuthenticated(authed)

	admin := v1.Group("/admin")
	admin.Use(RequireAuth(deps.Verifier), RequireAdmin())
	h.registerAdmin(admin)

	return engine
}

func (h *handler) registerPublic(r *gin.RouterGroup) {
	r.GET("/health", h.health)

	r.GET("/products", h.listProducts)
	r.GET("/products/:id", h.productDetail)
	r.GET("/categories", h.listCategories)
	r.GET("/categories/:id", h.getCategory)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.login)
		authGroup.POST("/signup", h.signup)
		authGroup.POST("/check-code", h.checkCode)
		authGroup.POST("/retry-active", h.retryActive)
		authGroup.POST("/retry-password", h.retryPassword)
		authGroup.POST("/change-password", h.changePassword)
	}

	r.GET("/locations", h.locationsCascade)

	guest := r.Group("/guest-cart")
	guest.Use(GuestSession(&h.cfg.GuestCart))
	{
		guest.GET("", h.guestCart)
		guest.DELETE("", h.guestClear)
		guest.POST("/items", h.guestAdd)
		guest.PATCH("/items/:variantId", h.guestUpdateQuantity)
		guest.DELETE("/items/:variantId", h.guestRemove)
		guest.POST("/selection", h.guestSelect)
	}
}

func (h *handler) registerAuthenticated(r *gin.RouterGroup) {
	cart := r.Group("/cart")
	{
		cart.GET("", h.getCart)
		cart.POST("/items", h.addToCart)
		cart.PATCH("/items/:id", h.updateCartQuantity)
		cart.DELETE("/items/:id", h.removeCartItem)
		cart.POST("/remove-selected", h.removeSelected)
		cart.POST("/merge-guest", h.mergeGuest)
	}

	r.GET("/checkout", h.checkoutPreview)
	r.POST("/checkout/orders", h.placeOrder)

	r.GET("/orders", h.listOrders)
	r.GET("/orders/:id", h.getOrder)

	addresses := r.Group("/addresses")
	{
		addresses.GET("", h.listAddresses)
		addresses.POST("", h.createAddress)
		addresses.PATCH("/:id", h.updateAddress)
		addresses.DELETE("/:id", h.deleteAddress)
	}

	r.GET("/profile", h.profile)
	r.PATCH("/profile", h.updateProfile)

	r.GET("/notifications", h.notifications)
	r.DELETE("/notifications/:id", h.dismissNotification)

	r.POST("/reviews", h.createReview)
	r.PATCH("/reviews/:id", h.updateReview)
}

func (h *handler) registerAdmin(r *gin.RouterGroup) {
	r.POST("/products", h.adminCreateProduct)
	r.GET("/variants", h.adminListVariants)
	r.POST("/variants", h.adminCreateVariant)
	r.GET("/variant-options", h.adminVariantOptions)
	r.POST("/users", h.adminCreateUser)
	r.PATCH("/users", h.adminUpdateUser)
	r.DELETE("/users/:id", h.adminDeleteUser)
}

func (h *handler) health(c *gin.Context) {
	status := gin.H{"status": "ok", "database": "disabled"}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, h.db); err != nil {
			requestLogger(c).Warn("database ping failed", zap.Error(err))
			status["status"] = "degraded"
			status["database"] = "down"
			c.JSON(http.StatusServiceUnavailable, Response{
				Success:   false,
				Data:      status,
				Code:      http.StatusServiceUnavailable,
				Message:   "degraded",
				RequestID: requestID(c),
			})
			return
		}
		status["database"] = "ok"
	}
	ok(c, status, "ok")
}
