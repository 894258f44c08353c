package backend

// Services bundles one service per backend resource over a shared client.
type Services struct {
	Carts      *CartService
	Orders     *OrderService
	Addresses  *AddressService
	Products   *ProductService
	Variants   *VariantService
	Categories *CategoryService
	Reviews    *ReviewService
	Users      *UserService
	Auth       *AuthService
}

func NewServices(c *Client) *Services {
	return &Services{
		Carts:      NewCartService(c),
		Orders:     NewOrderService(c),
		Addresses:  NewAddressService(c),
		Products:   NewProductService(c),
		Variants:   NewVariantService(c),
		Categories: NewCategoryService(c),
		Reviews:    NewReviewService(c),
		Users:      NewUserService(c),
		Auth:       NewAuthService(c),
	}
}
