package handlers

import (
	"voxshop_backend/internal/services"
	"voxshop_backend/internal/validator"
)

// AppHandlers groups every HTTP handler; routes.Setup walks this to
// register them.
type AppHandlers struct {
	Auth     *AuthHandler
	Product  *ProductHandler
	Cart     *CartHandler
	Wishlist *WishlistHandler
	Address  *AddressHandler
	Checkout *CheckoutHandler
	Contact  *ContactHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:     NewAuthHandler(base, container.Auth),
		Product:  NewProductHandler(base, container.Product),
		Cart:     NewCartHandler(base, container.Cart),
		Wishlist: NewWishlistHandler(base, container.Wishlist),
		Address:  NewAddressHandler(base, container.Address),
		Checkout: NewCheckoutHandler(base, container.Checkout, container.Payment, container.Fulfillment, container.Notification),
		Contact:  NewContactHandler(base, container.Contact),
	}
}
