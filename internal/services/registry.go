package services

import (
	"voxshop_backend/internal/billing"
	"voxshop_backend/internal/email"
	"voxshop_backend/internal/repositories"
)

// ServiceContainer wires every service once at startup; handlers pull from
// it instead of constructing their own dependencies.
type ServiceContainer struct {
	Auth         AuthService
	Product      ProductService
	Cart         CartService
	Wishlist     WishlistService
	Address      AddressService
	Checkout     CheckoutService
	Payment      PaymentService
	Fulfillment  FulfillmentService
	Notification NotificationService
	Contact      ContactService
}

// Clients groups the external platform clients the services depend on.
type Clients struct {
	Gateway  billing.PaymentGateway
	Supplier interface {
		OrderSubmitter
		CatalogFetcher
	}
	Mail    MailSender
	Contact email.Sender
}

// Settings carries the store-level configuration services need.
type Settings struct {
	StoreName    string
	Currency     string
	SupportEmail string
}

func NewServiceContainer(clients Clients, settings Settings) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	productRepo := repositories.NewProductRepository()
	cartRepo := repositories.NewCartRepository()
	wishlistRepo := repositories.NewWishlistRepository()
	addressRepo := repositories.NewAddressRepository()
	transactionRepo := repositories.NewTransactionRepository()
	contactRepo := repositories.NewContactRepository()

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo),
		Product:      NewProductService(productRepo, clients.Supplier, settings.Currency),
		Cart:         NewCartService(cartRepo, productRepo),
		Wishlist:     NewWishlistService(wishlistRepo, productRepo),
		Address:      NewAddressService(addressRepo),
		Checkout:     NewCheckoutService(transactionRepo, addressRepo, cartRepo),
		Payment:      NewPaymentService(transactionRepo, clients.Gateway, settings.Currency),
		Fulfillment:  NewFulfillmentService(transactionRepo, productRepo, clients.Supplier),
		Notification: NewNotificationService(transactionRepo, productRepo, clients.Mail, settings.StoreName, settings.Currency),
		Contact:      NewContactService(contactRepo, clients.Contact, settings.SupportEmail),
	}
}
