package models

// CartItem holds one catalog product in a user's cart. At most one row per
// (owner, product) pair exists; adding the same product again increments
// Quantity instead of inserting. Name, image and price are snapshotted so
// the cart stays stable across catalog syncs.
type CartItem struct {
	BaseModel
	OwnerID      string `gorm:"not null;uniqueIndex:idx_cart_owner_product" json:"owner_id"`
	ProductID    string `gorm:"not null;uniqueIndex:idx_cart_owner_product" json:"product_id"`
	Quantity     int    `gorm:"not null;default:1" json:"quantity"`
	ProductName  string `gorm:"not null" json:"product_name"`
	ProductImage string `json:"product_image"`
	ProductPrice int64  `gorm:"not null" json:"product_price"` // minor units snapshot
}

// WishlistItem is the cart's quantity-less sibling.
type WishlistItem struct {
	BaseModel
	OwnerID      string `gorm:"not null;uniqueIndex:idx_wishlist_owner_product" json:"owner_id"`
	ProductID    string `gorm:"not null;uniqueIndex:idx_wishlist_owner_product" json:"product_id"`
	ProductName  string `gorm:"not null" json:"product_name"`
	ProductImage string `json:"product_image"`
	ProductPrice int64  `gorm:"not null" json:"product_price"`
}
