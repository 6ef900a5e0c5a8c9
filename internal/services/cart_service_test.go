package services

import (
	"testing"

	"voxshop_backend/internal/repositories"
	"voxshop_backend/internal/services/dto"
	"voxshop_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture() (CartService, repositories.CartRepository) {
	cartRepo := repositories.NewCartRepository()
	return NewCartService(cartRepo, repositories.NewProductRepository()), cartRepo
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newCartFixture()
	user := createTestUser(t, db, "buyer@example.com")
	product := createTestProduct(t, db, "VOIP-101", 12900, "https://cdn.example/x1.jpg", "https://cdn.example/x1-side.jpg")

	item, err := svc.AddItem(db, user.ID, &dto.AddCartItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, product.Name, item.ProductName)
	assert.Equal(t, int64(12900), item.ProductPrice)
	assert.Equal(t, "https://cdn.example/x1.jpg", item.ProductImage)
}

func TestDuplicateAddIncrementsQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc, cartRepo := newCartFixture()
	user := createTestUser(t, db, "buyer@example.com")
	product := createTestProduct(t, db, "VOIP-101", 12900)

	_, err := svc.AddItem(db, user.ID, &dto.AddCartItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	item, err := svc.AddItem(db, user.ID, &dto.AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	items, err := cartRepo.FindByOwner(db, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newCartFixture()
	user := createTestUser(t, db, "buyer@example.com")

	_, err := svc.AddItem(db, user.ID, &dto.AddCartItemRequest{ProductID: "missing", Quantity: 1})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestCartIsPerOwner(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newCartFixture()
	u1 := createTestUser(t, db, "u1@example.com")
	u2 := createTestUser(t, db, "u2@example.com")
	product := createTestProduct(t, db, "VOIP-101", 12900)

	item, err := svc.AddItem(db, u1.ID, &dto.AddCartItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	// u2 cannot touch u1's row.
	err = svc.UpdateQuantity(db, u2.ID, item.ID, &dto.UpdateCartItemRequest{Quantity: 5})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)

	items, err := svc.GetCart(db, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateRemoveClear(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newCartFixture()
	user := createTestUser(t, db, "buyer@example.com")
	p1 := createTestProduct(t, db, "VOIP-101", 12900)
	p2 := createTestProduct(t, db, "VOIP-202", 4500)

	item1, err := svc.AddItem(db, user.ID, &dto.AddCartItemRequest{ProductID: p1.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(db, user.ID, &dto.AddCartItemRequest{ProductID: p2.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(db, user.ID, item1.ID, &dto.UpdateCartItemRequest{Quantity: 4}))
	items, err := svc.GetCart(db, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NoError(t, svc.RemoveItem(db, user.ID, item1.ID))
	items, err = svc.GetCart(db, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, svc.Clear(db, user.ID))
	items, err = svc.GetCart(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWishlistService(repositories.NewWishlistRepository(), repositories.NewProductRepository())
	user := createTestUser(t, db, "buyer@example.com")
	product := createTestProduct(t, db, "VOIP-101", 12900)

	first, err := svc.AddItem(db, user.ID, &dto.AddWishlistItemRequest{ProductID: product.ID})
	require.NoError(t, err)
	second, err := svc.AddItem(db, user.ID, &dto.AddWishlistItemRequest{ProductID: product.ID})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	items, err := svc.List(db, user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
