package services

import (
	"testing"

	"voxshop_backend/internal/models"
	"voxshop_backend/internal/repositories"
	"voxshop_backend/internal/services/dto"
	"voxshop_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutFixture() (CheckoutService, repositories.TransactionRepository, repositories.CartRepository) {
	transactionRepo := repositories.NewTransactionRepository()
	addressRepo := repositories.NewAddressRepository()
	cartRepo := repositories.NewCartRepository()
	return NewCheckoutService(transactionRepo, addressRepo, cartRepo), transactionRepo, cartRepo
}

func int64ptr(v int64) *int64 { return &v }

func TestCreateComputesAmountFromItems(t *testing.T) {
	db := setupTestDB(t)
	svc, repo, _ := newCheckoutFixture()
	user := createTestUser(t, db, "buyer@example.com")

	tx, err := svc.Create(db, user.ID, &dto.CreateTransactionRequest{
		Items: []dto.TransactionItemInput{
			{ProductID: "p1", Quantity: 2, PriceAtTime: 500},
			{ProductID: "p2", Quantity: 1, PriceAtTime: 1000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), tx.Amount)
	assert.Equal(t, models.TransactionStatusPending, tx.Status)

	persisted, err := repo.FindByIDWithItems(db, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), persisted.Amount)
	require.Len(t, persisted.Items, 2)
	assert.Equal(t, tx.ID, persisted.Items[0].TransactionID)
}

func TestCreateAcceptsMatchingExplicitAmount(t *testing.T) {
	db := setupTestDB(t)
	svc, _, _ := newCheckoutFixture()
	user := createTestUser(t, db, "buyer@example.com")

	tx, err := svc.Create(db, user.ID, &dto.CreateTransactionRequest{
		Amount: int64ptr(1500),
		Items: []dto.TransactionItemInput{
			{ProductID: "p1", Quantity: 3, PriceAtTime: 500},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1500), tx.Amount)
}

func TestCreateRejectsAmountMismatch(t *testing.T) {
	db := setupTestDB(t)
	svc, _, _ := newCheckoutFixture()
	user := createTestUser(t, db, "buyer@example.com")

	_, err := svc.Create(db, user.ID, &dto.CreateTransactionRequest{
		Amount: int64ptr(999),
		Items: []dto.TransactionItemInput{
			{ProductID: "p1", Quantity: 2, PriceAtTime: 500},
		},
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "does not match")
}

func TestCreateWithNoItems(t *testing.T) {
	db := setupTestDB(t)
	svc, repo, _ := newCheckoutFixture()
	user := createTestUser(t, db, "buyer@example.com")

	tx, err := svc.Create(db, user.ID, &dto.CreateTransactionRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), tx.Amount)

	items, err := repo.FindItems(db, tx.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddressAndReceiverRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc, repo, _ := newCheckoutFixture()
	user := createTestUser(t, db, "buyer@example.com")

	tx, err := svc.Create(db, user.ID, &dto.CreateTransactionRequest{
		Items: []dto.TransactionItemInput{{ProductID: "p1", Quantity: 1, PriceAtTime: 500}},
	})
	require.NoError(t, err)

	session, err := svc.Session(db, user.ID, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "addressing", session.Step)
	assert.ElementsMatch(t, []string{"delivery address", "receiver email"}, session.MissingFields)

	require.NoError(t, svc.SetDeliveryAddress(db, user.ID, tx.ID, &dto.SetDeliveryAddressRequest{
		HouseNumber: "12",
		Street:      "Marktstraat",
		City:        "Utrecht",
		Postcode:    "3511 AB",
	}))
	require.NoError(t, svc.SetReceiver(db, user.ID, tx.ID, &dto.SetReceiverRequest{
		FirstName: "Ada",
		LastName:  "Buyer",
		Phone:     "+31612345678",
		Email:     "ada@example.com",
	}))

	persisted, err := repo.FindByID(db, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marktstraat", persisted.DeliveryAddress.Street)
	assert.Equal(t, "ada@example.com", persisted.ReceiverEmail)

	session, err = svc.Session(db, user.ID, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "paying", session.Step)
	assert.Empty(t, session.MissingFields)
}

func TestSetDeliveryAddressFromSavedAddress(t *testing.T) {
	db := setupTestDB(t)
	svc, repo, _ := newCheckoutFixture()
	addressRepo := repositories.NewAddressRepository()
	user := createTestUser(t, db, "buyer@example.com")
	other := createTestUser(t, db, "other@example.com")

	saved := &models.Address{
		OwnerID:     user.ID,
		HouseNumber: "7",
		Street:      "Kanaalweg",
		City:        "Delft",
		Postcode:    "2628 CD",
	}
	require.NoError(t, addressRepo.Create(db, saved))

	tx, err := svc.Create(db, user.ID, &dto.CreateTransactionRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.SetDeliveryAddress(db, user.ID, tx.ID, &dto.SetDeliveryAddressRequest{AddressID: saved.ID}))

	persisted, err := repo.FindByID(db, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kanaalweg", persisted.DeliveryAddress.Street)

	// A saved address belonging to someone else is rejected.
	otherTx, err := svc.Create(db, other.ID, &dto.CreateTransactionRequest{})
	require.NoError(t, err)
	err = svc.SetDeliveryAddress(db, other.ID, otherTx.ID, &dto.SetDeliveryAddressRequest{AddressID: saved.ID})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)
}

func TestHistoryIsScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc, _, _ := newCheckoutFixture()
	u1 := createTestUser(t, db, "u1@example.com")
	u2 := createTestUser(t, db, "u2@example.com")

	_, err := svc.Create(db, u1.ID, &dto.CreateTransactionRequest{
		Items: []dto.TransactionItemInput{{ProductID: "p1", Quantity: 1, PriceAtTime: 1000}},
	})
	require.NoError(t, err)
	_, err = svc.Create(db, u1.ID, &dto.CreateTransactionRequest{
		Items: []dto.TransactionItemInput{{ProductID: "p2", Quantity: 2, PriceAtTime: 500}},
	})
	require.NoError(t, err)
	foreign, err := svc.Create(db, u2.ID, &dto.CreateTransactionRequest{})
	require.NoError(t, err)

	history, err := svc.History(db, u1.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, tx := range history {
		assert.Equal(t, u1.ID, tx.OwnerID)
		assert.Equal(t, int64(1000), tx.Amount)
	}

	// Another user's transaction stays invisible.
	_, err = svc.GetByID(db, u1.ID, foreign.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)
}

func TestMarkSucceededClearsCartAndIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc, repo, cartRepo := newCheckoutFixture()
	user := createTestUser(t, db, "buyer@example.com")
	product := createTestProduct(t, db, "VOIP-101", 12900)

	require.NoError(t, cartRepo.Create(db, &models.CartItem{
		OwnerID:      user.ID,
		ProductID:    product.ID,
		Quantity:     1,
		ProductName:  product.Name,
		ProductPrice: product.Price,
	}))

	tx, err := svc.Create(db, user.ID, &dto.CreateTransactionRequest{
		Items: []dto.TransactionItemInput{{ProductID: product.ID, Quantity: 1, PriceAtTime: 12900}},
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetPaymentIntentID(db, tx.ID, "pi_123"))

	resolved, err := svc.MarkSucceeded(db, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusSucceeded, resolved.Status)

	items, err := cartRepo.FindByOwner(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// The success page may reload; the second call must not fail.
	again, err := svc.MarkSucceeded(db, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusSucceeded, again.Status)
}

func TestMarkSucceededRejectsCancelledTransaction(t *testing.T) {
	db := setupTestDB(t)
	svc, repo, _ := newCheckoutFixture()
	user := createTestUser(t, db, "buyer@example.com")

	tx, err := svc.Create(db, user.ID, &dto.CreateTransactionRequest{})
	require.NoError(t, err)
	require.NoError(t, repo.SetPaymentIntentID(db, tx.ID, "pi_dead"))
	require.NoError(t, repo.UpdateStatus(db, tx.ID, models.TransactionStatusPending, models.TransactionStatusCancelled))

	_, err = svc.MarkSucceeded(db, "pi_dead")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestMutationLockedOnceResolved(t *testing.T) {
	db := setupTestDB(t)
	svc, repo, _ := newCheckoutFixture()
	user := createTestUser(t, db, "buyer@example.com")

	tx, err := svc.Create(db, user.ID, &dto.CreateTransactionRequest{})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(db, tx.ID, models.TransactionStatusPending, models.TransactionStatusSucceeded))

	err = svc.SetReceiver(db, user.ID, tx.ID, &dto.SetReceiverRequest{
		FirstName: "Ada", LastName: "Buyer", Phone: "+31612345678", Email: "ada@example.com",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}
