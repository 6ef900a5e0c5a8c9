package services

import (
	"context"
	"testing"

	"voxshop_backend/internal/models"
	"voxshop_backend/internal/repositories"
	"voxshop_backend/internal/services/dto"
	"voxshop_backend/internal/supplier"
	"voxshop_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	gotOrder *supplier.Order
	response string
	err      error
}

func (f *fakeSubmitter) SubmitOrder(ctx context.Context, order *supplier.Order) (string, error) {
	f.gotOrder = order
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestSubmitBuildsOrderFromTransaction(t *testing.T) {
	db := setupTestDB(t)
	transactionRepo := repositories.NewTransactionRepository()
	productRepo := repositories.NewProductRepository()
	submitter := &fakeSubmitter{response: "<OrderAck/>"}
	svc := NewFulfillmentService(transactionRepo, productRepo, submitter)

	user := createTestUser(t, db, "buyer@example.com")
	product := createTestProduct(t, db, "VOIP-101", 12900)

	checkoutSvc := NewCheckoutService(transactionRepo, repositories.NewAddressRepository(), repositories.NewCartRepository())
	tx, err := checkoutSvc.Create(db, user.ID, &dto.CreateTransactionRequest{
		Items: []dto.TransactionItemInput{{ProductID: product.ID, Quantity: 2, PriceAtTime: 12900}},
	})
	require.NoError(t, err)
	require.NoError(t, transactionRepo.UpdateDeliveryAddress(db, tx.ID, models.DeliveryAddress{
		HouseNumber: "12", Street: "Marktstraat", City: "Utrecht", Postcode: "3511 AB",
	}))
	require.NoError(t, transactionRepo.UpdateReceiver(db, tx.ID, "Ada", "Buyer", "+31612345678", "ada@example.com"))

	body, err := svc.Submit(context.Background(), db, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "<OrderAck/>", body)

	require.NotNil(t, submitter.gotOrder)
	assert.Equal(t, tx.ID, submitter.gotOrder.Reference)
	assert.Equal(t, "Ada Buyer", submitter.gotOrder.Consignee.Name)
	assert.Equal(t, "Marktstraat", submitter.gotOrder.Consignee.Street)
	require.Len(t, submitter.gotOrder.Lines, 1)
	assert.Equal(t, "VOIP-101", submitter.gotOrder.Lines[0].SKU)
	assert.Equal(t, 2, submitter.gotOrder.Lines[0].Quantity)
}

func TestSubmitRejectsTransactionWithoutItems(t *testing.T) {
	db := setupTestDB(t)
	transactionRepo := repositories.NewTransactionRepository()
	svc := NewFulfillmentService(transactionRepo, repositories.NewProductRepository(), &fakeSubmitter{})

	user := createTestUser(t, db, "buyer@example.com")
	checkoutSvc := NewCheckoutService(transactionRepo, repositories.NewAddressRepository(), repositories.NewCartRepository())
	tx, err := checkoutSvc.Create(db, user.ID, &dto.CreateTransactionRequest{})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), db, tx.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
	assert.Equal(t, "Transaction items not found", appErr.Message)
}

func TestSubmitUnknownTransaction(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFulfillmentService(repositories.NewTransactionRepository(), repositories.NewProductRepository(), &fakeSubmitter{})

	_, err := svc.Submit(context.Background(), db, "missing")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
	assert.Equal(t, "Transaction not found", appErr.Message)
}

func TestSubmitPropagatesSupplierRejection(t *testing.T) {
	db := setupTestDB(t)
	transactionRepo := repositories.NewTransactionRepository()
	submitter := &fakeSubmitter{err: &supplier.HTTPError{StatusCode: 422, Body: "<Error>Unknown SKU</Error>"}}
	svc := NewFulfillmentService(transactionRepo, repositories.NewProductRepository(), submitter)

	user := createTestUser(t, db, "buyer@example.com")
	checkoutSvc := NewCheckoutService(transactionRepo, repositories.NewAddressRepository(), repositories.NewCartRepository())
	tx, err := checkoutSvc.Create(db, user.ID, &dto.CreateTransactionRequest{
		Items: []dto.TransactionItemInput{{ProductID: "p1", Quantity: 1, PriceAtTime: 500}},
	})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), db, tx.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 422, appErr.HTTPCode)
	assert.Equal(t, apperrors.CodeExternalServiceError, appErr.Code)
	assert.Contains(t, appErr.Message, "Unknown SKU")
}
