package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"voxshop_backend/database"
	"voxshop_backend/internal/auth"
	"voxshop_backend/internal/billing"
	"voxshop_backend/internal/handlers"
	"voxshop_backend/internal/models"
	"voxshop_backend/internal/services"
	"voxshop_backend/internal/supplier"
	"voxshop_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubGateway struct {
	cancelled []string
}

func (g *stubGateway) CreateIntent(ctx context.Context, params billing.IntentParams) (*billing.Intent, error) {
	return &billing.Intent{ID: "pi_test", ClientSecret: "cs_test"}, nil
}

func (g *stubGateway) CancelIntent(ctx context.Context, intentID string) error {
	g.cancelled = append(g.cancelled, intentID)
	return nil
}

type stubSupplier struct{}

func (s *stubSupplier) SubmitOrder(ctx context.Context, order *supplier.Order) (string, error) {
	return "<OrderAck>" + order.Reference + "</OrderAck>", nil
}

func (s *stubSupplier) FetchCatalog(ctx context.Context) ([]supplier.FeedProduct, error) {
	return nil, nil
}

type stubMail struct {
	sent int
}

func (m *stubMail) SendMail(ctx context.Context, to, subject, htmlBody string) error {
	m.sent++
	return nil
}

type stubContact struct{}

func (stubContact) SendContactMessage(toSupport, fromName, fromEmail, subject, body string) error {
	return nil
}

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	gateway *stubGateway
	mail    *stubMail
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.Init("test-secret", 60)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	gateway := &stubGateway{}
	mail := &stubMail{}
	container := services.NewServiceContainer(
		services.Clients{
			Gateway:  gateway,
			Supplier: &stubSupplier{},
			Mail:     mail,
			Contact:  stubContact{},
		},
		services.Settings{StoreName: "VoxShop", Currency: "eur", SupportEmail: "support@voxshop.example"},
	)

	router := Setup(db, handlers.NewAppHandlers(container, validator.New()))
	return &testEnv{router: router, db: db, gateway: gateway, mail: mail}
}

func (e *testEnv) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	env := setupEnv(t)

	// Anonymous session carries the whole flow.
	rec := env.do(t, http.MethodPost, "/api/v1/auth/anonymous", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var session struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(t, rec, &session)
	token := session.AccessToken
	require.NotEmpty(t, token)

	product := &models.Product{SKU: "VOIP-101", Name: "Desk Phone X1", Price: 12900, Currency: "eur", InStock: true}
	require.NoError(t, env.db.Create(product).Error)

	rec = env.do(t, http.MethodPost, "/api/v1/cart", token, gin.H{"product_id": product.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/transactions", token, gin.H{
		"items": []gin.H{{"product_id": product.ID, "quantity": 2, "price_at_time": 12900}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tx struct {
		ID     string `json:"id"`
		Amount int64  `json:"amount"`
	}
	decode(t, rec, &tx)
	assert.Equal(t, int64(25800), tx.Amount)

	// Payment stays locked until address and receiver are captured.
	rec = env.do(t, http.MethodPost, "/api/v1/create-payment-intent", token, gin.H{
		"amount": 25800, "transactionId": tx.ID,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "missing_fields")

	rec = env.do(t, http.MethodPut, "/api/v1/transactions/"+tx.ID+"/delivery-address", token, gin.H{
		"house_number": "12", "street": "Marktstraat", "city": "Utrecht", "postcode": "3511 AB",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPut, "/api/v1/transactions/"+tx.ID+"/receiver", token, gin.H{
		"first_name": "Ada", "last_name": "Buyer", "phone": "+31612345678", "email": "ada@example.com",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/create-payment-intent", token, gin.H{
		"amount": 25800, "transactionId": tx.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var intent struct {
		ClientSecret string `json:"clientSecret"`
	}
	decode(t, rec, &intent)
	assert.Equal(t, "cs_test", intent.ClientSecret)

	// Success page resolves by the redirect's payment_intent parameter.
	rec = env.do(t, http.MethodPut, "/api/v1/transactions/succeeded", token, gin.H{"payment_intent": "pi_test"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resolved struct {
		Status string `json:"status"`
	}
	decode(t, rec, &resolved)
	assert.Equal(t, "succeeded", resolved.Status)

	// The cart was cleared by the successful checkout.
	rec = env.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart struct {
		Items []json.RawMessage `json:"items"`
	}
	decode(t, rec, &cart)
	assert.Empty(t, cart.Items)

	rec = env.do(t, http.MethodPost, "/api/v1/submit-order", token, gin.H{"transaction_id": tx.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "OrderAck")

	rec = env.do(t, http.MethodPost, "/api/v1/emails/purchase-success", token, gin.H{"transaction_id": tx.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, env.mail.sent)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/checkout/session/%s", tx.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "submitted")
}

func TestCancelPaymentIntentOverHTTP(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/anonymous", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var session struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &session)

	rec = env.do(t, http.MethodPost, "/api/v1/transactions", session.AccessToken, gin.H{
		"items": []gin.H{{"product_id": "p1", "quantity": 1, "price_at_time": 500}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var tx struct {
		ID string `json:"id"`
	}
	decode(t, rec, &tx)

	// No intent stored yet: cancel conflicts.
	rec = env.do(t, http.MethodDelete, "/api/v1/create-payment-intent", session.AccessToken, gin.H{"id": tx.ID})
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	require.NoError(t, env.db.Model(&models.Transaction{}).Where("id = ?", tx.ID).
		Update("payment_intent_id", "pi_cancel_me").Error)

	rec = env.do(t, http.MethodDelete, "/api/v1/create-payment-intent", session.AccessToken, gin.H{"id": tx.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "message")
	assert.Equal(t, []string{"pi_cancel_me"}, env.gateway.cancelled)
}

// The storefront bridge endpoints answer errors with a flat string error
// field, not the envelope the rest of the API uses.
func TestBridgeErrorBodiesAreFlat(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/anonymous", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var session struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &session)
	token := session.AccessToken

	rec = env.do(t, http.MethodPost, "/api/v1/emails/purchase-success", token, gin.H{"transaction_id": "missing"})
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	var mailErr struct {
		Error string `json:"error"`
	}
	decode(t, rec, &mailErr)
	assert.Equal(t, "Transaction not found", mailErr.Error)

	rec = env.do(t, http.MethodPost, "/api/v1/submit-order", token, gin.H{"transaction_id": "missing"})
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	var orderErr struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	decode(t, rec, &orderErr)
	assert.False(t, orderErr.Success)
	assert.Equal(t, "Transaction not found", orderErr.Error)
}

func TestSavedAddressesRequireRegisteredAccount(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/anonymous", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var anon struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &anon)

	rec = env.do(t, http.MethodGet, "/api/v1/addresses", anon.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "shopper@example.com", "password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var registered struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &registered)

	rec = env.do(t, http.MethodGet, "/api/v1/addresses", registered.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupEnv(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/transactions"},
		{http.MethodPost, "/api/v1/create-payment-intent"},
		{http.MethodPost, "/api/v1/submit-order"},
	} {
		rec := env.do(t, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}

	// Catalog and contact stay public.
	rec := env.do(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/anonymous", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var session struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &session)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/products/sync", session.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, err := auth.GenerateToken("admin-1", string(models.UserRoleAdmin), false)
	require.NoError(t, err)
	rec = env.do(t, http.MethodPost, "/api/v1/admin/products/sync", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
