package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"fundraiser-store/internal/checkout"
	"fundraiser-store/internal/domain"
	"fundraiser-store/internal/mailer"
	"fundraiser-store/internal/notify"
	"fundraiser-store/internal/order"
	"fundraiser-store/internal/payment"
	cartrepo "fundraiser-store/internal/repository/cart"
	orderrepo "fundraiser-store/internal/repository/order"
	"fundraiser-store/internal/repository/pending"
	productrepo "fundraiser-store/internal/repository/product"
	"fundraiser-store/internal/seed"
	cartsvc "fundraiser-store/internal/service/cart"
	productsvc "fundraiser-store/internal/service/product"
	"fundraiser-store/internal/service/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminToken = "admin-secret"

func TestMain(m *testing.M) {
	domain.UseNumericJSON()
	os.Exit(m.Run())
}

type stubMailProvider struct {
	sent []mailer.Message
	err  error
}

func (s *stubMailProvider) Send(_ context.Context, msg mailer.Message) (mailer.SendResult, error) {
	s.sent = append(s.sent, msg)
	if s.err != nil {
		return mailer.SendResult{}, s.err
	}
	return mailer.SendResult{ID: "msg-1", StatusCode: 202}, nil
}

type testEnv struct {
	router  *gin.Engine
	gateway *payment.Fake
	orders  *orderrepo.Memory
	pending pending.Repository
	mail    *stubMailProvider
	carts   *cartsvc.Service
	bridges *checkout.Registry
}

func newTestEnv(t *testing.T, checks map[string]ReadyCheck) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)

	env := &testEnv{
		gateway: payment.NewFake(),
		orders:  orderrepo.NewMemory(),
		pending: pending.NewMemory(),
		mail:    &stubMailProvider{},
		carts:   cartsvc.New(cartrepo.NewMemory(), logger),
		bridges: checkout.NewRegistry(time.Hour),
	}
	submitter := order.NewSubmitter(env.gateway, env.orders, env.pending, notify.Nop{}, env.carts, logger)

	router, err := buildRouter(logger, nil, Deps{
		Sessions:    session.New("test-secret", time.Hour),
		Products:    productsvc.New(productrepo.NewMemory(seed.Catalog()...)),
		Carts:       env.carts,
		Bridges:     env.bridges,
		Payments:    env.gateway,
		Submitter:   submitter,
		Mailer:      mailer.NewService(env.mail, "DCDC Fundraiser Store <orders@potomacimprints.com>", logger),
		Pending:     env.pending,
		Orders:      env.orders,
		AdminToken:  adminToken,
		CORSOrigins: []string{"http://localhost:3000"},
		ReadyChecks: checks,
	})
	require.NoError(t, err)
	env.router = router
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) session(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/session", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

var completeCustomer = map[string]any{
	"customerInfo": map[string]string{
		"firstName":  "Jane",
		"lastName":   "Doe",
		"email":      "jane@example.com",
		"phone":      "555-0100",
		"dancerName": "Ava",
	},
}

func hoodieSelection(qty int) map[string]any {
	return map[string]any{"sizes": map[string]int{"Large": qty}}
}

func TestHealthAndReady(t *testing.T) {
	env := newTestEnv(t, nil)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/healthz", nil, "").Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/readyz", nil, "").Code)

	down := newTestEnv(t, map[string]ReadyCheck{"redis": func(context.Context) error { return errors.New("down") }})
	rec := down.do(t, http.MethodGet, "/readyz", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis not reachable")
}

func TestProducts(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.0, decode(t, rec)["count"])

	rec = env.do(t, http.MethodGet, "/api/products/dcdc-hoodie", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 36.0, decode(t, rec)["price"])

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/products/nope", nil, "").Code)
}

func TestCart_AutoSessionCookie(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/cart", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), sessionCookie+"=")
	assert.NotEmpty(t, rec.Header().Get("X-Cart-Session"))
	body := decode(t, rec)
	assert.Equal(t, []any{}, body["items"])
	assert.Equal(t, 0.0, body["totalPrice"])
}

func TestCart_SelectionMergeAndRemove(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.session(t)

	rec := env.do(t, http.MethodPost, "/api/products/dcdc-hoodie/selection", hoodieSelection(1), token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 36.0, decode(t, rec)["totalPrice"])

	rec = env.do(t, http.MethodPost, "/api/cart/lines", map[string]any{
		"productId": "dcdc-hoodie",
		"price":     1,
		"sizes":     []map[string]any{{"size": "Large", "quantity": 1}},
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/cart", nil, token)
	body := decode(t, rec)
	assert.Equal(t, 72.0, body["totalPrice"])
	assert.Equal(t, 2.0, body["totalItems"])
	assert.Len(t, body["items"], 1)

	rec = env.do(t, http.MethodDelete, "/api/cart/lines/dcdc-hoodie", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, decode(t, rec)["totalPrice"])
}

func TestCart_JerseyLines(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.session(t)

	rec := env.do(t, http.MethodPost, "/api/products/dcdc-jersey/selection", map[string]any{"sizes": map[string]int{"Medium": 1}}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, name := range []string{"AVA", "MIA"} {
		rec = env.do(t, http.MethodPost, "/api/products/dcdc-jersey/selection", map[string]any{"sizes": map[string]int{"Medium": 1}, "jerseyName": name}, token)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/cart/lines/dcdc-jersey?jerseyName=AVA", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "MIA", items[0].(map[string]any)["jerseyName"])

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/cart", nil, token).Code)
}

func TestCart_InvalidSelections(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.session(t)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/products/dcdc-hoodie/selection", hoodieSelection(0), token).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/products/dcdc-hoodie/selection", map[string]any{"sizes": map[string]int{"XS": 1}}, token).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/api/products/nope/selection", hoodieSelection(1), token).Code)
}

func TestCheckout_Validate(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.session(t)

	rec := env.do(t, http.MethodPost, "/api/checkout/validate", map[string]any{"customerInfo": map[string]string{"firstName": "Jane", "email": "  "}}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, []any{"lastName", "email", "phone", "dancerName"}, body["missing"])

	rec = env.do(t, http.MethodPost, "/api/checkout/validate", completeCustomer, token)
	assert.Equal(t, true, decode(t, rec)["valid"])
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.session(t)

	rec := env.do(t, http.MethodPost, "/api/checkout/orders", completeCustomer, token)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, env.gateway.Creates)
}

func TestCheckout_RejectedRenderRegistersNothing(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/api/checkout/orders", completeCustomer, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, env.bridges.Len())

	token := env.session(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/products/dcdc-hoodie/selection", hoodieSelection(1), token).Code)
	id := decode(t, env.do(t, http.MethodPost, "/api/checkout/orders", completeCustomer, token))["id"].(string)
	require.Equal(t, 1, env.bridges.Len())

	rec = env.do(t, http.MethodPost, "/api/checkout/orders", map[string]any{"customerInfo": map[string]string{"firstName": "Jane"}}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, env.bridges.Len())
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/api/checkout/orders/"+id+"/capture", nil, token).Code)
}

func TestCheckout_CreateAndCapture(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.session(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/products/dcdc-hoodie/selection", hoodieSelection(2), token).Code)

	rec := env.do(t, http.MethodPost, "/api/checkout/orders", completeCustomer, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "72.00", created["amount"])
	assert.Equal(t, "USD", created["currency"])
	assert.Equal(t, "DCDC Fundraiser Store Order - 2 items", created["description"])
	id := created["id"].(string)

	rec = env.do(t, http.MethodPost, "/api/checkout/orders/"+id+"/capture", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	orderID := body["orderId"].(string)
	assert.Equal(t, "Thank you for your order! Your order ID is: "+orderID, body["message"])
	assert.Equal(t, []string{orderID}, env.orders.IDs())

	rec = env.do(t, http.MethodGet, "/api/cart", nil, token)
	assert.Equal(t, 0.0, decode(t, rec)["totalItems"])

	rec = env.do(t, http.MethodGet, "/api/admin/orders/"+orderID, nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", decode(t, rec)["orderStatus"])

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/api/checkout/orders/"+id+"/capture", nil, token).Code)
}

func TestCheckout_PersistFailureKeepsCart(t *testing.T) {
	env := newTestEnv(t, nil)
	env.orders.Err = errors.New("firestore unavailable")
	token := env.session(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/products/dcdc-hoodie/selection", hoodieSelection(1), token).Code)

	id := decode(t, env.do(t, http.MethodPost, "/api/checkout/orders", completeCustomer, token))["id"].(string)
	rec := env.do(t, http.MethodPost, "/api/checkout/orders/"+id+"/capture", nil, token)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, id, body["transactionId"])
	assert.Contains(t, body["message"], "Please save this PayPal Transaction ID: "+id)

	rec = env.do(t, http.MethodGet, "/api/cart", nil, token)
	assert.Equal(t, 1.0, decode(t, rec)["totalItems"])

	rec = env.do(t, http.MethodGet, "/api/admin/pending-orders", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	pendingBody := decode(t, rec)
	assert.Equal(t, 1.0, pendingBody["count"])
	entry := pendingBody["results"].([]any)[0].(map[string]any)
	assert.Equal(t, "failed", entry["state"])
	assert.Equal(t, id, entry["externalOrderId"])
}

func TestCheckout_CaptureFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.gateway.CaptureErr = errors.New("INSTRUMENT_DECLINED")
	token := env.session(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/products/dcdc-hoodie/selection", hoodieSelection(1), token).Code)

	id := decode(t, env.do(t, http.MethodPost, "/api/checkout/orders", completeCustomer, token))["id"].(string)
	rec := env.do(t, http.MethodPost, "/api/checkout/orders/"+id+"/capture", nil, token)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], id)
	assert.Empty(t, env.orders.IDs())
}

func TestCheckout_CaptureFromOtherSession(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := env.session(t)
	other := env.session(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/products/dcdc-hoodie/selection", hoodieSelection(1), owner).Code)
	id := decode(t, env.do(t, http.MethodPost, "/api/checkout/orders", completeCustomer, owner))["id"].(string)

	rec := env.do(t, http.MethodPost, "/api/checkout/orders/"+id+"/capture", nil, other)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, env.gateway.Captures)
}

func TestCheckout_RerenderDropsEarlierOrder(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.session(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/products/dcdc-hoodie/selection", hoodieSelection(1), token).Code)
	first := decode(t, env.do(t, http.MethodPost, "/api/checkout/orders", completeCustomer, token))["id"].(string)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/products/dcdc-hoodie/selection", hoodieSelection(1), token).Code)
	second := decode(t, env.do(t, http.MethodPost, "/api/checkout/orders", completeCustomer, token))

	assert.Equal(t, "72.00", second["amount"])
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, "/api/checkout/orders/"+first+"/capture", nil, token).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/checkout/orders/"+second["id"].(string)+"/capture", nil, token).Code)
}

func TestSendOrderConfirmation(t *testing.T) {
	env := newTestEnv(t, nil)
	body := map[string]any{
		"orderDetails": map[string]any{"orderStatus": "pending"},
		"customerInfo": completeCustomer["customerInfo"],
		"cartItems": []map[string]any{{
			"productName": "DCDC Hoodie",
			"price":       36,
			"sizes":       []map[string]any{{"size": "Large", "quantity": 2}},
		}},
		"orderId":    "abc123",
		"totalPrice": 72,
	}

	rec := env.do(t, http.MethodPost, "/api/send-order-confirmation", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["success"])
	require.Len(t, env.mail.sent, 1)
	assert.Equal(t, "DCDC Fundraiser Order Confirmation - abc123", env.mail.sent[0].Subject)
	assert.True(t, strings.Contains(env.mail.sent[0].HTML, "$72.00"))

	env.mail.err = errors.New("provider down")
	rec = env.do(t, http.MethodPost, "/api/send-order-confirmation", body, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to send email", decode(t, rec)["error"])
}

func TestAdmin_RequiresToken(t *testing.T) {
	env := newTestEnv(t, nil)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/admin/pending-orders", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/admin/pending-orders", nil, "wrong").Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/admin/pending-orders", nil, adminToken).Code)
}

func TestBuildRouter_RequiresDeps(t *testing.T) {
	_, err := buildRouter(log.New(io.Discard, "", 0), nil, Deps{})
	assert.Error(t, err)
}
