package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fundraiser-store/internal/domain"
	"fundraiser-store/internal/mailer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() mailer.ConfirmationRequest {
	return mailer.ConfirmationRequest{
		CustomerInfo: domain.CustomerInfo{FirstName: "Jane", Email: "jane@example.com", DancerName: "Ava"},
		CartItems: []domain.CartLine{{
			ProductID:   "dcdc-hoodie",
			ProductName: "DCDC Hoodie",
			Price:       decimal.RequireFromString("36.00"),
			Sizes:       []domain.SizeQuantity{{Size: "Large", Quantity: 1}},
		}},
		OrderID:    "doc-1",
		TotalPrice: decimal.RequireFromString("36.00"),
	}
}

func TestHTTP_NotifyPostsBody(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewHTTP(srv.URL, srv.Client()).Notify(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "doc-1", got["orderId"])
	assert.Equal(t, 36.0, got["totalPrice"])
	assert.Contains(t, got, "orderDetails")
	assert.Contains(t, got, "customerInfo")
	assert.Contains(t, got, "cartItems")
}

func TestHTTP_NotifyErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Failed to send email"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewHTTP(srv.URL, srv.Client()).Notify(context.Background(), sampleRequest())

	assert.ErrorContains(t, err, "500")
}

type stubSender struct {
	got []mailer.ConfirmationRequest
	err error
}

func (s *stubSender) SendConfirmation(_ context.Context, req mailer.ConfirmationRequest) (mailer.SendResult, error) {
	s.got = append(s.got, req)
	return mailer.SendResult{}, s.err
}

func TestHandler_OrderPlaced(t *testing.T) {
	sender := &stubSender{}
	h := NewHandler(sender, nil)
	value, err := encodeOrderPlaced(sampleRequest())
	require.NoError(t, err)

	require.NoError(t, h.HandleEvent(context.Background(), []byte("doc-1"), value))

	require.Len(t, sender.got, 1)
	assert.Equal(t, "doc-1", sender.got[0].OrderID)
	assert.Equal(t, "36.00", sender.got[0].TotalPrice.StringFixed(2))
}

func TestHandler_IgnoresOtherEvents(t *testing.T) {
	sender := &stubSender{}
	value, _ := json.Marshal(Event{EventType: "OrderCancelled", OrderID: "doc-1"})

	require.NoError(t, NewHandler(sender, nil).HandleEvent(context.Background(), nil, value))
	assert.Empty(t, sender.got)
}

func TestHandler_SendError(t *testing.T) {
	sender := &stubSender{err: errors.New("smtp down")}
	value, err := encodeOrderPlaced(sampleRequest())
	require.NoError(t, err)

	err = NewHandler(sender, nil).HandleEvent(context.Background(), nil, value)

	assert.ErrorContains(t, err, "smtp down")
}

func TestHandler_BadPayload(t *testing.T) {
	assert.Error(t, NewHandler(&stubSender{}, nil).HandleEvent(context.Background(), nil, []byte("{")))
}
