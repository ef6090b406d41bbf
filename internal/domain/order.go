package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

const CurrencyUSD = "USD"

// OrderItem is a line snapshot taken at capture time.
type OrderItem struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Price         decimal.Decimal `json:"price"`
	Sizes         []SizeQuantity  `json:"sizes"`
	JerseyName    *string         `json:"jerseyName"`
	TotalQuantity int             `json:"totalQuantity"`
	ItemTotal     decimal.Decimal `json:"itemTotal"`
}

type OrderSummary struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
	Currency    string          `json:"currency"`
	DancerName  string          `json:"dancerName"`
}

type PaymentDetails struct {
	ExternalOrderID string    `json:"paypalOrderId"`
	PaymentStatus   string    `json:"paymentStatus"`
	PayerEmail      string    `json:"payerEmail"`
	PayerName       string    `json:"payerName"`
	TransactionDate time.Time `json:"transactionDate"`
}

// OrderRecord is written once to the document store and never updated by
// the storefront afterwards.
type OrderRecord struct {
	CustomerInfo   CustomerInfo   `json:"customerInfo"`
	Items          []OrderItem    `json:"items"`
	OrderSummary   OrderSummary   `json:"orderSummary"`
	PaymentDetails PaymentDetails `json:"paymentDetails"`
	OrderStatus    OrderStatus    `json:"orderStatus"`
	DancerName     string         `json:"dancerName"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type PendingState string

const (
	PendingStateCaptured PendingState = "captured"
	PendingStateSaved    PendingState = "saved"
	PendingStateFailed   PendingState = "failed"
)

// PendingOrder is an entry of the pending-order log: a captured payment
// whose order document may not have been written yet.
type PendingOrder struct {
	ExternalOrderID string       `json:"externalOrderId"`
	SessionID       string       `json:"sessionId"`
	Payload         []byte       `json:"-"`
	State           PendingState `json:"state"`
	OrderID         string       `json:"orderId,omitempty"`
	LastError       string       `json:"lastError,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}
