package mailer

import (
	"fundraiser-store/internal/domain"
	"github.com/shopspring/decimal"
)

// ConfirmationRequest is the body accepted by the confirmation endpoint and
// produced by the order submitter.
type ConfirmationRequest struct {
	OrderDetails domain.OrderRecord  `json:"orderDetails"`
	CustomerInfo domain.CustomerInfo `json:"customerInfo"`
	CartItems    []domain.CartLine   `json:"cartItems"`
	OrderID      string              `json:"orderId"`
	TotalPrice   decimal.Decimal     `json:"totalPrice"`
}

// Subject returns the confirmation subject line for the order.
func (r ConfirmationRequest) Subject() string {
	return "DCDC Fundraiser Order Confirmation - " + r.OrderID
}
