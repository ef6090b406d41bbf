package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"
)

type PayPal struct {
	client *paypal.Client
}

// NewPayPal builds a REST client against the sandbox unless mode is "live".
func NewPayPal(clientID, secret, mode string) (*PayPal, error) {
	base := paypal.APIBaseSandBox
	if strings.EqualFold(mode, "live") {
		base = paypal.APIBaseLive
	}
	c, err := paypal.NewClient(clientID, secret, base)
	if err != nil {
		return nil, fmt.Errorf("paypal client: %w", err)
	}
	return &PayPal{client: c}, nil
}

func (p *PayPal) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, description string) (Handle, error) {
	units := []paypal.PurchaseUnitRequest{{
		Amount: &paypal.PurchaseUnitAmount{
			Currency: currency,
			Value:    amount.StringFixed(2),
		},
		Description: description,
	}}
	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, nil)
	if err != nil {
		return Handle{}, fmt.Errorf("paypal create order: %w", err)
	}
	return Handle{ID: order.ID}, nil
}

func (p *PayPal) Capture(ctx context.Context, handle Handle) (Result, error) {
	resp, err := p.client.CaptureOrder(ctx, handle.ID, paypal.CaptureOrderRequest{})
	if err != nil {
		return Result{}, fmt.Errorf("paypal capture order %s: %w", handle.ID, err)
	}
	res := Result{ID: resp.ID, Status: resp.Status}
	if res.ID == "" {
		res.ID = handle.ID
	}
	if resp.Payer != nil {
		res.PayerEmail = resp.Payer.EmailAddress
		if resp.Payer.Name != nil {
			res.PayerName = strings.TrimSpace(resp.Payer.Name.GivenName + " " + resp.Payer.Name.Surname)
		}
	}
	return res, nil
}
