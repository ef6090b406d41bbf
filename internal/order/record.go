package order

import (
	"time"

	"fundraiser-store/internal/domain"
	"fundraiser-store/internal/payment"
	"github.com/shopspring/decimal"
)

// BuildRecord snapshots the cart into an order document. Item totals and the
// order total are derived from the lines and rounded to cents.
func BuildRecord(lines []domain.CartLine, customer domain.CustomerInfo, result payment.Result, now time.Time) domain.OrderRecord {
	now = now.UTC()
	items := make([]domain.OrderItem, 0, len(lines))
	total := decimal.Zero
	totalItems := 0
	for _, line := range lines {
		var jersey *string
		if line.JerseyName != "" {
			name := line.JerseyName
			jersey = &name
		}
		itemTotal := line.ItemTotal().Round(2)
		items = append(items, domain.OrderItem{
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Price:         line.Price,
			Sizes:         append([]domain.SizeQuantity(nil), line.Sizes...),
			JerseyName:    jersey,
			TotalQuantity: line.TotalQuantity(),
			ItemTotal:     itemTotal,
		})
		total = total.Add(line.ItemTotal())
		totalItems += line.TotalQuantity()
	}

	return domain.OrderRecord{
		CustomerInfo: customer,
		Items:        items,
		OrderSummary: domain.OrderSummary{
			TotalAmount: total.Round(2),
			TotalItems:  totalItems,
			Currency:    domain.CurrencyUSD,
			DancerName:  customer.DancerName,
		},
		PaymentDetails: domain.PaymentDetails{
			ExternalOrderID: result.ID,
			PaymentStatus:   result.Status,
			PayerEmail:      result.PayerEmail,
			PayerName:       result.PayerName,
			TransactionDate: now,
		},
		OrderStatus: domain.OrderStatusPending,
		DancerName:  customer.DancerName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
