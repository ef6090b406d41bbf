package order

import (
	"time"

	"fundraiser-store/internal/domain"
	"github.com/shopspring/decimal"
)

// Document stores keep money as plain numbers; decimal values do not encode
// natively in either Firestore or BSON.

type orderDoc struct {
	CustomerInfo   domain.CustomerInfo `firestore:"customerInfo" bson:"customerInfo"`
	Items          []itemDoc           `firestore:"items" bson:"items"`
	OrderSummary   summaryDoc          `firestore:"orderSummary" bson:"orderSummary"`
	PaymentDetails paymentDoc          `firestore:"paymentDetails" bson:"paymentDetails"`
	OrderStatus    string              `firestore:"orderStatus" bson:"orderStatus"`
	DancerName     string              `firestore:"dancerName" bson:"dancerName"`
	CreatedAt      time.Time           `firestore:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `firestore:"updatedAt" bson:"updatedAt"`
}

type itemDoc struct {
	ProductID     string    `firestore:"productId" bson:"productId"`
	ProductName   string    `firestore:"productName" bson:"productName"`
	Price         float64   `firestore:"price" bson:"price"`
	Sizes         []sizeDoc `firestore:"sizes" bson:"sizes"`
	JerseyName    *string   `firestore:"jerseyName" bson:"jerseyName"`
	TotalQuantity int       `firestore:"totalQuantity" bson:"totalQuantity"`
	ItemTotal     float64   `firestore:"itemTotal" bson:"itemTotal"`
}

type sizeDoc struct {
	Size     string `firestore:"size" bson:"size"`
	Quantity int    `firestore:"quantity" bson:"quantity"`
}

type summaryDoc struct {
	TotalAmount float64 `firestore:"totalAmount" bson:"totalAmount"`
	TotalItems  int     `firestore:"totalItems" bson:"totalItems"`
	Currency    string  `firestore:"currency" bson:"currency"`
	DancerName  string  `firestore:"dancerName" bson:"dancerName"`
}

type paymentDoc struct {
	PayPalOrderID   string    `firestore:"paypalOrderId" bson:"paypalOrderId"`
	PaymentStatus   string    `firestore:"paymentStatus" bson:"paymentStatus"`
	PayerEmail      string    `firestore:"payerEmail" bson:"payerEmail"`
	PayerName       string    `firestore:"payerName" bson:"payerName"`
	TransactionDate time.Time `firestore:"transactionDate" bson:"transactionDate"`
}

func toDoc(rec domain.OrderRecord) orderDoc {
	items := make([]itemDoc, 0, len(rec.Items))
	for _, it := range rec.Items {
		sizes := make([]sizeDoc, 0, len(it.Sizes))
		for _, sq := range it.Sizes {
			sizes = append(sizes, sizeDoc{Size: sq.Size, Quantity: sq.Quantity})
		}
		items = append(items, itemDoc{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Price:         it.Price.InexactFloat64(),
			Sizes:         sizes,
			JerseyName:    it.JerseyName,
			TotalQuantity: it.TotalQuantity,
			ItemTotal:     it.ItemTotal.InexactFloat64(),
		})
	}
	return orderDoc{
		CustomerInfo: rec.CustomerInfo,
		Items:        items,
		OrderSummary: summaryDoc{
			TotalAmount: rec.OrderSummary.TotalAmount.InexactFloat64(),
			TotalItems:  rec.OrderSummary.TotalItems,
			Currency:    rec.OrderSummary.Currency,
			DancerName:  rec.OrderSummary.DancerName,
		},
		PaymentDetails: paymentDoc{
			PayPalOrderID:   rec.PaymentDetails.ExternalOrderID,
			PaymentStatus:   rec.PaymentDetails.PaymentStatus,
			PayerEmail:      rec.PaymentDetails.PayerEmail,
			PayerName:       rec.PaymentDetails.PayerName,
			TransactionDate: rec.PaymentDetails.TransactionDate,
		},
		OrderStatus: string(rec.OrderStatus),
		DancerName:  rec.DancerName,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func fromDoc(d orderDoc) domain.OrderRecord {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		sizes := make([]domain.SizeQuantity, 0, len(it.Sizes))
		for _, sq := range it.Sizes {
			sizes = append(sizes, domain.SizeQuantity{Size: sq.Size, Quantity: sq.Quantity})
		}
		items = append(items, domain.OrderItem{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Price:         cents(it.Price),
			Sizes:         sizes,
			JerseyName:    it.JerseyName,
			TotalQuantity: it.TotalQuantity,
			ItemTotal:     cents(it.ItemTotal),
		})
	}
	return domain.OrderRecord{
		CustomerInfo: d.CustomerInfo,
		Items:        items,
		OrderSummary: domain.OrderSummary{
			TotalAmount: cents(d.OrderSummary.TotalAmount),
			TotalItems:  d.OrderSummary.TotalItems,
			Currency:    d.OrderSummary.Currency,
			DancerName:  d.OrderSummary.DancerName,
		},
		PaymentDetails: domain.PaymentDetails{
			ExternalOrderID: d.PaymentDetails.PayPalOrderID,
			PaymentStatus:   d.PaymentDetails.PaymentStatus,
			PayerEmail:      d.PaymentDetails.PayerEmail,
			PayerName:       d.PaymentDetails.PayerName,
			TransactionDate: d.PaymentDetails.TransactionDate,
		},
		OrderStatus: domain.OrderStatus(d.OrderStatus),
		DancerName:  d.DancerName,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
