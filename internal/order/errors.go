package order

import "fmt"

type FailureKind int

const (
	// CaptureFailed means the provider did not confirm the payment.
	CaptureFailed FailureKind = iota + 1
	// PersistFailed means the payment went through but the order document was not written.
	PersistFailed
)

func (k FailureKind) String() string {
	switch k {
	case CaptureFailed:
		return "capture_failed"
	case PersistFailed:
		return "persist_failed"
	default:
		return "unknown"
	}
}

// OrderError carries the external transaction id so support can reconcile
// a payment by hand.
type OrderError struct {
	Kind          FailureKind
	TransactionID string
	Err           error
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s (transaction %s): %v", e.Kind, e.TransactionID, e.Err)
}

func (e *OrderError) Unwrap() error { return e.Err }

// UserMessage is shown to the buyer. It always contains the transaction id.
func (e *OrderError) UserMessage() string {
	if e.Kind == CaptureFailed {
		return "Your payment could not be completed. Please keep this PayPal Transaction ID: " +
			e.TransactionID + " and contact support if you were charged."
	}
	return "There was an error processing your order. Please save this PayPal Transaction ID: " +
		e.TransactionID + " and contact support. Your payment was successful but there was an error saving the order details."
}

func SuccessMessage(orderID string) string {
	return "Thank you for your order! Your order ID is: " + orderID
}
