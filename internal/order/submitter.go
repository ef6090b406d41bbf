package order

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"fundraiser-store/internal/domain"
	"fundraiser-store/internal/mailer"
	"fundraiser-store/internal/payment"
)

type OrderWriter interface {
	Create(ctx context.Context, rec domain.OrderRecord) (string, error)
}

type PendingLog interface {
	Record(ctx context.Context, entry domain.PendingOrder) error
	MarkSaved(ctx context.Context, externalOrderID, orderID string) error
	MarkFailed(ctx context.Context, externalOrderID, reason string) error
}

type Notifier interface {
	Notify(ctx context.Context, req mailer.ConfirmationRequest) error
}

// SubmitTimeout bounds the work that follows an approved payment.
const SubmitTimeout = 30 * time.Second

type CartClearer interface {
	Clear(ctx context.Context, sessionID string) error
}

type Submitter struct {
	payments payment.Gateway
	orders   OrderWriter
	pending  PendingLog
	notifier Notifier
	carts    CartClearer
	logger   *log.Logger
	now      func() time.Time
	timeout  time.Duration
}

func NewSubmitter(payments payment.Gateway, orders OrderWriter, pending PendingLog, notifier Notifier, carts CartClearer, logger *log.Logger) *Submitter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Submitter{
		payments: payments,
		orders:   orders,
		pending:  pending,
		notifier: notifier,
		carts:    carts,
		logger:   logger,
		now:      time.Now,
		timeout:  SubmitTimeout,
	}
}

// SubmitOrder captures the approved payment and then persists the order.
// Errors after input checks are *OrderError. Once the input is accepted the
// work no longer follows ctx cancellation, so a buyer who disconnects after
// approving still gets the order saved.
func (s *Submitter) SubmitOrder(ctx context.Context, sessionID string, lines []domain.CartLine, customer domain.CustomerInfo, handle payment.Handle) (string, error) {
	if len(lines) == 0 {
		return "", domain.ErrEmptyCart
	}
	if !customer.Validate() {
		return "", domain.ErrIncompleteCustomer
	}

	ctx, cancel := s.detach(ctx)
	defer cancel()

	result, err := s.payments.Capture(ctx, handle)
	if err != nil {
		s.logger.Printf("capture %s failed: %v", handle.ID, err)
		return "", &OrderError{Kind: CaptureFailed, TransactionID: handle.ID, Err: err}
	}
	if result.ID == "" {
		result.ID = handle.ID
	}
	return s.submit(ctx, sessionID, lines, customer, result)
}

// Submit persists a captured order: pending log, document write, notification,
// then the cart is cleared. The cart is kept when the write fails. Like
// SubmitOrder it runs to completion even if ctx is cancelled.
func (s *Submitter) Submit(ctx context.Context, sessionID string, lines []domain.CartLine, customer domain.CustomerInfo, result payment.Result) (string, error) {
	ctx, cancel := s.detach(ctx)
	defer cancel()
	return s.submit(ctx, sessionID, lines, customer, result)
}

func (s *Submitter) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
}

func (s *Submitter) submit(ctx context.Context, sessionID string, lines []domain.CartLine, customer domain.CustomerInfo, result payment.Result) (string, error) {
	rec := BuildRecord(lines, customer, result, s.now())

	payload, err := json.Marshal(rec)
	if err != nil {
		s.logger.Printf("encode pending order %s: %v", result.ID, err)
	}
	if err := s.pending.Record(ctx, domain.PendingOrder{
		ExternalOrderID: result.ID,
		SessionID:       sessionID,
		Payload:         payload,
		State:           domain.PendingStateCaptured,
	}); err != nil {
		s.logger.Printf("record pending order %s: %v", result.ID, err)
	}

	orderID, err := s.orders.Create(ctx, rec)
	if err != nil {
		s.logger.Printf("save order for transaction %s failed: %v", result.ID, err)
		if markErr := s.pending.MarkFailed(ctx, result.ID, err.Error()); markErr != nil {
			s.logger.Printf("mark pending order %s failed: %v", result.ID, markErr)
		}
		return "", &OrderError{Kind: PersistFailed, TransactionID: result.ID, Err: err}
	}
	s.logger.Printf("order saved id=%s transaction=%s", orderID, result.ID)

	if err := s.pending.MarkSaved(ctx, result.ID, orderID); err != nil {
		s.logger.Printf("mark pending order %s saved: %v", result.ID, err)
	}

	if err := s.notifier.Notify(ctx, mailer.ConfirmationRequest{
		OrderDetails: rec,
		CustomerInfo: customer,
		CartItems:    lines,
		OrderID:      orderID,
		TotalPrice:   rec.OrderSummary.TotalAmount,
	}); err != nil {
		s.logger.Printf("confirmation for order %s: %v", orderID, err)
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logger.Printf("clear cart for session %s: %v", sessionID, err)
	}
	return orderID, nil
}
