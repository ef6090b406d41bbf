package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fundraiser-store/internal/domain"
	"fundraiser-store/internal/order"
	"fundraiser-store/internal/payment"
)

type State int

const (
	NotRendered State = iota
	AwaitingApproval
	Processing
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case NotRendered:
		return "not_rendered"
	case AwaitingApproval:
		return "awaiting_approval"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrDetached is returned by callbacks of a bridge that was replaced by a re-render.
	ErrDetached = errors.New("payment button was re-rendered")
	// ErrInvalidState is returned when a callback arrives in the wrong state.
	ErrInvalidState = errors.New("payment is not awaiting this action")
	// ErrUnknownOrder is returned when an approval names an order the bridge did not create.
	ErrUnknownOrder = errors.New("unknown payment order")
)

type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, sessionID string, lines []domain.CartLine, customer domain.CustomerInfo, handle payment.Handle) (string, error)
}

// Bridge drives one rendering of the payment button. Its cart and customer
// snapshot never change; edits produce a new Bridge through Rerender.
type Bridge struct {
	sessionID string
	cart      domain.Cart
	customer  domain.CustomerInfo
	gateway   payment.Gateway
	submitter OrderSubmitter

	mu       sync.Mutex
	state    State
	handle   payment.Handle
	orderID  string
	message  string
	detached bool
}

func NewBridge(sessionID string, cart domain.Cart, customer domain.CustomerInfo, gateway payment.Gateway, submitter OrderSubmitter) *Bridge {
	lines := make([]domain.CartLine, len(cart.Lines))
	for i, l := range cart.Lines {
		l.Sizes = append([]domain.SizeQuantity(nil), l.Sizes...)
		lines[i] = l
	}
	return &Bridge{
		sessionID: sessionID,
		cart:      domain.Cart{Lines: lines},
		customer:  customer,
		gateway:   gateway,
		submitter: submitter,
	}
}

func (b *Bridge) SessionID() string { return b.sessionID }

func (b *Bridge) Cart() domain.Cart { return b.cart }

func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Message is the buyer-facing outcome text once the bridge is Completed or Failed.
func (b *Bridge) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message
}

func (b *Bridge) OrderID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.orderID
}

func (b *Bridge) Handle() payment.Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handle
}

// Render shows the button only for a valid customer and a non-empty cart.
func (b *Bridge) Render() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.detached {
		return ErrDetached
	}
	if b.state != NotRendered {
		return ErrInvalidState
	}
	if !b.customer.Validate() {
		return domain.ErrIncompleteCustomer
	}
	if b.cart.IsEmpty() {
		return domain.ErrEmptyCart
	}
	b.state = AwaitingApproval
	return nil
}

// Description is the order description sent to the payment provider.
func (b *Bridge) Description() string {
	return fmt.Sprintf("DCDC Fundraiser Store Order - %d items", b.cart.TotalItems())
}

// CreateOrder asks the gateway for a provider order for the snapshot total.
func (b *Bridge) CreateOrder(ctx context.Context) (payment.Handle, error) {
	b.mu.Lock()
	if b.detached {
		b.mu.Unlock()
		return payment.Handle{}, ErrDetached
	}
	if b.state != AwaitingApproval {
		b.mu.Unlock()
		return payment.Handle{}, ErrInvalidState
	}
	b.mu.Unlock()

	amount := b.cart.TotalPrice().Round(2)
	handle, err := b.gateway.CreateOrder(ctx, amount, domain.CurrencyUSD, b.Description())
	if err != nil {
		return payment.Handle{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.detached {
		return payment.Handle{}, ErrDetached
	}
	b.handle = handle
	return handle, nil
}

// Approve captures and submits the order. The bridge ends Failed only when the
// capture fails; a captured payment ends Completed even if the order write
// fails, and the error is still returned. Message holds the text for the buyer.
func (b *Bridge) Approve(ctx context.Context, handle payment.Handle) (string, error) {
	b.mu.Lock()
	if b.detached {
		b.mu.Unlock()
		return "", ErrDetached
	}
	if b.state != AwaitingApproval {
		b.mu.Unlock()
		return "", ErrInvalidState
	}
	if b.handle.ID != "" && handle.ID != b.handle.ID {
		b.mu.Unlock()
		return "", ErrUnknownOrder
	}
	b.state = Processing
	b.mu.Unlock()

	orderID, err := b.submitter.SubmitOrder(ctx, b.sessionID, b.cart.Lines, b.customer, handle)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.state = Failed
		var oerr *order.OrderError
		if errors.As(err, &oerr) {
			// The payment was taken; only the order write failed.
			if oerr.Kind == order.PersistFailed {
				b.state = Completed
			}
			b.message = oerr.UserMessage()
		} else {
			b.message = err.Error()
		}
		return "", err
	}
	b.state = Completed
	b.orderID = orderID
	b.message = order.SuccessMessage(orderID)
	return orderID, nil
}

// Rerender detaches b and returns a fresh, not yet rendered bridge over the
// new snapshot.
func (b *Bridge) Rerender(cart domain.Cart, customer domain.CustomerInfo) *Bridge {
	b.Detach()
	return NewBridge(b.sessionID, cart, customer, b.gateway, b.submitter)
}

// Detach makes every later callback on b fail with ErrDetached. A bridge that
// is already Processing finishes its submission.
func (b *Bridge) Detach() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.detached = true
}

func (b *Bridge) Detached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.detached
}
