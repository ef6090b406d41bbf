package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"fundraiser-store/internal/domain"
	"fundraiser-store/internal/order"
	"fundraiser-store/internal/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubmitter struct {
	calls   int
	lines   []domain.CartLine
	handle  payment.Handle
	orderID string
	err     error
}

func (s *stubSubmitter) SubmitOrder(_ context.Context, _ string, lines []domain.CartLine, _ domain.CustomerInfo, handle payment.Handle) (string, error) {
	s.calls++
	s.lines = lines
	s.handle = handle
	return s.orderID, s.err
}

func customer() domain.CustomerInfo {
	return domain.CustomerInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "555", DancerName: "Ava"}
}

func hoodieCart(qty int) domain.Cart {
	return domain.Cart{Lines: []domain.CartLine{{
		ProductID: "dcdc-hoodie",
		Price:     decimal.RequireFromString("36.00"),
		Sizes:     []domain.SizeQuantity{{Size: "Large", Quantity: qty}},
	}}}
}

func TestBridge_RenderRequiresValidInput(t *testing.T) {
	gw := payment.NewFake()

	incomplete := customer()
	incomplete.Email = " "
	b := NewBridge("s1", hoodieCart(1), incomplete, gw, &stubSubmitter{})
	assert.ErrorIs(t, b.Render(), domain.ErrIncompleteCustomer)
	assert.Equal(t, NotRendered, b.State())

	b = NewBridge("s1", domain.Cart{}, customer(), gw, &stubSubmitter{})
	assert.ErrorIs(t, b.Render(), domain.ErrEmptyCart)
	assert.Equal(t, NotRendered, b.State())

	b = NewBridge("s1", hoodieCart(1), customer(), gw, &stubSubmitter{})
	require.NoError(t, b.Render())
	assert.Equal(t, AwaitingApproval, b.State())
	assert.ErrorIs(t, b.Render(), ErrInvalidState)
}

func TestBridge_CreateOrderAmountAndDescription(t *testing.T) {
	gw := payment.NewFake()
	b := NewBridge("s1", hoodieCart(2), customer(), gw, &stubSubmitter{})

	_, err := b.CreateOrder(context.Background())
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, b.Render())
	h, err := b.CreateOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, h, b.Handle())

	require.Len(t, gw.Creates, 1)
	assert.Equal(t, "72.00", gw.Creates[0].Amount.StringFixed(2))
	assert.Equal(t, "USD", gw.Creates[0].Currency)
	assert.Equal(t, "DCDC Fundraiser Store Order - 2 items", gw.Creates[0].Description)
}

func TestBridge_ApproveCompletes(t *testing.T) {
	sub := &stubSubmitter{orderID: "doc-1"}
	b := NewBridge("s1", hoodieCart(1), customer(), payment.NewFake(), sub)
	require.NoError(t, b.Render())
	h, err := b.CreateOrder(context.Background())
	require.NoError(t, err)

	orderID, err := b.Approve(context.Background(), h)

	require.NoError(t, err)
	assert.Equal(t, "doc-1", orderID)
	assert.Equal(t, Completed, b.State())
	assert.Equal(t, "Thank you for your order! Your order ID is: doc-1", b.Message())
	assert.Equal(t, h, sub.handle)

	_, err = b.Approve(context.Background(), h)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 1, sub.calls)
}

func TestBridge_ApproveFailureKeepsTransactionID(t *testing.T) {
	sub := &stubSubmitter{err: &order.OrderError{Kind: order.CaptureFailed, TransactionID: "X7", Err: errors.New("declined")}}
	b := NewBridge("s1", hoodieCart(1), customer(), payment.NewFake(), sub)
	require.NoError(t, b.Render())

	_, err := b.Approve(context.Background(), payment.Handle{ID: "X7"})

	assert.Error(t, err)
	assert.Equal(t, Failed, b.State())
	assert.Contains(t, b.Message(), "X7")
}

func TestBridge_PersistFailureAfterCaptureCompletes(t *testing.T) {
	sub := &stubSubmitter{err: &order.OrderError{Kind: order.PersistFailed, TransactionID: "X1", Err: errors.New("unavailable")}}
	b := NewBridge("s1", hoodieCart(1), customer(), payment.NewFake(), sub)
	require.NoError(t, b.Render())
	h, err := b.CreateOrder(context.Background())
	require.NoError(t, err)

	orderID, err := b.Approve(context.Background(), h)

	var oerr *order.OrderError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, order.PersistFailed, oerr.Kind)
	assert.Empty(t, orderID)
	assert.Equal(t, Completed, b.State())
	assert.Contains(t, b.Message(), "Please save this PayPal Transaction ID: X1")
	assert.Empty(t, b.OrderID())
}

func TestBridge_ApproveRejectsForeignOrder(t *testing.T) {
	sub := &stubSubmitter{}
	b := NewBridge("s1", hoodieCart(1), customer(), payment.NewFake(), sub)
	require.NoError(t, b.Render())
	_, err := b.CreateOrder(context.Background())
	require.NoError(t, err)

	_, err = b.Approve(context.Background(), payment.Handle{ID: "other"})

	assert.ErrorIs(t, err, ErrUnknownOrder)
	assert.Zero(t, sub.calls)
	assert.Equal(t, AwaitingApproval, b.State())
}

func TestBridge_RerenderDetachesOldSnapshot(t *testing.T) {
	sub := &stubSubmitter{orderID: "doc-2"}
	cart := hoodieCart(1)
	old := NewBridge("s1", cart, customer(), payment.NewFake(), sub)
	require.NoError(t, old.Render())

	cart.Lines[0].Sizes[0].Quantity = 5
	assert.Equal(t, 1, old.Cart().TotalItems())

	nb := old.Rerender(hoodieCart(3), customer())
	assert.True(t, old.Detached())
	assert.Equal(t, NotRendered, nb.State())

	_, err := old.CreateOrder(context.Background())
	assert.ErrorIs(t, err, ErrDetached)
	_, err = old.Approve(context.Background(), payment.Handle{ID: "FAKE-1"})
	assert.ErrorIs(t, err, ErrDetached)

	require.NoError(t, nb.Render())
	_, err = nb.Approve(context.Background(), payment.Handle{ID: "FAKE-1"})
	require.NoError(t, err)
	assert.Equal(t, 3, domain.Cart{Lines: sub.lines}.TotalItems())
}

func TestRegistry_AttachBindRelease(t *testing.T) {
	r := NewRegistry(time.Hour)
	gw := payment.NewFake()
	first := NewBridge("s1", hoodieCart(1), customer(), gw, &stubSubmitter{})
	r.Attach(first)
	r.Bind("A", first)

	got, ok := r.Lookup("A")
	require.True(t, ok)
	assert.Same(t, first, got)

	second := NewBridge("s1", hoodieCart(2), customer(), gw, &stubSubmitter{})
	r.Attach(second)
	assert.True(t, first.Detached())
	_, ok = r.Lookup("A")
	assert.False(t, ok)

	cur, ok := r.Current("s1")
	require.True(t, ok)
	assert.Same(t, second, cur)

	r.Bind("B", second)
	r.Release(second)
	_, ok = r.Current("s1")
	assert.False(t, ok)
	_, ok = r.Lookup("B")
	assert.False(t, ok)
}

func TestRegistry_EvictsExpiredBridges(t *testing.T) {
	r := NewRegistry(time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	gw := payment.NewFake()

	stale := NewBridge("s1", hoodieCart(1), customer(), gw, &stubSubmitter{})
	require.NoError(t, stale.Render())
	r.Attach(stale)
	r.Bind("A", stale)

	blocker := &blockingSubmitter{release: make(chan struct{})}
	busy := NewBridge("s2", hoodieCart(1), customer(), gw, blocker)
	require.NoError(t, busy.Render())
	r.Attach(busy)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = busy.Approve(context.Background(), payment.Handle{ID: "B"})
	}()
	require.Eventually(t, func() bool { return busy.State() == Processing }, time.Second, time.Millisecond)

	now = now.Add(2 * time.Hour)

	_, ok := r.Lookup("A")
	assert.False(t, ok)
	_, ok = r.Current("s1")
	assert.False(t, ok)
	assert.True(t, stale.Detached())

	cur, ok := r.Current("s2")
	require.True(t, ok)
	assert.Same(t, busy, cur)
	assert.Equal(t, 1, r.Len())

	close(blocker.release)
	<-done
}

func TestRegistry_DropAndBindOnlyLiveBridge(t *testing.T) {
	r := NewRegistry(0)
	gw := payment.NewFake()
	b := NewBridge("s1", hoodieCart(1), customer(), gw, &stubSubmitter{})

	r.Bind("A", b)
	_, ok := r.Lookup("A")
	assert.False(t, ok)

	r.Attach(b)
	r.Bind("A", b)
	r.Drop("s1")

	assert.True(t, b.Detached())
	assert.Zero(t, r.Len())
	_, ok = r.Lookup("A")
	assert.False(t, ok)
	r.Drop("missing")
}

type blockingSubmitter struct {
	release chan struct{}
}

func (s *blockingSubmitter) SubmitOrder(context.Context, string, []domain.CartLine, domain.CustomerInfo, payment.Handle) (string, error) {
	<-s.release
	return "doc-9", nil
}
