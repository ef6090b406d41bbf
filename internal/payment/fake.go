package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// CreateCall records the arguments of one Fake.CreateOrder call.
type CreateCall struct {
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// Fake is an in-process Gateway for tests and local development.
type Fake struct {
	mu sync.Mutex

	CreateErr  error
	CaptureErr error
	// Result is returned by Capture; its ID defaults to the handle's.
	Result Result

	Creates  []CreateCall
	Captures []Handle
	next     int
}

func NewFake() *Fake {
	return &Fake{Result: Result{Status: "COMPLETED"}}
}

func (f *Fake) CreateOrder(_ context.Context, amount decimal.Decimal, currency, description string) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Creates = append(f.Creates, CreateCall{Amount: amount, Currency: currency, Description: description})
	if f.CreateErr != nil {
		return Handle{}, f.CreateErr
	}
	f.next++
	return Handle{ID: fmt.Sprintf("FAKE-%d", f.next)}, nil
}

func (f *Fake) Capture(_ context.Context, handle Handle) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Captures = append(f.Captures, handle)
	if f.CaptureErr != nil {
		return Result{}, f.CaptureErr
	}
	res := f.Result
	if res.ID == "" {
		res.ID = handle.ID
	}
	return res, nil
}
