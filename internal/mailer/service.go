package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"
)

// ErrNoRecipient is returned when the customer email is blank.
var ErrNoRecipient = errors.New("customer email is required")

type Service struct {
	provider Provider
	from     string
	logger   *log.Logger
	now      func() time.Time
}

func NewService(provider Provider, from string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{provider: provider, from: from, logger: logger, now: time.Now}
}

// SendConfirmation renders and sends the receipt once. Failures are returned
// to the caller and never retried.
func (s *Service) SendConfirmation(ctx context.Context, req ConfirmationRequest) (SendResult, error) {
	if req.CustomerInfo.Email == "" {
		return SendResult{}, ErrNoRecipient
	}
	body, err := BuildConfirmationBody(req, s.now())
	if err != nil {
		return SendResult{}, fmt.Errorf("render confirmation: %w", err)
	}
	res, err := s.provider.Send(ctx, Message{
		From:    s.from,
		To:      req.CustomerInfo.Email,
		Subject: req.Subject(),
		HTML:    body,
	})
	if err != nil {
		s.logger.Printf("confirmation email for order %s failed: %v", req.OrderID, err)
		return SendResult{}, err
	}
	s.logger.Printf("confirmation email sent order=%s to=%s", req.OrderID, req.CustomerInfo.Email)
	return res, nil
}
