package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"fundraiser-store/internal/mailer"
)

type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, req mailer.ConfirmationRequest) (mailer.SendResult, error)
}

// Handler turns OrderPlaced events into confirmation emails.
type Handler struct {
	sender ConfirmationSender
	logger *log.Logger
}

func NewHandler(sender ConfirmationSender, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Handler{sender: sender, logger: logger}
}

func (h *Handler) HandleEvent(ctx context.Context, _, value []byte) error {
	var event Event
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}
	if event.EventType != EventOrderPlaced {
		return nil
	}

	var req mailer.ConfirmationRequest
	if err := json.Unmarshal(event.Data, &req); err != nil {
		return fmt.Errorf("unmarshal %s %s: %w", event.EventType, event.OrderID, err)
	}

	h.logger.Printf("processing %s for order %s", event.EventType, event.OrderID)
	if _, err := h.sender.SendConfirmation(ctx, req); err != nil {
		return fmt.Errorf("send confirmation %s: %w", event.OrderID, err)
	}
	return nil
}
