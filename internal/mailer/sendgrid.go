package mailer

import (
	"context"
	"fmt"
	netmail "net/mail"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGrid struct {
	apiKey string
}

func NewSendGrid(apiKey string) *SendGrid {
	return &SendGrid{apiKey: apiKey}
}

func (c *SendGrid) Send(ctx context.Context, msg Message) (SendResult, error) {
	if c.apiKey == "" {
		return SendResult{}, fmt.Errorf("sendgrid api key is empty")
	}
	if msg.To == "" {
		return SendResult{}, fmt.Errorf("to address is empty")
	}
	from, err := netmail.ParseAddress(msg.From)
	if err != nil {
		return SendResult{}, fmt.Errorf("parse from address: %w", err)
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(from.Name, from.Address),
		msg.Subject,
		mail.NewEmail("", msg.To),
		"",
		msg.HTML,
	)

	response, err := sendgrid.NewSendClient(c.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return SendResult{}, fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return SendResult{StatusCode: response.StatusCode}, fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	res := SendResult{StatusCode: response.StatusCode}
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		res.ID = ids[0]
	}
	return res, nil
}
