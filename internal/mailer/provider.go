package mailer

import (
	"context"
	"errors"
	"fmt"
)

type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// SendResult is returned to the caller of the confirmation endpoint as "data".
type SendResult struct {
	ID         string `json:"id,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

type Provider interface {
	Send(ctx context.Context, msg Message) (SendResult, error)
}

// ProviderOptions carries the credentials of every supported provider; only
// the selected one is read.
type ProviderOptions struct {
	SendGridAPIKey string
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string
}

// NewProvider returns the provider named by kind ("sendgrid" or "smtp").
func NewProvider(kind string, opts ProviderOptions) (Provider, error) {
	switch kind {
	case "sendgrid":
		if opts.SendGridAPIKey == "" {
			return nil, errors.New("mailer: SENDGRID_API_KEY is required for the sendgrid provider")
		}
		return NewSendGrid(opts.SendGridAPIKey), nil
	case "smtp":
		return NewSMTP(opts.SMTPHost, opts.SMTPPort, opts.SMTPUser, opts.SMTPPassword), nil
	default:
		return nil, fmt.Errorf("mailer: unknown provider %q", kind)
	}
}
