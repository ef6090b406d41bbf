package mailer

import (
	"context"
	"fmt"
	"mime"
	netmail "net/mail"
	"net/smtp"
	"strings"
)

// SMTP delivers through a plain SMTP relay. Auth is used only when a user is set.
type SMTP struct {
	host     string
	port     string
	user     string
	password string
}

func NewSMTP(host, port, user, password string) *SMTP {
	return &SMTP{host: host, port: port, user: user, password: password}
}

func (s *SMTP) Send(ctx context.Context, msg Message) (SendResult, error) {
	if err := ctx.Err(); err != nil {
		return SendResult{}, err
	}
	from, err := netmail.ParseAddress(msg.From)
	if err != nil {
		return SendResult{}, fmt.Errorf("parse from address: %w", err)
	}
	if msg.To == "" {
		return SendResult{}, fmt.Errorf("to address is empty")
	}

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.password, s.host)
	}
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, from.Address, []string{msg.To}, buildMIME(msg)); err != nil {
		return SendResult{}, fmt.Errorf("smtp send: %w", err)
	}
	return SendResult{}, nil
}

var headerBreaks = strings.NewReplacer("\r", "", "\n", "")

// buildMIME renders the message. Header values never carry line breaks: the
// subject is RFC 2047 encoded when it needs to be, addresses are stripped.
func buildMIME(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", headerBreaks.Replace(msg.From))
	fmt.Fprintf(&b, "To: %s\r\n", headerBreaks.Replace(msg.To))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
