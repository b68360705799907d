// Package notify delivers the OTP and login alert emails. Delivery is best
// effort: Notifier logs failures and reports them as a bool, never as an error.
package notify

import (
	"context"

	"github.com/dmitrijs2005/portfolio/internal/logging"
)

// Message is a single HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer hands a message to a transport.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer stands in for SMTP in development. It records recipient and
// subject only; bodies carry one-time codes and are never logged.
type LogMailer struct {
	log logging.Logger
}

func NewLogMailer(log logging.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.log.Info(ctx, "mail not sent, smtp disabled", "to", msg.To, "subject", msg.Subject)
	return nil
}
