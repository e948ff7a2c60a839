// Package mail abstracts the outbound mail transport behind a Sender
// capability so the relay (SMTP or HTTP API) can be swapped and mocked.
package mail

import (
	"context"
	"errors"
)

// ErrSenderUnavailable is returned when no mail transport was configured
// for the process. The rest of the service keeps running; only sending
// is disabled.
var ErrSenderUnavailable = errors.New("email sender not configured")

// Message is a provider-agnostic email payload.
type Message struct {
	From     string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers one message via the underlying provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
