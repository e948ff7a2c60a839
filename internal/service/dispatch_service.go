package service

import (
	"context"
	"fmt"

	"github.com/aryanpathak02/EmailDispatcher/internal/model"
)

// DispatchService builds the outbound email for a sanitized submission
// and sends it via the configured relay.
type DispatchService interface {
	// Dispatch makes exactly one delivery attempt. It returns
	// mail.ErrSenderUnavailable when no relay is configured and a
	// *DeliveryError when the send itself fails; neither is retried.
	Dispatch(ctx context.Context, sub model.Submission) (model.DeliveryReceipt, error)
}

// DeliveryError wraps a failed send attempt. The cause is logged
// server-side only and never surfaced to the client.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("email delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
