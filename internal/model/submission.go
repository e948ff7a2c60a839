package model

import "time"

// Submission is a contact-form payload after validation and sanitization.
// By the time a Submission reaches the dispatcher all three fields are
// non-empty, name and comment carry no '<' or '>' characters, and the
// email is trimmed and lower-cased.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Comment string `json:"comment"`
}

// OutboundMessage is the email built from a sanitized Submission.
// It exists only for the duration of one send call and is never persisted.
type OutboundMessage struct {
	Subject  string
	TextBody string
	HTMLBody string
	From     string
	To       string
}

// DeliveryReceipt describes one successful send.
type DeliveryReceipt struct {
	MessageID string
	SentAt    time.Time
}
