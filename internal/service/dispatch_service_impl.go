package service

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aryanpathak02/EmailDispatcher/internal/mail"
	"github.com/aryanpathak02/EmailDispatcher/internal/model"
)

// htmlBody renders the structured email view of a submission. Inputs are
// already sanitized; html/template escapes them again on output.
var htmlBody = template.Must(template.New("contact").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #007bff; padding-bottom: 10px;">
    New Portfolio Contact
  </h2>
  <div style="background: #f8f9fa; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    <p><strong>Message:</strong></p>
    <div style="background: white; padding: 15px; border-left: 4px solid #007bff; margin: 10px 0;">
      {{.Comment}}
    </div>
  </div>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #666; font-size: 12px;">
    Sent via Portfolio Contact Form at {{.SentAt}}
  </p>
</div>`))

// dispatchServiceImpl is the production implementation of DispatchService.
type dispatchServiceImpl struct {
	sender  mail.Sender // nil when no relay credentials were configured
	from    string
	to      string
	subject string
	now     func() time.Time
}

// NewDispatchService creates a DispatchService sending from the relay
// account to the operator inbox. sender may be nil; Dispatch then fails
// with mail.ErrSenderUnavailable while the rest of the service runs.
func NewDispatchService(sender mail.Sender, from, to, subject string) DispatchService {
	return &dispatchServiceImpl{
		sender:  sender,
		from:    from,
		to:      to,
		subject: subject,
		now:     time.Now,
	}
}

// Dispatch builds the OutboundMessage and makes one send attempt. The
// submitter's address appears only in the body, never as the envelope
// sender, so the relay cannot be abused for spoofed mail.
func (s *dispatchServiceImpl) Dispatch(ctx context.Context, sub model.Submission) (model.DeliveryReceipt, error) {
	if s.sender == nil {
		return model.DeliveryReceipt{}, mail.ErrSenderUnavailable
	}

	now := s.now().UTC()
	msg, err := s.build(sub, now)
	if err != nil {
		return model.DeliveryReceipt{}, err
	}

	if err := s.sender.Send(ctx, mail.Message{
		From:     msg.From,
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		HTMLBody: msg.HTMLBody,
	}); err != nil {
		return model.DeliveryReceipt{}, &DeliveryError{Err: err}
	}

	return model.DeliveryReceipt{
		MessageID: uuid.NewString(),
		SentAt:    now,
	}, nil
}

// build renders the outbound message deterministically from a submission.
func (s *dispatchServiceImpl) build(sub model.Submission, sentAt time.Time) (model.OutboundMessage, error) {
	var html strings.Builder
	err := htmlBody.Execute(&html, struct {
		Name, Email, Comment, SentAt string
	}{
		Name:    sub.Name,
		Email:   sub.Email,
		Comment: sub.Comment,
		SentAt:  sentAt.Format(time.RFC1123),
	})
	if err != nil {
		return model.OutboundMessage{}, fmt.Errorf("render email body: %w", err)
	}

	return model.OutboundMessage{
		Subject:  s.subject,
		TextBody: fmt.Sprintf("You have received a new comment from %s (%s): %s", sub.Name, sub.Email, sub.Comment),
		HTMLBody: html.String(),
		From:     s.from,
		To:       s.to,
	}, nil
}
