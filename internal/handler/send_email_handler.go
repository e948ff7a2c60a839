package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aryanpathak02/EmailDispatcher/internal/mail"
	"github.com/aryanpathak02/EmailDispatcher/internal/ratelimit"
	"github.com/aryanpathak02/EmailDispatcher/internal/service"
	"github.com/aryanpathak02/EmailDispatcher/internal/validate"
)

// maxBodyBytes caps how much of a submission payload is read.
const maxBodyBytes = 10 << 20

// SendEmail handles POST /send-email. The stages run in a fixed order
// with early return on the first terminal outcome: general admission,
// email-tier admission (before validation, so unvalidated spam still
// consumes quota), validation, dispatch.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.admit(w, r, ratelimit.TierGeneral); !ok {
		return
	}
	if _, ok := h.admit(w, r, ratelimit.TierEmail); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var raw validate.RawSubmission
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errResponse{
				Success: false,
				Message: "Request body too large",
			})
			return
		}
		// An empty body reads as a submission with every field absent.
		msg := "Invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "Missing required fields: name, comment, and email are required"
		}
		writeJSON(w, http.StatusBadRequest, errResponse{Success: false, Message: msg})
		return
	}

	sub, err := validate.Submission(raw)
	if err != nil {
		var verr *validate.Error
		msg := "Invalid request body"
		if errors.As(err, &verr) {
			msg = verr.Message
		}
		writeJSON(w, http.StatusBadRequest, errResponse{Success: false, Message: msg})
		return
	}

	// The send must not be aborted by a client disconnect once issued;
	// it completes or fails on its own.
	receipt, err := h.dispatcher.Dispatch(context.WithoutCancel(r.Context()), sub)
	if err != nil {
		if errors.Is(err, mail.ErrSenderUnavailable) {
			writeJSON(w, http.StatusInternalServerError, errResponse{
				Success: false,
				Message: "Email service not available",
			})
			return
		}
		var derr *service.DeliveryError
		if errors.As(err, &derr) {
			slog.Error("email delivery failed", "error", derr.Err)
		} else {
			slog.Error("email dispatch failed", "error", err)
		}
		writeJSON(w, http.StatusInternalServerError, errResponse{
			Success: false,
			Message: "Failed to send email",
		})
		return
	}

	if !h.cfg.Production() {
		slog.Info("email sent", "message_id", receipt.MessageID, "to_operator", true)
	}
	writeJSON(w, http.StatusOK, okResponse{Success: true, Message: "Email sent successfully"})
}
