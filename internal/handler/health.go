package handler

import (
	"net/http"
	"time"

	"github.com/aryanpathak02/EmailDispatcher/internal/ratelimit"
)

type healthResponse struct {
	Success     bool            `json:"success"`
	Status      string          `json:"status"`
	Timestamp   string          `json:"timestamp"`
	Environment string          `json:"environment"`
	Platform    string          `json:"platform"`
	Services    healthServices  `json:"services"`
	RateLimit   healthRateLimit `json:"rateLimit"`
}

type healthServices struct {
	Email bool `json:"email"`
	API   bool `json:"api"`
}

type healthRateLimit struct {
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Reset     string `json:"reset"`
}

// Health handles GET /health. It shares nothing with the submission
// pipeline except the rate-limit store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.admit(w, r, ratelimit.TierGeneral); !ok {
		return
	}
	d, ok := h.admit(w, r, ratelimit.TierHealth)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Success:     true,
		Status:      "OK",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Environment: h.cfg.Environment,
		Platform:    h.platform(),
		Services: healthServices{
			Email: h.cfg.MailConfigured(),
			API:   true,
		},
		RateLimit: healthRateLimit{
			Limit:     d.Limit,
			Remaining: d.Remaining,
			Reset:     d.Reset.UTC().Format(time.RFC3339),
		},
	})
}

func (h *Handler) platform() string {
	if h.cfg.Serverless {
		return "Serverless"
	}
	return "Traditional Server"
}
