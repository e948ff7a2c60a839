package handler

import (
	"net/http"
	"strconv"

	"github.com/aryanpathak02/EmailDispatcher/internal/config"
	"github.com/aryanpathak02/EmailDispatcher/internal/ratelimit"
	"github.com/aryanpathak02/EmailDispatcher/internal/service"
)

// Handler orchestrates the request pipeline: rate-limit admission,
// validation and dispatch, each an explicit sequential stage with early
// return. It never re-throws lower-layer errors to the client.
type Handler struct {
	cfg        *config.Config
	limiter    *ratelimit.Limiter
	dispatcher service.DispatchService
}

// New creates a Handler with its collaborators.
func New(cfg *config.Config, limiter *ratelimit.Limiter, dispatcher service.DispatchService) *Handler {
	return &Handler{cfg: cfg, limiter: limiter, dispatcher: dispatcher}
}

// admit runs one rate-limit admission stage. On denial it writes the
// tier-specific 429 and reports false; the caller returns immediately.
// The decision is returned either way so callers can surface counters.
func (h *Handler) admit(w http.ResponseWriter, r *http.Request, tier ratelimit.Tier) (ratelimit.Decision, bool) {
	d := h.limiter.Admit(h.limiter.ClientIP(r), tier)
	setRateLimitHeaders(w, d)
	if d.Allowed {
		return d, true
	}

	retry := retryAfterSeconds(d.RetryAfter)
	w.Header().Set("Retry-After", strconv.Itoa(retry))
	writeJSON(w, http.StatusTooManyRequests, errResponse{
		Success:    false,
		Message:    tier.Message(),
		RetryAfter: retry,
		Limit:      d.Limit,
	})
	return d, false
}

// CORS applies the configured cross-origin policy and answers OPTIONS
// preflight requests directly.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.cfg.CORS.Origin)
		w.Header().Set("Access-Control-Allow-Methods", h.cfg.CORS.Methods)
		w.Header().Set("Access-Control-Allow-Headers", h.cfg.CORS.Headers)
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
