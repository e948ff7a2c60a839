package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/aryanpathak02/EmailDispatcher/internal/ratelimit"
)

// okResponse is the success envelope.
type okResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// errResponse is the stable failure envelope. Error and Stack are only
// populated outside production.
type errResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retryAfter,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Path       string `json:"path,omitempty"`
	Error      string `json:"error,omitempty"`
	Stack      string `json:"stack,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// setRateLimitHeaders reports the counters on every decision, allowed or
// not (the standard RateLimit-* header set, no legacy X- variants).
func setRateLimitHeaders(w http.ResponseWriter, d ratelimit.Decision) {
	if d.Limit == 0 {
		return
	}
	w.Header().Set("RateLimit-Limit", strconv.Itoa(d.Limit))
	w.Header().Set("RateLimit-Remaining", strconv.Itoa(d.Remaining))
	w.Header().Set("RateLimit-Reset", d.Reset.UTC().Format(time.RFC3339))
}

// retryAfterSeconds rounds up to whole seconds, never below 1.
func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
