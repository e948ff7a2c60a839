package handler

import (
	"net/http"

	"github.com/aryanpathak02/EmailDispatcher/internal/ratelimit"
)

// apiVersion is reported by the root info route.
const apiVersion = "1.0.0"

// Routes assembles the full request surface: the named endpoints, the
// root info route and the JSON 404 fallback, wrapped in the ambient
// middleware chain (Recover outermost, then security headers, CORS and
// request logging).
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	prefixes := []string{""}
	if h.cfg.Serverless {
		// Serverless platforms route everything under /api; the bare
		// paths stay registered so local invocation keeps working.
		prefixes = append(prefixes, "/api")
	}
	for _, p := range prefixes {
		mux.HandleFunc("POST "+p+"/send-email", h.SendEmail)
		mux.HandleFunc("GET "+p+"/health", h.Health)
	}

	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("/", h.NotFound)

	return h.Recover(SecurityHeaders(h.CORS(RequestLogger(mux))))
}

type rootResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Platform  string            `json:"platform"`
	Endpoints map[string]string `json:"endpoints"`
}

// Root handles GET / with API info.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.admit(w, r, ratelimit.TierGeneral); !ok {
		return
	}

	prefix := ""
	if h.cfg.Serverless {
		prefix = "/api"
	}
	writeJSON(w, http.StatusOK, rootResponse{
		Success:  true,
		Message:  "Portfolio Contact API",
		Version:  apiVersion,
		Platform: h.platform(),
		Endpoints: map[string]string{
			"health":    prefix + "/health",
			"sendEmail": prefix + "/send-email",
		},
	})
}

// NotFound answers every unmatched path or method.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.admit(w, r, ratelimit.TierGeneral); !ok {
		return
	}

	writeJSON(w, http.StatusNotFound, errResponse{
		Success: false,
		Message: "Endpoint not found",
		Path:    r.URL.Path,
	})
}
