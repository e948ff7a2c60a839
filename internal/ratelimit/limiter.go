// Package ratelimit provides fixed-window request counting per client
// key over named tiers.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"time"
)

// Decision is the outcome of one admission check. Limit, Remaining and
// Reset are populated on every decision for observability; RetryAfter is
// set only on denial.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	Reset      time.Time
}

// Limiter decides whether a request is admitted under a tier's policy.
type Limiter struct {
	store          CounterStore
	tiers          map[Tier]TierConfig
	enabled        bool
	trustedProxies int
	now            func() time.Time
}

// Options configures a Limiter. Zero fields fall back to an in-memory
// store, the default tiers, one trusted proxy and the wall clock.
type Options struct {
	Store          CounterStore
	Tiers          map[Tier]TierConfig
	Enabled        bool
	TrustedProxies int
	Now            func() time.Time
}

// New creates a Limiter.
func New(opts Options) *Limiter {
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.Tiers == nil {
		opts.Tiers = DefaultTiers()
	}
	if opts.TrustedProxies == 0 {
		opts.TrustedProxies = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Limiter{
		store:          opts.Store,
		tiers:          opts.Tiers,
		enabled:        opts.Enabled,
		trustedProxies: opts.TrustedProxies,
		now:            opts.Now,
	}
}

// Enabled reports whether denials are enforced.
func (l *Limiter) Enabled() bool { return l.enabled }

// Admit counts one request from key against tier and decides whether it
// may proceed. When the limiter is disabled the request is always
// admitted but the counters are still updated and reported.
func (l *Limiter) Admit(key string, tier Tier) Decision {
	cfg, ok := l.tiers[tier]
	if !ok {
		return Decision{Allowed: true}
	}

	now := l.now()
	w := l.store.Incr(tier, key, cfg.Window, now)

	remaining := cfg.MaxRequests - w.Count
	if remaining < 0 {
		remaining = 0
	}
	reset := w.Start.Add(cfg.Window)

	d := Decision{
		Allowed:   true,
		Limit:     cfg.MaxRequests,
		Remaining: remaining,
		Reset:     reset,
	}
	if l.enabled && w.Count > cfg.MaxRequests {
		d.Allowed = false
		d.RetryAfter = reset.Sub(now)
	}
	return d
}

// ClientIP extracts the client identity used as the counting key. With
// trusted proxies in front, the entry at len-trustedProxies in
// X-Forwarded-For is the one our infrastructure wrote and cannot be
// spoofed by prepending addresses.
func (l *Limiter) ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && l.trustedProxies > 0 {
		parts := strings.Split(xff, ",")
		idx := len(parts) - l.trustedProxies
		if idx >= 0 && idx < len(parts) {
			return strings.TrimSpace(parts[idx])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
