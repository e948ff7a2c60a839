package ratelimit

import "time"

// Tier names a rate-limit policy bucket with its own window and threshold.
type Tier string

const (
	// TierGeneral is the baseline applied to every endpoint.
	TierGeneral Tier = "general"
	// TierEmail guards the submission endpoint; evaluated before
	// validation so unvalidated spam still consumes quota.
	TierEmail Tier = "email"
	// TierHealth guards the health endpoint.
	TierHealth Tier = "health"
	// TierStrict is reserved for repeated-failure backoff. It is
	// configured and counted but not wired to any endpoint yet.
	TierStrict Tier = "strict"
)

// TierConfig is the window and threshold for one tier.
type TierConfig struct {
	Window      time.Duration
	MaxRequests int
}

// DefaultTiers returns the built-in tier policies.
func DefaultTiers() map[Tier]TierConfig {
	return map[Tier]TierConfig{
		TierGeneral: {Window: 15 * time.Minute, MaxRequests: 100},
		TierEmail:   {Window: 60 * time.Minute, MaxRequests: 5},
		TierHealth:  {Window: time.Minute, MaxRequests: 30},
		TierStrict:  {Window: 5 * time.Minute, MaxRequests: 3},
	}
}

// Message returns the client-facing denial message for a tier.
func (t Tier) Message() string {
	switch t {
	case TierEmail:
		return "Too many email requests from this IP. Please wait before sending another message."
	case TierHealth:
		return "Too many health check requests."
	case TierStrict:
		return "Too many failed attempts. Please wait 5 minutes before trying again."
	default:
		return "Too many requests from this IP, please try again later."
	}
}
