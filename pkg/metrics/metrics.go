package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shayari", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shayari", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// Mutations counts successful record mutations by operation (create|update|delete|react).
	Mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shayari", Name: "mutations_total", Help: "Number of successful record mutations by operation."},
		[]string{"op"},
	)
	Reactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shayari", Name: "reactions_total", Help: "Number of reaction increments by emoji."},
		[]string{"emoji"},
	)
	// AccessDenied counts policy denials by operation.
	AccessDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shayari", Name: "access_denied_total", Help: "Number of requests denied by the access policy."},
		[]string{"op"},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shayari", Name: "login_attempts_total", Help: "Number of login attempts by outcome."},
		[]string{"outcome"},
	)
	PublicCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shayari", Name: "public_cache_lookups_total", Help: "Public listing cache lookups by result (hit|miss|error)."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(Mutations)
	reg.MustRegister(Reactions)
	reg.MustRegister(AccessDenied)
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(PublicCacheLookups)
}
