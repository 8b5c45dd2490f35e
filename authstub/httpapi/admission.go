package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"auth-siege/authstub/application"
	"auth-siege/authstub/domain"
	"auth-siege/authstub/infra"
)

type AdmissionOptions struct {
	// Limiters nil desliga o rate limit.
	Limiters            domain.LimiterStore
	KeyFn               KeyFunc
	KeyHeader           string
	TrustXForwardedFor  bool
	RetryAfter          time.Duration
	AddRateLimitHeaders bool

	// MaxConcurrent <= 0 desliga o limite de concorrência.
	MaxConcurrent  int
	AcquireTimeout time.Duration

	// Recorders recebem cada decisão (best-effort).
	Recorders []domain.AdmissionRecorder
}

type rateInfo interface {
	RPS() float64
	Burst() int
}

// Admission aplica rate limit por cliente (429 + Retry-After) e depois o
// limite de requisições simultâneas (503).
func Admission(opts AdmissionOptions) func(next http.Handler) http.Handler {
	if opts.RetryAfter == 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.KeyHeader, opts.TrustXForwardedFor)
	}

	svc := application.Admission{
		Limiters:       opts.Limiters,
		RetryAfter:     opts.RetryAfter,
		AcquireTimeout: opts.AcquireTimeout,
	}
	if opts.MaxConcurrent > 0 {
		svc.Pool = infra.NewChanPool(opts.MaxConcurrent)
	}

	record := func(ctx context.Context, ev domain.AdmissionEvent) {
		for _, rec := range opts.Recorders {
			if rec != nil {
				_ = rec.Record(ctx, ev)
			}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := domain.Key(opts.KeyFn(r))
			ev := domain.AdmissionEvent{Key: key, Method: r.Method, Path: r.URL.Path, At: time.Now()}

			if opts.Limiters != nil {
				if opts.AddRateLimitHeaders {
					w.Header().Set("X-RateLimit-Key", string(key))
					if ri, ok := opts.Limiters.(rateInfo); ok {
						w.Header().Set("X-RateLimit-RPS", strconv.FormatFloat(ri.RPS(), 'f', -1, 64))
						w.Header().Set("X-RateLimit-Burst", strconv.Itoa(ri.Burst()))
					}
				}

				dec := svc.Decide(key)
				ev.Reason, ev.Allowed = domain.ReasonRateLimit, dec.Allowed
				record(r.Context(), ev)
				if !dec.Allowed {
					w.Header().Set("Retry-After", strconv.Itoa(int(dec.RetryAfter.Seconds())))
					writeFail(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
					return
				}
			}

			if svc.Pool != nil {
				release, ok := svc.Acquire(r.Context())
				ev.Reason, ev.Allowed = domain.ReasonConcurrency, ok
				record(r.Context(), ev)
				if !ok {
					writeFail(w, http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable))
					return
				}
				defer release()
			}

			next.ServeHTTP(w, r)
		})
	}
}
