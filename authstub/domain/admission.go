package domain

// Contratos de admissão (rate limit por cliente e limite de concorrência),
// sem dependência de net/http.

import (
	"context"
	"time"
)

type Key string

// Limiter decide se uma requisição pode passar agora.
// A camada de infra usa golang.org/x/time/rate.
type Limiter interface {
	Allow() bool
}

// LimiterStore obtém um limiter por chave (IP, header, etc.).
type LimiterStore interface {
	Get(Key) Limiter
}

type Decision struct {
	Allowed bool
	// RetryAfter é o valor de Retry-After quando bloquear. 0 = sem recomendação.
	RetryAfter time.Duration
}

// SlotPool representa uma capacidade finita de requisições simultâneas.
//
// Acquire bloqueia até conseguir uma vaga ou até o ctx encerrar. O release
// retornado deve ser chamado exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}

// Reason identifica qual guarda tomou a decisão.
type Reason string

const (
	ReasonRateLimit   Reason = "rate_limit"
	ReasonConcurrency Reason = "concurrency"
)

// AdmissionEvent registra uma decisão de admissão.
//
// Cuidado com cardinalidade ao persistir Key/Path.
type AdmissionEvent struct {
	Key     Key
	Reason  Reason
	Allowed bool

	Method string
	Path   string

	At time.Time
}

// AdmissionRecorder persiste eventos de admissão. É best-effort: erro aqui
// nunca derruba a requisição.
type AdmissionRecorder interface {
	Record(ctx context.Context, ev AdmissionEvent) error
}
