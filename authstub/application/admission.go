package application

import (
	"context"
	"time"

	"auth-siege/authstub/domain"
)

// Admission concentra as duas guardas de entrada: token bucket por chave e
// vagas de concorrência com timeout. Não sabe nada sobre HTTP.
type Admission struct {
	Limiters   domain.LimiterStore
	RetryAfter time.Duration

	Pool           domain.SlotPool
	AcquireTimeout time.Duration
}

// Decide aplica o rate limit da chave. Sem store, tudo passa.
func (a Admission) Decide(key domain.Key) domain.Decision {
	if a.Limiters == nil {
		return domain.Decision{Allowed: true}
	}
	retry := a.RetryAfter
	if retry <= 0 {
		retry = 1 * time.Second
	}

	lim := a.Limiters.Get(key)
	if lim == nil || lim.Allow() {
		return domain.Decision{Allowed: true}
	}
	return domain.Decision{Allowed: false, RetryAfter: retry}
}

// Acquire tenta uma vaga de concorrência.
//   - AcquireTimeout <= 0: espera até o ctx encerrar.
//   - AcquireTimeout > 0: espera no máximo esse tempo.
//
// Com ok=false nenhuma vaga foi adquirida.
func (a Admission) Acquire(ctx context.Context) (func(), bool) {
	if a.Pool == nil {
		return func() {}, true
	}
	if a.AcquireTimeout <= 0 {
		return a.Pool.Acquire(ctx)
	}

	acqCtx, cancel := context.WithTimeout(ctx, a.AcquireTimeout)
	defer cancel()
	return a.Pool.Acquire(acqCtx)
}
