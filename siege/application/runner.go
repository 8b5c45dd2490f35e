package application

import (
	"context"
	"fmt"
	"sync"

	"auth-siege/siege/domain"
)

// Runner dispara Tasks tarefas independentes, uma goroutine cada.
// A única coordenação entre elas é o Wait final.
type Runner struct {
	Client   domain.AuthClient
	Reporter domain.Reporter
	Tasks    int
}

// Run bloqueia até todas as tarefas terminarem.
func (r Runner) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := range r.Tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.report(r.RunTask(ctx, i))
		}()
	}
	wg.Wait()
}

// RunTask faz register e depois login com o mesmo payload.
// Se o register falhar na rede, o login não é tentado.
func (r Runner) RunTask(ctx context.Context, i int) domain.Outcome {
	out := domain.Outcome{Index: i}
	p := domain.NewPayload(i)

	status, err := r.Client.Register(ctx, p)
	if err != nil {
		out.Err = fmt.Errorf("register: %w", err)
		return out
	}
	out.RegisterStatus = status

	status, err = r.Client.Login(ctx, p)
	if err != nil {
		out.Err = fmt.Errorf("login: %w", err)
		return out
	}
	out.LoginStatus = status
	return out
}

func (r Runner) report(o domain.Outcome) {
	if r.Reporter == nil {
		return
	}
	r.Reporter.Report(o)
}
