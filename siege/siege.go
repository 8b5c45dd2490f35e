package siege

import (
	"context"
	"io"
	"log"
	"net/http"

	"auth-siege/siege/application"
	"auth-siege/siege/infra"
)

const (
	// Tasks é o número de pares register+login disparados em paralelo.
	Tasks = 100

	DefaultBaseURL = "http://localhost:8080"
)

type Options struct {
	BaseURL string
	// HTTPClient opcional; nil usa um client sem timeout.
	HTTPClient *http.Client
	Out        io.Writer
	Logger     *log.Logger
}

// Run executa a carga completa e só retorna depois que todas as tarefas
// terminaram.
func Run(ctx context.Context, opts Options) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	client := infra.NewHTTPClient(opts.BaseURL, opts.HTTPClient)
	runner := application.Runner{
		Client:   client,
		Reporter: infra.NewConsoleReporter(opts.Out, opts.Logger),
		Tasks:    Tasks,
	}
	runner.Run(ctx)
}
