// Command siege dispara 100 pares register+login concorrentes contra o
// serviço de autenticação e imprime os status de cada par.
package main

import (
	"context"
	"errors"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"auth-siege/internal/envconfig"
	"auth-siege/siege"
)

func main() {
	if err := envconfig.LoadDotEnv(); err != nil {
		log.Fatalf(".env error: %v", err)
	}
	baseURL, err := readBaseURL()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// falhas saem no stdout sem timestamp, no mesmo formato das linhas de status
	siege.Run(ctx, siege.Options{BaseURL: baseURL, Out: os.Stdout, Logger: log.New(os.Stdout, "", 0)})
}

func readBaseURL() (string, error) {
	raw := envconfig.String("SIEGE_BASE_URL", siege.DefaultBaseURL)
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", errors.New("SIEGE_BASE_URL must be an absolute http(s) URL")
	}
	return raw, nil
}
