package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"auth-siege/siege/domain"
)

const (
	RegisterPath = "/api/auth/register"
	LoginPath    = "/api/auth/login"
)

// HTTPClient implementa domain.AuthClient com POSTs JSON.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

// NewHTTPClient cria o client. hc nil usa um http.Client sem timeout.
func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = &http.Client{}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), hc: hc}
}

func (c *HTTPClient) Register(ctx context.Context, p domain.Payload) (int, error) {
	return c.post(ctx, RegisterPath, p)
}

func (c *HTTPClient) Login(ctx context.Context, p domain.Payload) (int, error) {
	return c.post(ctx, LoginPath, p)
}

// post devolve só o status; o corpo é descartado.
func (c *HTTPClient) post(ctx context.Context, path string, p domain.Payload) (int, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
