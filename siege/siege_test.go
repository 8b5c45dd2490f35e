package siege

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"auth-siege/authstub/application"
	"auth-siege/authstub/httpapi"
	"auth-siege/authstub/infra"

	"golang.org/x/crypto/bcrypt"
)

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := httpapi.NewHandler(httpapi.Options{
		Auth: application.AuthService{
			Users:  infra.NewMemoryUserStore(),
			Hasher: infra.BcryptHasher{Cost: bcrypt.MinCost},
			Tokens: infra.NewJWTIssuer("smoke", 0),
		},
		Logger: log.New(io.Discard, "", 0),
	})
	h = httpapi.Admission(httpapi.AdmissionOptions{MaxConcurrent: Tasks})(h)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func lines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestRun_SmokeAgainstAuthstub(t *testing.T) {
	srv := newAuthServer(t)
	var out, logs bytes.Buffer

	Run(context.Background(), Options{BaseURL: srv.URL, Out: &out, Logger: log.New(&logs, "", 0)})

	got := lines(out.String())
	if len(got) != Tasks {
		t.Fatalf("expected %d lines, got %d (logs: %s)", Tasks, len(got), logs.String())
	}
	for _, l := range got {
		if l != "register: 201 | login: 200" {
			t.Fatalf("unexpected line %q", l)
		}
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no failures, got %q", logs.String())
	}
}

func TestRun_SecondRunConflictsOnRegister(t *testing.T) {
	srv := newAuthServer(t)
	Run(context.Background(), Options{BaseURL: srv.URL, Out: io.Discard, Logger: log.New(io.Discard, "", 0)})

	var out bytes.Buffer
	Run(context.Background(), Options{BaseURL: srv.URL, Out: &out, Logger: log.New(io.Discard, "", 0)})

	got := lines(out.String())
	if len(got) != Tasks {
		t.Fatalf("expected %d lines, got %d", Tasks, len(got))
	}
	for _, l := range got {
		if l != "register: 409 | login: 200" {
			t.Fatalf("unexpected line %q", l)
		}
	}
}

func TestRun_ServerDownLogsEveryTask(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	var out, logs bytes.Buffer
	Run(context.Background(), Options{BaseURL: url, Out: &out, Logger: log.New(&logs, "", 0)})

	if out.Len() != 0 {
		t.Fatalf("expected no status lines, got %q", out.String())
	}
	failures := lines(logs.String())
	if len(failures) != Tasks {
		t.Fatalf("expected %d failure lines, got %d", Tasks, len(failures))
	}
	for _, l := range failures {
		if !strings.HasPrefix(l, "Request failed: register: ") {
			t.Fatalf("unexpected failure line %q", l)
		}
	}
}

func TestRun_LoginConnectionDroppedIsLogged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/register" {
			w.WriteHeader(http.StatusCreated)
			return
		}
		// fecha a conexão sem resposta
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		_ = conn.Close()
	}))
	t.Cleanup(srv.Close)

	var out, logs bytes.Buffer
	Run(context.Background(), Options{BaseURL: srv.URL, Out: &out, Logger: log.New(&logs, "", 0)})

	if out.Len() != 0 {
		t.Fatalf("expected no status lines, got %q", out.String())
	}
	failures := lines(logs.String())
	if len(failures) != Tasks {
		t.Fatalf("expected %d failure lines, got %d", Tasks, len(failures))
	}
	for _, l := range failures {
		if !strings.HasPrefix(l, "Request failed: login: ") {
			t.Fatalf("unexpected failure line %q", l)
		}
	}
}
