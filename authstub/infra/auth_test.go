package infra

import (
	"errors"
	"testing"
	"time"

	"auth-siege/authstub/domain"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "password" {
		t.Fatalf("expected hashed value")
	}
	if err := h.Compare(hash, "password"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := h.Compare(hash, "nope-nope"); !errors.Is(err, domain.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials, got %v", err)
	}
}

func TestBcryptHasher_CorruptHashIsNotWrongCredentials(t *testing.T) {
	err := BcryptHasher{}.Compare("not-a-hash", "password")
	if err == nil || errors.Is(err, domain.ErrWrongCredentials) {
		t.Fatalf("expected generic error, got %v", err)
	}
}

func TestJWTIssuer_IssueAndVerify(t *testing.T) {
	iss := NewJWTIssuer("secret", 0)

	tok, maxAge, err := iss.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if maxAge != 5*time.Minute {
		t.Fatalf("expected default max age 5m, got %s", maxAge)
	}
	sub, err := iss.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "user-1" {
		t.Fatalf("expected subject user-1, got %q", sub)
	}
}

func TestJWTIssuer_RejectsOtherSecretAndExpired(t *testing.T) {
	iss := NewJWTIssuer("secret", time.Minute)
	tok, _, err := iss.Issue("user-1")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewJWTIssuer("other", time.Minute).Verify(tok); err == nil {
		t.Fatalf("expected signature error")
	}

	later := NewJWTIssuer("secret", time.Minute)
	later.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := later.Verify(tok); err == nil {
		t.Fatalf("expected expired token error")
	}
}
