package domain

import (
	"encoding/json"
	"testing"
)

func TestNewPayload_EmailUsesIndex(t *testing.T) {
	p := NewPayload(42)
	if p.Email != "42@gmail.com" {
		t.Fatalf("expected 42@gmail.com, got %q", p.Email)
	}
	if p.Name != "ibaby" {
		t.Fatalf("expected fixed name, got %q", p.Name)
	}
	if p.Password != "password" || p.PasswordConfirm != "password" {
		t.Fatalf("expected fixed password pair, got %q/%q", p.Password, p.PasswordConfirm)
	}
}

func TestPayload_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(NewPayload(0))
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"name", "email", "password", "passwordConfirm"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("expected field %q in %s", k, b)
		}
	}
	if len(m) != 4 {
		t.Fatalf("expected exactly 4 fields, got %d: %s", len(m), b)
	}
}
