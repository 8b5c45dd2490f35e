package infra

import (
	"context"
	"testing"
	"time"
)

func TestChanPool_BlocksWhenFullAndReleases(t *testing.T) {
	p := NewChanPool(1)
	if p.Cap() != 1 {
		t.Fatalf("expected capacity 1, got %d", p.Cap())
	}

	release, ok := p.Acquire(context.Background())
	if !ok {
		t.Fatalf("expected first acquire to succeed")
	}
	if p.InUse() != 1 {
		t.Fatalf("expected 1 slot in use, got %d", p.InUse())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, ok := p.Acquire(ctx); ok {
		t.Fatalf("expected second acquire to time out")
	}

	release()
	if p.InUse() != 0 {
		t.Fatalf("expected slot to be released, got %d in use", p.InUse())
	}
	if _, ok := p.Acquire(context.Background()); !ok {
		t.Fatalf("expected acquire after release to succeed")
	}
}

func TestChanPool_HoldsWholeLoad(t *testing.T) {
	// CONCURRENCY_MAX padrão comporta as 100 tarefas da carga ao mesmo tempo
	p := NewChanPool(100)

	releases := make([]func(), 0, p.Cap())
	for range p.Cap() {
		release, ok := p.Acquire(context.Background())
		if !ok {
			t.Fatalf("expected acquire %d to succeed", len(releases))
		}
		releases = append(releases, release)
	}
	if p.InUse() != p.Cap() {
		t.Fatalf("expected pool full, got %d/%d", p.InUse(), p.Cap())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if _, ok := p.Acquire(ctx); ok {
		t.Fatalf("expected 101st acquire to fail")
	}

	for _, release := range releases {
		release()
	}
	if p.InUse() != 0 {
		t.Fatalf("expected empty pool, got %d", p.InUse())
	}
}
