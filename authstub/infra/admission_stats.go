package infra

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"auth-siege/authstub/domain"

	"github.com/redis/go-redis/v9"
)

type Counters struct {
	Allowed int64
	Denied  int64
}

func (c *Counters) add(allowed bool) {
	if allowed {
		c.Allowed++
		return
	}
	c.Denied++
}

// MemoryAdmissionStats conta decisões em memória, por motivo.
// Sem expiração; útil em testes e desenvolvimento.
type MemoryAdmissionStats struct {
	mu       sync.Mutex
	total    Counters
	byReason map[domain.Reason]Counters
}

func NewMemoryAdmissionStats() *MemoryAdmissionStats {
	return &MemoryAdmissionStats{byReason: make(map[domain.Reason]Counters)}
}

func (s *MemoryAdmissionStats) Record(_ context.Context, ev domain.AdmissionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev.Allowed)
	c := s.byReason[ev.Reason]
	c.add(ev.Allowed)
	s.byReason[ev.Reason] = c
	return nil
}

func (s *MemoryAdmissionStats) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryAdmissionStats) ByReason(r domain.Reason) Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byReason[r]
}

// RedisAdmissionStats grava contadores em hashes do Redis:
//
//	<prefix>:total                 allowed|denied (cumulativo, sem TTL)
//	<prefix>:minute:<YYYYMMDDhhmm> allowed|denied (com TTL)
//	<prefix>:reason                <reason>:allowed|denied
type RedisAdmissionStats struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

type RedisStatsOption func(*RedisAdmissionStats)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisAdmissionStats) { s.prefix = strings.Trim(prefix, ":") }
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisAdmissionStats) { s.ttl = d }
}

func NewRedisAdmissionStats(rdb redis.UniversalClient, opts ...RedisStatsOption) *RedisAdmissionStats {
	s := &RedisAdmissionStats{
		rdb:    rdb,
		prefix: "authstub:admission",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisAdmissionStats) Record(ctx context.Context, ev domain.AdmissionEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	field := "denied"
	if ev.Allowed {
		field = "allowed"
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
	pipe.HIncrBy(ctx, bucketKey, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, bucketKey, s.ttl)
	}

	if ev.Reason != "" {
		pipe.HIncrBy(ctx, s.prefix+":reason", string(ev.Reason)+":"+field, 1)
	}

	_, err := pipe.Exec(ctx)
	return err
}
