package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"auth-siege/authstub/domain"

	"github.com/redis/go-redis/v9"
)

// RedisUserStore guarda cada usuário como JSON em "<prefix>:user:<email>".
//
// A unicidade do email vem do SETNX: Create concorrente com o mesmo email
// resulta em um único vencedor.
type RedisUserStore struct {
	rdb    redis.UniversalClient
	prefix string
}

type RedisUserOption func(*RedisUserStore)

func WithUserPrefix(prefix string) RedisUserOption {
	return func(s *RedisUserStore) {
		if p := strings.Trim(prefix, ":"); p != "" {
			s.prefix = p
		}
	}
}

func NewRedisUserStore(rdb redis.UniversalClient, opts ...RedisUserOption) *RedisUserStore {
	s := &RedisUserStore{rdb: rdb, prefix: "authstub"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisUserStore) key(email string) string {
	return s.prefix + ":user:" + domain.NormalizeEmail(email)
}

func (s *RedisUserStore) Create(ctx context.Context, u domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, s.key(u.Email), b, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return domain.ErrEmailExists
	}
	return nil
}

func (s *RedisUserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	b, err := s.rdb.Get(ctx, s.key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("redis get: %w", err)
	}

	var u domain.User
	if err := json.Unmarshal(b, &u); err != nil {
		return domain.User{}, fmt.Errorf("decode user: %w", err)
	}
	return u, nil
}
