package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auth-siege/authstub/domain"

	"github.com/google/uuid"
)

// AuthService concentra as regras de register/login.
type AuthService struct {
	Users  domain.UserStore
	Hasher domain.PasswordHasher
	Tokens domain.TokenIssuer

	// Now e NewID são opcionais (testes).
	Now   func() time.Time
	NewID func() string
}

// Session é o resultado de um login bem-sucedido.
// Token vazio quando não há TokenIssuer configurado.
type Session struct {
	User   domain.User
	Token  string
	MaxAge time.Duration
}

func (s AuthService) Register(ctx context.Context, in domain.RegisterUser) (domain.User, error) {
	if err := in.Validate(); err != nil {
		return domain.User{}, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := domain.User{
		ID:           s.newID(),
		Name:         in.Name,
		Email:        domain.NormalizeEmail(in.Email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Login não diferencia email inexistente de senha errada: ambos viram
// domain.ErrWrongCredentials.
func (s AuthService) Login(ctx context.Context, in domain.LoginUser) (Session, error) {
	if err := in.Validate(); err != nil {
		return Session{}, err
	}

	u, err := s.Users.FindByEmail(ctx, domain.NormalizeEmail(in.Email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return Session{}, domain.ErrWrongCredentials
	}
	if err != nil {
		return Session{}, err
	}

	if err := s.Hasher.Compare(u.PasswordHash, in.Password); err != nil {
		if errors.Is(err, domain.ErrWrongCredentials) {
			return Session{}, err
		}
		return Session{}, fmt.Errorf("compare password: %w", err)
	}

	sess := Session{User: u}
	if s.Tokens != nil {
		sess.Token, sess.MaxAge, err = s.Tokens.Issue(u.ID)
		if err != nil {
			return Session{}, fmt.Errorf("issue token: %w", err)
		}
	}
	return sess, nil
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s AuthService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
