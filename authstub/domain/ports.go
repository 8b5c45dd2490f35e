package domain

import (
	"context"
	"time"
)

// UserStore persiste usuários indexados por email.
//
// Create deve ser atômico quanto à unicidade do email: dois Create
// concorrentes com o mesmo email resultam em exatamente um ErrEmailExists.
// FindByEmail retorna ErrUserNotFound quando não existe.
type UserStore interface {
	Create(ctx context.Context, u User) error
	FindByEmail(ctx context.Context, email string) (User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare retorna nil quando a senha confere.
	Compare(hash, password string) error
}

// TokenIssuer emite o token de sessão devolvido no login.
type TokenIssuer interface {
	Issue(subject string) (token string, maxAge time.Duration, err error)
}
