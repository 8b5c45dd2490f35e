package infra

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTIssuer emite tokens HS256 com sub = id do usuário.
type JWTIssuer struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, maxAge time.Duration) *JWTIssuer {
	if maxAge <= 0 {
		maxAge = 5 * time.Minute
	}
	return &JWTIssuer{secret: []byte(secret), maxAge: maxAge, now: time.Now}
}

func (i *JWTIssuer) Issue(subject string) (string, time.Duration, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.maxAge)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", 0, err
	}
	return tok, i.maxAge, nil
}

// Verify devolve o subject de um token válido e não expirado.
func (i *JWTIssuer) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token without subject")
	}
	return claims.Subject, nil
}
