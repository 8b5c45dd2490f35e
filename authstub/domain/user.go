package domain

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"
)

const (
	PasswordMinLen = 6
	PasswordMaxLen = 25
)

var (
	ErrEmailExists      = errors.New("email already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongCredentials = errors.New("wrong credentials")
)

// ValidationError é erro de entrada do cliente (vira 400).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser é o usuário sem o hash de senha, usado nas respostas.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type RegisterUser struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func (in RegisterUser) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "Name is required"}
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if err := validatePassword("password", in.Password); err != nil {
		return err
	}
	if err := validatePassword("passwordConfirm", in.PasswordConfirm); err != nil {
		return err
	}
	if in.Password != in.PasswordConfirm {
		return &ValidationError{Field: "passwordConfirm", Message: "Passwords do not match"}
	}
	return nil
}

// LoginUser ignora campos extras do corpo (ex.: name, passwordConfirm).
type LoginUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginUser) Validate() error {
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	return validatePassword("password", in.Password)
}

// NormalizeEmail é a forma usada como chave nos stores.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "Email is invalid"}
	}
	return nil
}

func validatePassword(field, pw string) error {
	switch {
	case pw == "":
		return &ValidationError{Field: field, Message: "Password is required"}
	case len(pw) < PasswordMinLen:
		return &ValidationError{Field: field, Message: "Password must be at least " + strconv.Itoa(PasswordMinLen) + " characters"}
	case len(pw) > PasswordMaxLen:
		return &ValidationError{Field: field, Message: "Password must be at most " + strconv.Itoa(PasswordMaxLen) + " characters"}
	}
	return nil
}
