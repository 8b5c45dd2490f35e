package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"auth-siege/authstub/domain"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"

	msgEmailExists      = "An User with this email already exists"
	msgWrongCredentials = "Email or password is wrong"
	msgServerError      = "Server Error. Please try again later"
	msgTokenMissing     = "You are not logged in, please provide token"
	msgTokenInvalid     = "Authentication token is invalid or expired"
	msgInvalidBody      = "Invalid JSON body"
	msgContentType      = "Content type error"
)

type messageBody struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type userData struct {
	User domain.PublicUser `json:"user"`
}

type userBody struct {
	Status string   `json:"status"`
	Data   userData `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	body := messageBody{Status: statusFail, Message: msg}
	if status >= http.StatusInternalServerError {
		body.Status = statusError
	}
	writeJSON(w, status, body)
}

// writeDomainError traduz erros de domínio para status HTTP.
// Qualquer erro desconhecido é logado e vira 500 sem detalhes.
func writeDomainError(w http.ResponseWriter, logger *log.Logger, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeFail(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, domain.ErrEmailExists):
		writeFail(w, http.StatusConflict, msgEmailExists)
	case errors.Is(err, domain.ErrWrongCredentials):
		writeFail(w, http.StatusUnauthorized, msgWrongCredentials)
	default:
		logger.Printf("internal error: %v", err)
		writeFail(w, http.StatusInternalServerError, msgServerError)
	}
}
