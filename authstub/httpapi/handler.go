package httpapi

import (
	"encoding/json"
	"log"
	"mime"
	"net/http"

	"auth-siege/authstub/application"
	"auth-siege/authstub/domain"
)

const (
	RouteRegister = "/api/auth/register"
	RouteLogin    = "/api/auth/login"
	RouteLogout   = "/api/auth/logout"
	RouteHealth   = "/healthz"
	RouteMetrics  = "/metrics"

	tokenCookie  = "token"
	maxBodyBytes = 1 << 20
)

// TokenVerifier valida o cookie de sessão e devolve o subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

type Options struct {
	Auth    application.AuthService
	Tokens  TokenVerifier
	Metrics *Metrics
	Logger  *log.Logger
}

type handler struct {
	auth   application.AuthService
	tokens TokenVerifier
	logger *log.Logger
}

// NewHandler monta as rotas. Middlewares de admissão ficam por conta de quem
// chama (ver Admission).
func NewHandler(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	h := &handler{auth: opts.Auth, tokens: opts.Tokens, logger: opts.Logger}

	mux := http.NewServeMux()
	mux.Handle("POST "+RouteRegister, opts.Metrics.Instrument(RouteRegister, http.HandlerFunc(h.register)))
	mux.Handle("POST "+RouteLogin, opts.Metrics.Instrument(RouteLogin, http.HandlerFunc(h.login)))
	mux.Handle("POST "+RouteLogout, opts.Metrics.Instrument(RouteLogout, http.HandlerFunc(h.logout)))
	mux.HandleFunc("GET "+RouteHealth, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if opts.Metrics != nil {
		mux.Handle("GET "+RouteMetrics, opts.Metrics.Handler())
	}
	return mux
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterUser
	if !decode(w, r, &in) {
		return
	}

	u, err := h.auth.Register(r.Context(), in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, userBody{Status: statusSuccess, Data: userData{User: u.Public()}})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var in domain.LoginUser
	if !decode(w, r, &in) {
		return
	}

	sess, err := h.auth.Login(r.Context(), in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if sess.Token != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     tokenCookie,
			Value:    sess.Token,
			Path:     "/",
			MaxAge:   int(sess.MaxAge.Seconds()),
			HttpOnly: true,
		})
	}
	writeJSON(w, http.StatusOK, userBody{Status: statusSuccess, Data: userData{User: sess.User.Public()}})
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(tokenCookie)
	if err != nil || c.Value == "" {
		writeFail(w, http.StatusUnauthorized, msgTokenMissing)
		return
	}
	if h.tokens == nil {
		writeFail(w, http.StatusUnauthorized, msgTokenInvalid)
		return
	}
	if _, err := h.tokens.Verify(c.Value); err != nil {
		writeFail(w, http.StatusUnauthorized, msgTokenInvalid)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: tokenCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	writeJSON(w, http.StatusOK, messageBody{Status: statusSuccess})
}

// decode exige Content-Type application/json e lê o corpo; campos
// desconhecidos são ignorados.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != "application/json" {
		writeFail(w, http.StatusBadRequest, msgContentType)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeFail(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}
