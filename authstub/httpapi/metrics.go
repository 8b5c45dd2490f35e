package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"auth-siege/authstub/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores do serviço num registry próprio.
// Um *Metrics nil é válido e não instrumenta nada.
type Metrics struct {
	reg      *prometheus.Registry
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	Rejected *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "authstub_requests_total", Help: "Requests by route and status code"},
			[]string{"route", "code"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Name: "authstub_request_duration_seconds", Help: "Handler latency", Buckets: prometheus.DefBuckets},
			[]string{"route"},
		),
		Rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "authstub_admission_rejected_total", Help: "Requests rejected before reaching a handler"},
			[]string{"reason"},
		),
	}
	m.reg.MustRegister(m.Requests, m.Latency, m.Rejected)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Record implementa domain.AdmissionRecorder: conta só as rejeições.
func (m *Metrics) Record(_ context.Context, ev domain.AdmissionEvent) error {
	if m == nil || ev.Allowed {
		return nil
	}
	m.Rejected.WithLabelValues(string(ev.Reason)).Inc()
	return nil
}

// Instrument mede status e latência de uma rota.
func (m *Metrics) Instrument(route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		m.Latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.Requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
