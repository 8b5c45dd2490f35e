package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"auth-siege/authstub/application"
	"auth-siege/authstub/domain"
	"auth-siege/authstub/httpapi"
	"auth-siege/authstub/infra"
	"auth-siege/internal/envconfig"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := envconfig.LoadDotEnv(); err != nil {
		log.Fatalf(".env error: %v", err)
	}
	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metrics := httpapi.NewMetrics()
	recorders := []domain.AdmissionRecorder{metrics}

	var users domain.UserStore = infra.NewMemoryUserStore()
	var rdb redis.UniversalClient
	if cfg.userStore == "redis" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		pingCancel()
		if err != nil {
			log.Fatalf("redis ping error: %v", err)
		}
		users = infra.NewRedisUserStore(rdb, infra.WithUserPrefix(cfg.redisPrefix))
	}

	stats := newAdmissionStats(cfg, rdb)
	if stats != nil {
		recorders = append(recorders, stats)
	}
	if mem, ok := stats.(*infra.MemoryAdmissionStats); ok {
		defer func() {
			total := mem.Total()
			log.Printf("admission totals: allowed=%d denied=%d", total.Allowed, total.Denied)
		}()
	}

	tokens := infra.NewJWTIssuer(cfg.jwtSecret, cfg.tokenMaxAge)
	h := httpapi.NewHandler(httpapi.Options{
		Auth: application.AuthService{
			Users:  users,
			Hasher: infra.BcryptHasher{Cost: cfg.bcryptCost},
			Tokens: tokens,
		},
		Tokens:  tokens,
		Metrics: metrics,
	})

	admission := httpapi.AdmissionOptions{
		KeyHeader:           cfg.rateKeyHeader,
		TrustXForwardedFor:  cfg.trustXFF,
		RetryAfter:          cfg.retryAfter,
		AddRateLimitHeaders: cfg.addHeaders,
		MaxConcurrent:       cfg.concurrencyMax,
		AcquireTimeout:      cfg.concurrencyTimeout,
		Recorders:           recorders,
	}
	if cfg.rateEnabled {
		limiters := infra.NewLimiterStore(cfg.rateRPS, cfg.rateBurst)
		limiters.StartJanitor(ctx)
		admission.Limiters = limiters
	}
	h = httpapi.Admission(admission)(h)

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("authstub listening on %s", cfg.listenAddr)
	log.Printf("store: %s redisAddr=%q prefix=%q bcryptCost=%d tokenMaxAge=%s", cfg.userStore, cfg.redisAddr, cfg.redisPrefix, cfg.bcryptCost, cfg.tokenMaxAge)
	log.Printf("rate: enabled=%v rps=%.3f burst=%d keyHeader=%q trustXFF=%v", cfg.rateEnabled, cfg.rateRPS, cfg.rateBurst, cfg.rateKeyHeader, cfg.trustXFF)
	log.Printf("concurrency: max=%d acquireTimeout=%s admissionStats=%v", cfg.concurrencyMax, cfg.concurrencyTimeout, cfg.admissionStats)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

// newAdmissionStats escolhe onde contar as decisões de admissão: Redis quando
// o store de usuários já é Redis, memória caso contrário (totais logados no
// shutdown). Retorna nil com ADMISSION_STATS_ENABLED=false.
func newAdmissionStats(cfg config, rdb redis.UniversalClient) domain.AdmissionRecorder {
	if !cfg.admissionStats {
		return nil
	}
	if rdb != nil {
		return infra.NewRedisAdmissionStats(rdb,
			infra.WithStatsPrefix(cfg.redisPrefix+":admission"),
			infra.WithStatsTTL(cfg.admissionStatsTTL),
		)
	}
	return infra.NewMemoryAdmissionStats()
}

type config struct {
	listenAddr string

	userStore     string
	redisAddr     string
	redisPassword string
	redisDB       int
	redisPrefix   string

	jwtSecret   string
	tokenMaxAge time.Duration
	bcryptCost  int

	rateEnabled        bool
	rateRPS            float64
	rateBurst          int
	rateKeyHeader      string
	trustXFF           bool
	retryAfter         time.Duration
	addHeaders         bool
	concurrencyMax     int
	concurrencyTimeout time.Duration

	admissionStats    bool
	admissionStatsTTL time.Duration
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = envconfig.String("LISTEN_ADDR", ":8080")

	cfg.userStore = strings.ToLower(envconfig.String("USER_STORE", "memory"))
	cfg.redisAddr = envconfig.String("REDIS_ADDR", "localhost:6379")
	cfg.redisPassword = envconfig.String("REDIS_PASSWORD", "")
	cfg.redisDB = envconfig.Int("REDIS_DB", 0)
	cfg.redisPrefix = envconfig.String("REDIS_PREFIX", "authstub")

	cfg.jwtSecret = envconfig.String("JWT_SECRET", "authstub-dev-secret")
	cfg.tokenMaxAge = envconfig.Duration("TOKEN_MAX_AGE", 5*time.Minute)
	cfg.bcryptCost = envconfig.Int("BCRYPT_COST", bcrypt.DefaultCost)

	// desligado por padrão: a carga sai toda do mesmo IP
	cfg.rateEnabled = envconfig.Bool("RATE_ENABLED", false)
	cfg.rateRPS = envconfig.Float("RATE_RPS", 10)
	if burst, ok := envconfig.LookupInt("RATE_BURST"); ok {
		cfg.rateBurst = burst
	} else {
		cfg.rateBurst = 20
		if envconfig.IsSet("RATE_RPS") && cfg.rateRPS > 0 && cfg.rateRPS < 1 {
			cfg.rateBurst = 1
		}
	}
	cfg.rateKeyHeader = envconfig.String("RATE_KEY_HEADER", "")
	cfg.trustXFF = envconfig.Bool("TRUST_XFF", false)
	cfg.retryAfter = envconfig.Duration("RETRY_AFTER", 1*time.Second)
	cfg.addHeaders = envconfig.Bool("ADD_RATELIMIT_HEADERS", false)
	cfg.concurrencyMax = envconfig.Int("CONCURRENCY_MAX", 100)
	cfg.concurrencyTimeout = envconfig.Duration("CONCURRENCY_TIMEOUT", 0)

	cfg.admissionStats = envconfig.Bool("ADMISSION_STATS_ENABLED", false)
	cfg.admissionStatsTTL = envconfig.Duration("ADMISSION_STATS_TTL", 24*time.Hour)

	switch cfg.userStore {
	case "memory", "redis":
	default:
		return config{}, errors.New("USER_STORE must be memory or redis")
	}
	if cfg.userStore == "redis" && cfg.redisAddr == "" {
		return config{}, errors.New("REDIS_ADDR is required for the redis store")
	}
	if cfg.bcryptCost < bcrypt.MinCost || cfg.bcryptCost > bcrypt.MaxCost {
		return config{}, errors.New("BCRYPT_COST out of range")
	}
	if cfg.rateRPS <= 0 {
		return config{}, errors.New("RATE_RPS must be > 0")
	}
	if cfg.rateBurst <= 0 {
		return config{}, errors.New("RATE_BURST must be > 0")
	}
	if cfg.concurrencyMax < 0 {
		return config{}, errors.New("CONCURRENCY_MAX must be >= 0")
	}
	return cfg, nil
}
