package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/askdex/internal/config"
	"github.com/kailas-cloud/askdex/internal/db"
	dbRedis "github.com/kailas-cloud/askdex/internal/db/redis"
	"github.com/kailas-cloud/askdex/internal/domain"
	domrec "github.com/kailas-cloud/askdex/internal/domain/record"
	logpkg "github.com/kailas-cloud/askdex/internal/logger"
	"github.com/kailas-cloud/askdex/internal/metrics"
	"github.com/kailas-cloud/askdex/internal/repository/gencache"
	recordrepo "github.com/kailas-cloud/askdex/internal/repository/record"
	chiTransport "github.com/kailas-cloud/askdex/internal/transport/chi"
	openaiGen "github.com/kailas-cloud/askdex/internal/transport/openai"
	answeruc "github.com/kailas-cloud/askdex/internal/usecase/answer"
	askuc "github.com/kailas-cloud/askdex/internal/usecase/ask"
	healthuc "github.com/kailas-cloud/askdex/internal/usecase/health"
	retrievaluc "github.com/kailas-cloud/askdex/internal/usecase/retrieval"
	scopeuc "github.com/kailas-cloud/askdex/internal/usecase/scope"
	"github.com/kailas-cloud/askdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting askdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	schema := domrec.Schema{
		Required:   cfg.Records.Required,
		Optional:   cfg.Records.Optional,
		Searchable: cfg.Records.Searchable,
	}

	// Create the record store based on driver
	var (
		records interface {
			chiTransport.RecordStore
			retrievaluc.Searcher
		}
		pinger  healthuc.DBPinger
		kvStore db.Store
	)
	switch cfg.Database.Driver {
	case "memory":
		mem := recordrepo.NewMemory(schema)
		records = mem
		pinger = mem
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database")

		records = recordrepo.NewRedis(store, schema)
		pinger = store
		kvStore = store
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}

	// Register generation metrics explicitly (no init())
	metrics.RegisterGenerationMetrics()

	// Build generator chain — composition root
	generator, genHealth := buildGenerator(cfg.Generation, kvStore, logger)
	if generator != nil {
		logger.Info("Generator created",
			zap.String("provider", cfg.Generation.Generator.Provider),
			zap.String("model", cfg.Generation.Generator.Model),
			zap.Bool("answer_cache", kvStore != nil && cfg.Generation.Generator.CacheTTLSec > 0),
		)
	} else {
		logger.Warn("No generation provider configured, grounded answers will be degraded")
		generator = unavailableGenerator{}
	}

	// Create use case services
	scopeSvc := scopeuc.New(scopeDomains(cfg.Scope))
	retrievalSvc := retrievaluc.New(records)
	answerSvc := answeruc.New(generator, cfg.Retrieval.GroundedConfidence, logger)
	askSvc := askuc.New(scopeSvc, retrievalSvc, answerSvc, cfg.Retrieval.TopK, logger)

	// Health service
	healthSvc := healthuc.New(pinger, genHealth)

	// Create chi server
	server := chiTransport.NewServer(askSvc, records, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func scopeDomains(cfg config.ScopeConfig) []scopeuc.Domain {
	domains := make([]scopeuc.Domain, len(cfg.Domains))
	for i, d := range cfg.Domains {
		domains[i] = scopeuc.Domain{Category: d.Category, Keywords: d.Keywords}
	}
	return domains
}

// buildGenerator assembles the decorator chain: OpenAI -> Cached -> Instruction.
// Returns nil when no provider is configured.
func buildGenerator(cfg config.GenerationConfig, store db.Store, logger *zap.Logger) (domain.Generator, healthuc.GenerationChecker) {
	genCfg := cfg.Generator
	if genCfg.Provider == "" {
		return nil, nil
	}
	provCfg := cfg.Providers[genCfg.Provider]

	base := openaiGen.NewGenerator(&openaiGen.Config{
		APIKey:      provCfg.APIKey,
		BaseURL:     provCfg.BaseURL,
		Model:       genCfg.Model,
		MaxTokens:   genCfg.MaxTokens,
		Temperature: genCfg.Temperature,
		Provider:    genCfg.Provider,
		Logger:      logger,
	})

	// Cached
	var generator domain.Generator = base
	if store != nil && genCfg.CacheTTLSec > 0 {
		ttl := time.Duration(genCfg.CacheTTLSec) * time.Second
		generator = gencache.New(base, store, ttl, metrics.AnswerCacheTotal, logger)
	}

	// Instruction prefix (outermost — cache key includes instruction)
	if genCfg.Instruction != "" {
		generator = domain.NewInstructionGenerator(generator, genCfg.Instruction)
	}

	return generator, base
}

// unavailableGenerator fails every request; the answer composer degrades in place.
type unavailableGenerator struct{}

func (unavailableGenerator) Generate(context.Context, string) (domain.GenerationResult, error) {
	return domain.GenerationResult{}, fmt.Errorf("no generation provider configured: %w", domain.ErrGenerationFailed)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
