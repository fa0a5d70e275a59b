package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/cempulse/plant-ops/internal/api"
	"github.com/cempulse/plant-ops/internal/api/handler"
	"github.com/cempulse/plant-ops/internal/core/ports"
	"github.com/cempulse/plant-ops/internal/core/service"
	"github.com/cempulse/plant-ops/internal/infrastructure/catalog"
	"github.com/cempulse/plant-ops/internal/infrastructure/credentials"
	"github.com/cempulse/plant-ops/internal/infrastructure/db/memory"
	mongostore "github.com/cempulse/plant-ops/internal/infrastructure/db/mongo"
	redisstore "github.com/cempulse/plant-ops/internal/infrastructure/db/redis"
	"github.com/cempulse/plant-ops/internal/infrastructure/genai"
	"github.com/cempulse/plant-ops/internal/infrastructure/http/handlers"
	"github.com/cempulse/plant-ops/internal/infrastructure/queue"
	"github.com/cempulse/plant-ops/internal/pkg/config"
	"github.com/cempulse/plant-ops/internal/pkg/token"
	"github.com/cempulse/plant-ops/pkg/logger"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the plant ops HTTP server",
	Long: `Starts the HTTP server with the dashboard API, the protected UI pages,
health probes, Prometheus metrics and the Swagger UI.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log := logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  cfg.LogPretty,
			Service: "cempulse",
		})
		return serve(cmd.Context(), cfg, log)
	},
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	secret, insecure, err := cfg.SigningSecret()
	if err != nil {
		return err
	}
	if insecure {
		log.Warn().Msg("JWT_SECRET is not set; sessions are signed with the public development secret")
	}
	codec, err := token.NewCodec([]byte(secret))
	if err != nil {
		return err
	}

	store, err := loadCredentials(cfg, log)
	if err != nil {
		return err
	}
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	readiness := map[string]handlers.Pinger{}

	// --- Persistence ---
	var approvals ports.ApprovalRepository = memory.NewApprovalRepository()
	var auditSink ports.AuditSink = queue.NewLogSink(logger.Component("audit"))
	if cfg.Mongo.URI != "" {
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return fmt.Errorf("failed to connect to mongo: %w", err)
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		repo := mongostore.NewApprovalRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to create approval indexes: %w", err)
		}
		approvals = repo
		auditSink = mongostore.NewAuditRepository(db)
		readiness["mongo"] = mongostore.NewPinger(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")
	} else {
		log.Warn().Msg("MONGO_URI is not set; approvals are kept in memory and audit events go to the log")
	}

	var cache ports.AdvisoryCache = memory.NoopAdvisoryCache{}
	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()

		cache = redisstore.NewAdvisoryCache(client, cfg.GenAI.CacheTTL)
		readiness["redis"] = redisstore.NewPinger(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	// --- Audit workers ---
	dispatcher := queue.NewDispatcher(0, auditSink, logger.Component("audit"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	// --- Services ---
	if cfg.GenAI.APIKey == "" {
		log.Warn().Msg("GENAI_API_KEY is not set; advisory requests will fail")
	}
	generator := genai.NewClient(genai.Config{
		APIKey:          cfg.GenAI.APIKey,
		Endpoint:        cfg.GenAI.Endpoint,
		Model:           cfg.GenAI.Model,
		Temperature:     cfg.GenAI.Temperature,
		MaxOutputTokens: cfg.GenAI.MaxOutputTokens,
		Timeout:         cfg.GenAI.Timeout,
	}, logger.Component("genai"))

	authz := service.NewProcessAuthorizer(cfg.Auth.MasterRole, cfg.Auth.MasterDefaultProcesses, cfg.RoleMatch())
	authService := service.NewAuthService(store, codec, dispatcher, cfg.Auth.TokenTTL, logger.Component("auth"))

	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		Processes: service.NewProcessService(cat, authz),
		Advisory:  service.NewAdvisoryService(authz, generator, cache, dispatcher, logger.Component("advisory")),
		Approvals: service.NewApprovalService(approvals, cat, authz, dispatcher, logger.Component("approvals")),
		Cookie: handler.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.IsProduction(),
			MaxAge: cfg.Auth.TokenTTL,
		},
		LoginPath:         cfg.Web.LoginPath,
		ProtectedPrefixes: cfg.Web.ProtectedPrefixes,
		RoleMatch:         cfg.RoleMatch(),
		ApproverRoles:     cfg.Auth.ApproverRoles,
		WebRoot:           cfg.Web.Root,
		Readiness:         readiness,
		MetricsRegisterer: prometheus.DefaultRegisterer,
		Log:               logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	log.Info().Msg("server stopped")
	return nil
}

// loadCredentials reads CREDENTIALS_FILE, or falls back to the demo accounts
// outside production.
func loadCredentials(cfg *config.Config, log zerolog.Logger) (*credentials.Store, error) {
	if cfg.Auth.CredentialsFile != "" {
		records, err := credentials.LoadFile(cfg.Auth.CredentialsFile)
		if err != nil {
			return nil, err
		}
		store, err := credentials.NewStore(records)
		if err != nil {
			return nil, err
		}
		log.Info().Str("file", cfg.Auth.CredentialsFile).Int("users", store.Len()).Msg("credentials loaded")
		return store, nil
	}

	if cfg.IsProduction() {
		return nil, config.ErrMissingCredentialsFile
	}
	records, err := credentials.DemoRecords(bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	log.Warn().Int("users", len(records)).Msg("CREDENTIALS_FILE is not set; using demo accounts")
	return credentials.NewStore(records)
}
