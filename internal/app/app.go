package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AchrafReyani/job-matching-platform/internal/application"
	"github.com/AchrafReyani/job-matching-platform/internal/archive"
	"github.com/AchrafReyani/job-matching-platform/internal/cascade"
	"github.com/AchrafReyani/job-matching-platform/internal/config"
	"github.com/AchrafReyani/job-matching-platform/internal/database"
	"github.com/AchrafReyani/job-matching-platform/internal/deletion"
	"github.com/AchrafReyani/job-matching-platform/internal/handler"
	"github.com/AchrafReyani/job-matching-platform/internal/logger"
	"github.com/AchrafReyani/job-matching-platform/internal/metrics"
	"github.com/AchrafReyani/job-matching-platform/internal/middleware"
	"github.com/AchrafReyani/job-matching-platform/internal/notification"
	"github.com/AchrafReyani/job-matching-platform/internal/repository"
	"github.com/AchrafReyani/job-matching-platform/internal/security"
	"github.com/AchrafReyani/job-matching-platform/internal/worker/publish"
)

// Init loads the configuration and installs the JSON logger on w.
// The logger is set up first so that configuration errors are logged too.
func Init(w io.Writer) (*config.Config, error) {
	logger.SetupDefault(w, slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.SetupDefault(w, cfg.LogLevel)
	return cfg, nil
}

// Run is the process entry point. args is os.Args[1:].
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck skips full initialization.
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case CommandWorker:
		return runWorker(ctx, cfg)
	case CommandMigrate:
		return runMigrate(cfg, args[1:])
	default:
		return runServe(ctx, cfg)
	}
}

// openDB opens the pool and checks that the database answers.
func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := database.Open(cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// newAPIHandler wires repositories, services and the router.
// The returned stop function releases background resources.
func newAPIHandler(cfg *config.Config, db *sql.DB, reg *prometheus.Registry) (http.Handler, func()) {
	collector := metrics.NewCollector(reg)

	// Repositories
	store := repository.NewPostgresStore(db)
	userRepo := repository.NewPostgresUserRepo(db)
	vacancyRepo := repository.NewPostgresVacancyRepo(db)
	applicationRepo := repository.NewPostgresApplicationRepo(db)
	notificationRepo := repository.NewPostgresNotificationRepo(db)

	// Services
	notifier := notification.NewService(notificationRepo, security.NewTextSanitizer())
	coordinator := deletion.NewCoordinator(
		store, userRepo, vacancyRepo,
		archive.NewWriter(), cascade.NewDeleter(),
		notifier, collector,
	)
	applicationService := application.NewService(applicationRepo, notifier, collector)

	rateLimiter := middleware.NewRateLimiter(
		middleware.RateLimiterConfigPerMinute(cfg.RateLimitGeneral, cfg.RateLimitBulk),
	)

	router := handler.NewRouter(&handler.RouterDeps{
		Verifier:          security.NewJWTVerifier(cfg.JWTSecret),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            slog.Default(),
		StatusRecorder:    collector,

		DB:             db,
		MetricsHandler: metrics.Handler(reg),

		AdminService:       coordinator,
		MatchService:       coordinator,
		ApplicationService: applicationService,
	})

	return router, rateLimiter.Stop
}

// newRegistry returns a registry with the Go runtime and process collectors.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// runServe starts the API server and shuts it down gracefully when ctx is cancelled.
func runServe(ctx context.Context, cfg *config.Config) error {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	slog.Info("database connection established")

	router, stopRouter := newAPIHandler(cfg, db, newRegistry())
	defer stopRouter()

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // bulk deletions run inside the request
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("API server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server listen failed: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runWorker runs the news publisher until ctx is cancelled.
// Its metrics are served on SERVER_PORT.
func runWorker(ctx context.Context, cfg *config.Config) error {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	slog.Info("database connection established (worker)")

	reg := newRegistry()
	job := publish.NewJob(db, slog.Default(), metrics.NewCollector(reg))

	// The worker serves only /metrics.
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("worker metrics server failed", slog.String("error", err.Error()))
		}
	}()

	slog.Info("worker starting",
		slog.Duration("news_publish_interval", cfg.NewsPublishInterval),
		slog.String("metrics_addr", server.Addr),
	)

	job.Start(ctx, cfg.NewsPublishInterval)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("worker metrics server shutdown failed: %w", err)
	}

	slog.Info("worker stopped gracefully")
	return nil
}

// runMigrate applies pending migrations, or rolls all of them back with "migrate down".
func runMigrate(cfg *config.Config, args []string) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if len(args) > 0 && args[0] == "down" {
		if err := database.MigrateDown(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migration rollback failed: %w", err)
		}
		slog.Info("database migrations rolled back")
		return nil
	}

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := database.Version(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	slog.Info("database migrations completed successfully",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}

// runHealthcheck calls /health on the local server.
// Used as the container health check where no shell is available.
func runHealthcheck(port string) error {
	target := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(target)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL hides the credentials of a database URL for logging.
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	u.RawQuery = ""
	return u.Redacted()
}
