package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"devflow/internal/common/pagination"
	"devflow/internal/config"
	pgRepo "devflow/internal/infra/adapter/persistence/postgres"
	"devflow/internal/infra/db"
	"devflow/internal/infra/storage"
	"devflow/internal/observability/logging"
	"devflow/internal/resilience/circuitbreaker"

	artUC "devflow/internal/usecase/article"
	bookmarkUC "devflow/internal/usecase/bookmark"
	cmtUC "devflow/internal/usecase/comment"
	followUC "devflow/internal/usecase/follow"
	intUC "devflow/internal/usecase/interaction"
	"devflow/internal/usecase/relation"
	tagUC "devflow/internal/usecase/tag"
	uploadUC "devflow/internal/usecase/upload"
	userUC "devflow/internal/usecase/user"

	hhttp "devflow/internal/handler/http"
	harticle "devflow/internal/handler/http/article"
	hauth "devflow/internal/handler/http/auth"
	hbookmark "devflow/internal/handler/http/bookmark"
	hcomment "devflow/internal/handler/http/comment"
	hinteract "devflow/internal/handler/http/interact"
	"devflow/internal/handler/http/requestid"
	htag "devflow/internal/handler/http/tag"
	hupload "devflow/internal/handler/http/upload"
	huser "devflow/internal/handler/http/user"
)

func main() {
	// A missing .env is fine; production sets real environment variables.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load("")
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	validateJWTSecret(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	store, err := initStorage(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to initialize image storage", slog.Any("error", err))
		os.Exit(1)
	}

	handler := setupServer(cfg, database, store, getVersion(), logger)
	runServer(cfg, handler, getVersion(), logger)
}

// validateJWTSecret refuses to start with a missing or weak signing secret.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value")
			os.Exit(1)
		}
	}
}

// initDatabase opens the connection pool and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// initStorage builds the configured image store behind a circuit breaker.
func initStorage(ctx context.Context, cfg config.Config) (storage.ImageStore, error) {
	var store storage.ImageStore
	var err error
	switch cfg.Storage.Backend {
	case "minio":
		store, err = storage.NewMinioStoreFromEnv(ctx)
	default:
		store, err = storage.NewFilesystemStore(cfg.Storage.Root)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s storage: %w", cfg.Storage.Backend, err)
	}
	return circuitbreaker.NewStore(store), nil
}

func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires repositories, services, and handlers into the root mux
// and wraps it with the middleware chain.
func setupServer(cfg config.Config, database *sql.DB, store storage.ImageStore, version string, logger *slog.Logger) http.Handler {
	// Repositories run against the circuit-breaker handle, so a dead
	// database fails requests fast instead of piling them up.
	handle := circuitbreaker.NewDB(database)

	articles := pgRepo.NewArticleRepo(handle)
	comments := pgRepo.NewCommentRepo(handle)
	likes := pgRepo.NewLikeRepo(handle)
	follows := pgRepo.NewFollowRepo(handle)
	saves := pgRepo.NewSavedArticleRepo(handle)
	tags := pgRepo.NewTagRepo(handle)
	users := pgRepo.NewUserRepo(handle)
	tempImages := pgRepo.NewTempImageRepo(handle)

	artSvc := &artUC.Service{Repo: articles, Temp: tempImages, Images: store}
	cmtSvc := &cmtUC.Service{Comments: comments, Articles: articles, Temp: tempImages, Images: store}
	intSvc := &intUC.Service{Likes: likes, Articles: articles, Comments: comments}
	followSvc := &followUC.Service{Follows: follows, Tags: tags, Users: users}
	userSvc := &userUC.Service{Users: users, Follows: follows}
	tagSvc := &tagUC.Service{Tags: tags}
	bookmarkSvc := &bookmarkUC.Service{Saves: saves, Articles: articles}
	uploadSvc := &uploadUC.Service{Temp: tempImages, Images: store}

	oracle := &relation.Oracle{Likes: likes, Follows: follows, Saves: saves, Tags: tags}
	paginationCfg := pagination.LoadFromEnv()

	mux := http.NewServeMux()
	harticle.Register(mux, artSvc, oracle, paginationCfg, logger)
	hcomment.Register(mux, cmtSvc, oracle, paginationCfg, logger)
	hinteract.Register(mux, intSvc, logger)
	htag.Register(mux, tagSvc, followSvc, oracle, paginationCfg, logger)
	huser.Register(mux, userSvc, followSvc, logger)
	hbookmark.Register(mux, bookmarkSvc, paginationCfg, logger)
	hupload.Register(mux, uploadSvc, logger)

	mux.Handle("POST /auth/token", hauth.TokenHandler(userSvc))

	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	return applyMiddleware(cfg, mux, logger)
}

// applyMiddleware builds the chain, outermost first: panic recovery, request
// IDs, logging, metrics, per-IP rate limiting, body size cap.
func applyMiddleware(cfg config.Config, handler http.Handler, logger *slog.Logger) http.Handler {
	limiter := hhttp.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	chain := handler
	chain = hhttp.LimitRequestBody(cfg.Server.MaxBodyBytes, "/images")(chain)
	chain = limiter.Limit(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = requestid.Middleware(chain)
	chain = hhttp.Recover(logger)(chain)
	return chain
}

// runServer starts the HTTP server and blocks until a shutdown signal.
func runServer(cfg config.Config, handler http.Handler, version string, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout.Std(),
		ReadTimeout:       cfg.Server.ReadTimeout.Std(),
		WriteTimeout:      cfg.Server.WriteTimeout.Std(),
		IdleTimeout:       cfg.Server.IdleTimeout.Std(),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
