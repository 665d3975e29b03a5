package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gogotex/gogotex/backend/blog-service/handlers"
	"github.com/gogotex/gogotex/backend/blog-service/internal/admin"
	"github.com/gogotex/gogotex/backend/blog-service/internal/config"
	"github.com/gogotex/gogotex/backend/blog-service/internal/database"
	"github.com/gogotex/gogotex/backend/blog-service/internal/post/repository"
	"github.com/gogotex/gogotex/backend/blog-service/internal/post/service"
	"github.com/gogotex/gogotex/backend/blog-service/internal/sessions"
	"github.com/gogotex/gogotex/backend/blog-service/internal/storage"
	"github.com/gogotex/gogotex/backend/blog-service/internal/tokens"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/metrics"
)

const (
	connectAttempts = 5
	connectBackoff  = time.Second
)

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Server.LogLevel)
	logger.Infof("config loaded: storage=%s images=%s redis=%v", cfg.Storage.Backend, cfg.Storage.ImageBackend, cfg.Redis.Host != "")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	checks := map[string]handlers.ReadinessCheck{}

	repo, closeRepo := openRepository(ctx, cfg, checks)
	defer closeRepo()

	opts := service.FileOptions()
	if cfg.RemoteBackend() {
		opts = service.RemoteOptions()
	}
	posts := service.New(repo, opts)

	images, err := openImageStore(ctx, cfg, checks)
	if err != nil {
		logger.Fatalf("failed to initialize image store: %v", err)
	}

	// Redis is optional: without it logout cannot revoke tokens before expiry
	var blacklist *sessions.Blacklist
	if cfg.Redis.Host != "" {
		bl, err := sessions.DialBlacklist(ctx, &redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warnf("token revocation disabled: %v", err)
		} else {
			defer bl.Close()
			blacklist = bl
			checks["redis"] = blacklist.Ping
			logger.Infof("connected to Redis for token revocation: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := handlers.NewRouter(handlers.Deps{
		Posts:          posts,
		Admin:          admin.NewService(cfg.Admin.Username, cfg.Admin.PasswordHash),
		Tokens:         tokens.NewIssuer(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL),
		Blacklist:      blacklist,
		Images:         images,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Checks:         checks,
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("starting blog service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logger.Infof("shutdown signal received: %s", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown error: %v", err)
	}
	logger.Infof("server stopped")
}

// openRepository connects the configured post backend and registers its readiness check.
func openRepository(ctx context.Context, cfg *config.Config, checks map[string]handlers.ReadinessCheck) (repository.Repository, func()) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := database.Retry(ctx, "Postgres", connectAttempts, connectBackoff, func(ctx context.Context) (*pgxpool.Pool, error) {
			return database.ConnectPostgres(ctx, cfg.Postgres.DSN, cfg.Postgres.Timeout)
		})
		if err != nil {
			logger.Fatalf("could not connect to Postgres: %v", err)
		}
		repo := repository.NewPostgresRepo(pool)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			logger.Fatalf("failed to migrate Postgres: %v", err)
		}
		checks["postgres"] = pool.Ping
		logger.Infof("using Postgres post storage")
		return repo, pool.Close

	case config.BackendMongo:
		client, err := database.Retry(ctx, "MongoDB", connectAttempts, connectBackoff, func(ctx context.Context) (*mongo.Client, error) {
			return database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		})
		if err != nil {
			logger.Fatalf("could not connect to MongoDB: %v", err)
		}
		repo, err := repository.NewMongoRepo(ctx, client.Database(cfg.MongoDB.Database))
		if err != nil {
			_ = client.Disconnect(ctx)
			logger.Fatalf("failed to prepare MongoDB collections: %v", err)
		}
		checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		logger.Infof("using MongoDB post storage (database %s)", cfg.MongoDB.Database)
		return repo, func() { _ = client.Disconnect(context.Background()) }

	default:
		logger.Infof("using file post storage at %s", cfg.Storage.DataFile)
		return repository.NewFileRepo(cfg.Storage.DataFile), func() {}
	}
}

func openImageStore(ctx context.Context, cfg *config.Config, checks map[string]handlers.ReadinessCheck) (storage.ImageStore, error) {
	if cfg.Storage.ImageBackend == config.ImagesMinIO {
		s, err := storage.NewMinIOStore(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		checks["minio"] = s.Ping
		logger.Infof("storing images in MinIO bucket %s", cfg.MinIO.Bucket)
		return s, nil
	}
	logger.Infof("storing images in %s", cfg.Storage.UploadDir)
	return storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.PublicBaseURL)
}
