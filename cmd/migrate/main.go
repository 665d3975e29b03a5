package main

import (
	"context"
	"flag"
	"os"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/gogotex/gogotex/backend/blog-service/internal/config"
	"github.com/gogotex/gogotex/backend/blog-service/internal/database"
	"github.com/gogotex/gogotex/backend/blog-service/internal/post/repository"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
)

func main() {
	flags := flag.NewFlagSet("migrate", flag.ExitOnError)
	_ = flags.Parse(os.Args[1:])
	args := flags.Args()

	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if len(args) < 1 {
		logger.Fatalf("Usage: migrate COMMAND\n\nCommands:\n  up\n  down\n  status")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Storage.Backend != config.BackendPostgres {
		logger.Fatalf("migrations only apply to the postgres backend (STORAGE_BACKEND=%s)", cfg.Storage.Backend)
	}

	ctx := context.Background()
	pool, err := database.ConnectPostgres(ctx, cfg.Postgres.DSN, cfg.Postgres.Timeout)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(repository.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatalf("failed to set dialect: %v", err)
	}

	switch command := args[0]; command {
	case "up":
		err = goose.UpContext(ctx, db, repository.MigrationsDir)
	case "down":
		err = goose.DownContext(ctx, db, repository.MigrationsDir)
	case "status":
		err = goose.StatusContext(ctx, db, repository.MigrationsDir)
	default:
		logger.Fatalf("unknown command: %s", command)
	}
	if err != nil {
		logger.Fatalf("migration %s failed: %v", args[0], err)
	}
	logger.Infof("migration %s complete", args[0])
}
