package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/config"
	"github.com/GlebRadaev/mlmledger/internal/pg"
	"github.com/GlebRadaev/mlmledger/internal/repo"
	"github.com/GlebRadaev/mlmledger/internal/seed"
	"github.com/GlebRadaev/mlmledger/internal/service"
	"github.com/GlebRadaev/mlmledger/pkg/logger"
)

func main() {
	file := flag.String("f", "configs/seed.yaml", "catalog file to apply")
	cfg := config.New()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := logger.InitLogger(cfg); err != nil {
		panic(err)
	}

	catalog, err := seed.Load(*file)
	if err != nil {
		zap.L().Fatal("Can't load catalog", zap.String("file", *file), zap.Error(err))
	}

	pool, err := pgxpool.New(ctx, cfg.Database)
	if err != nil {
		zap.L().Fatal("Can't connect to database", zap.Error(err))
	}
	defer pool.Close()
	if _, err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Fatal("Can't run migrations", zap.Error(err))
	}

	repos := repo.New(pg.New(pool), pg.NewTXManager(pool))
	srv := service.New(repos, service.Options{
		Location:     cfg.Location(),
		JWTSecret:    cfg.JWTSecret,
		MaxTreeDepth: cfg.MaxTreeDepth,
		Workers:      1,
	})
	defer srv.Close()

	seeder := seed.New(srv.AdminService, srv.LimitService, srv.PackageService, cfg.Location())
	if _, err := seeder.Apply(ctx, catalog); err != nil {
		zap.L().Fatal("Can't apply catalog", zap.Error(err))
	}
}
