package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jungmin-dev/coffee-order-backend/internal/api"
	"github.com/jungmin-dev/coffee-order-backend/internal/auth"
	"github.com/jungmin-dev/coffee-order-backend/internal/collector"
	"github.com/jungmin-dev/coffee-order-backend/internal/config"
	"github.com/jungmin-dev/coffee-order-backend/internal/db"
	"github.com/jungmin-dev/coffee-order-backend/internal/logger"
	"github.com/jungmin-dev/coffee-order-backend/internal/metrics"
	"github.com/jungmin-dev/coffee-order-backend/internal/middleware"
	repo "github.com/jungmin-dev/coffee-order-backend/internal/repository"
	"github.com/jungmin-dev/coffee-order-backend/internal/repository/memory"
	"github.com/jungmin-dev/coffee-order-backend/internal/repository/postgres"
	"github.com/jungmin-dev/coffee-order-backend/internal/services"
	"github.com/jungmin-dev/coffee-order-backend/internal/worker"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		repos repo.Repos
		txr   repo.TxRunner
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("db connect", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if os.Getenv("APP_MIGRATE") == "true" {
			if err := db.RunMigrations(ctx, pool); err != nil {
				log.Error("migrations", "err", err)
				os.Exit(1)
			}
		}

		pg := postgres.NewRepositories(pool)
		repos, txr = pg.Repos(), pg
		log.Info("storage", "driver", "postgres")
	} else {
		mem := memory.NewRepositories()
		repos, txr = mem.Repos(), mem
		log.Info("storage", "driver", "memory")
	}

	wp := worker.NewPool(4)
	defer wp.Stop()

	var col collector.Client = collector.Nop{}
	if cfg.CollectorURL != "" {
		col = collector.NewHTTPClient(cfg.CollectorURL)
	}

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, 24*time.Hour)

	userSvc := services.NewUserService(repos.Users, tm)
	menuSvc := services.NewMenuService(repos.Menus, repos.Orders, cfg.PopularWindowDays, cfg.PopularLimit)
	orderSvc := services.NewOrderService(repos, txr, col, wp)

	if os.Getenv("APP_SEED") == "true" {
		if err := menuSvc.EnsureDefaultMenus(ctx); err != nil {
			log.Error("menu seed", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()
	r := api.NewRouter(cfg, userSvc, menuSvc, orderSvc, middleware.NewAuthMiddleware(tm))

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
