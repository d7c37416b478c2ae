package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/accrual"
	"github.com/GlebRadaev/mlmledger/internal/config"
	"github.com/GlebRadaev/mlmledger/internal/handlers"
	"github.com/GlebRadaev/mlmledger/internal/payout"
	"github.com/GlebRadaev/mlmledger/internal/pg"
	"github.com/GlebRadaev/mlmledger/internal/repo"
	"github.com/GlebRadaev/mlmledger/internal/scheduler"
	"github.com/GlebRadaev/mlmledger/internal/service"
	"github.com/GlebRadaev/mlmledger/pkg/logger"
	"github.com/GlebRadaev/mlmledger/pkg/utils"
)

const (
	shutdownTimeout = 5 * time.Second
	pingTimeout     = 2 * time.Second
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type Application struct {
	cfg   *config.Config
	api   *handlers.Handlers
	srv   *service.Services
	repo  *repo.Repositories
	sched *scheduler.Scheduler
	db    pinger

	errCh chan error
	wg    sync.WaitGroup
	ready atomic.Bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

// Start wires storage, services and handlers, then launches the HTTP server
// and, when enabled, the daily job scheduler.
func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()
	if err := logger.InitLogger(cfg); err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	a.cfg = cfg

	pool, err := openPool(ctx, cfg.Database)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if _, err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		pool.Close()
		return fmt.Errorf("can't run migrations: %w", err)
	}
	a.db = pool

	a.repo = repo.New(pg.New(pool), pg.NewTXManager(pool))
	a.srv = service.New(a.repo, service.Options{
		Location:     cfg.Location(),
		JWTSecret:    cfg.JWTSecret,
		MaxTreeDepth: cfg.MaxTreeDepth,
		Workers:      cfg.AccrualWorkers,
	})
	a.api = handlers.New(a.srv)

	if cfg.SchedulerEnabled {
		if err = a.startScheduler(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("can't start scheduler: %w", err)
		}
	}

	server := a.startHTTPServer(a.router())

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		a.ready.Store(false)

		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Warn("http server shutdown", zap.Error(err))
		}
		if a.sched != nil {
			<-a.sched.Done()
		}
		a.srv.Close()
		pool.Close()
	}()

	a.ready.Store(true)
	zap.L().Info("all systems started successfully",
		zap.String("timezone", cfg.Timezone), zap.Bool("scheduler", cfg.SchedulerEnabled))
	return nil
}

func openPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func (a *Application) router() http.Handler {
	router := chi.NewRouter()
	router.Get("/healthz", a.health)
	a.api.InitRoutes(router)
	return router
}

// health reports 503 until Start has finished or while the database is unreachable.
func (a *Application) health(w http.ResponseWriter, r *http.Request) {
	if !a.ready.Load() {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "starting")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := a.db.Ping(ctx); err != nil {
		zap.L().Warn("health check failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "ok"})
}

func (a *Application) startHTTPServer(handler http.Handler) *http.Server {
	server := &http.Server{
		Addr:              a.cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server", zap.String("address", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()
	return server
}

func (a *Application) startScheduler(ctx context.Context) error {
	a.sched = scheduler.New(a.srv.Calendar.Location(), a.srv.SettingsService, map[string]scheduler.Job{
		payout.JobName:  a.srv.Payout,
		accrual.JobName: a.srv.Accrual,
	})
	return a.sched.Start(ctx)
}

// Wait blocks until ctx is done and every component has stopped. The first
// component error cancels ctx and is returned.
func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var (
		appErr error
		wg     sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			if appErr == nil {
				appErr = err
			}
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
