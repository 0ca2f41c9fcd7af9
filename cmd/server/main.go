package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rfpereira/goalvault-backend/internal/adapter/repository/postgres"
	"github.com/rfpereira/goalvault-backend/internal/adapter/rest"
	"github.com/rfpereira/goalvault-backend/internal/config"
	"github.com/rfpereira/goalvault-backend/internal/logging"
	"github.com/rfpereira/goalvault-backend/internal/metrics"
	"github.com/rfpereira/goalvault-backend/internal/usecase/account"
	"github.com/rfpereira/goalvault-backend/internal/usecase/goal"
	"github.com/rfpereira/goalvault-backend/internal/usecase/lifecycle"
	"github.com/rfpereira/goalvault-backend/internal/usecase/seeder"
	"github.com/rfpereira/goalvault-backend/internal/usecase/transfer"
)

func main() {
	log, err := logging.NewLoggerFromEnv()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(log *logging.Logger) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Database
	db, err := postgres.NewDB(cfg.ConnString())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		return err
	}
	log.Info("migrations applied")

	// Repositories
	goalRepo := postgres.NewGoalRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactor := postgres.NewTransactor(db)

	// Services
	goalService := goal.NewService(goalRepo, accountRepo, transactor)
	transferService := transfer.NewService(transactor)
	lifecycleService := lifecycle.NewService(transactor)
	accountService := account.NewService(accountRepo)

	ctx := context.Background()
	if err := seeder.NewSeeder(accountRepo).Seed(ctx); err != nil {
		return err
	}
	log.Info("default account seeded")

	// REST server
	m := metrics.New()
	server := rest.NewServer(
		rest.ServerConfig{
			Addr:         cfg.Addr(),
			APIToken:     cfg.APIToken,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		goalService,
		transferService,
		lifecycleService,
		accountService,
		m,
		log.Named("rest"),
		func(ctx context.Context) error { return db.PingContext(ctx) },
	)

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
