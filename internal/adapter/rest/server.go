package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rfpereira/goalvault-backend/internal/domain"
	"github.com/rfpereira/goalvault-backend/internal/logging"
	"github.com/rfpereira/goalvault-backend/internal/metrics"
	"github.com/rfpereira/goalvault-backend/internal/usecase/account"
	"github.com/rfpereira/goalvault-backend/internal/usecase/goal"
	"github.com/rfpereira/goalvault-backend/internal/usecase/transfer"
)

// GoalService is the goal-record surface the REST layer consumes
type GoalService interface {
	Create(ctx context.Context, input goal.CreateInput) (*domain.Goal, error)
	Get(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error)
	Update(ctx context.Context, goalID uuid.UUID, input goal.UpdateInput) (*domain.Goal, error)
	List(ctx context.Context, userID uuid.UUID, statusFilter domain.GoalStatus) ([]*domain.Goal, error)
}

// TransferService executes contributions into goals
type TransferService interface {
	Transfer(ctx context.Context, input transfer.Input) (*domain.Goal, error)
}

// LifecycleService archives and restores goals
type LifecycleService interface {
	Archive(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error)
	Restore(ctx context.Context, goalID uuid.UUID) (*domain.Goal, error)
}

// AccountService is the account-ledger surface the REST layer consumes
type AccountService interface {
	Create(ctx context.Context, input account.CreateInput) (*domain.Account, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
}

// ServerConfig holds configuration for the REST server
type ServerConfig struct {
	Addr         string
	APIToken     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns a default configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         ":8080",
		APIToken:     "dev-token",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Server exposes the goal-tracking core over a JSON REST API
type Server struct {
	server  *http.Server
	config  ServerConfig
	log     *logging.Logger
	metrics *metrics.Metrics

	goals     GoalService
	transfers TransferService
	lifecycle LifecycleService
	accounts  AccountService

	// ready reports whether the backing store is reachable; used by /readyz
	ready func(ctx context.Context) error
}

// NewServer configures routes and middleware, returning a ready-to-run server
func NewServer(
	config ServerConfig,
	goals GoalService,
	transfers TransferService,
	lifecycle LifecycleService,
	accounts AccountService,
	m *metrics.Metrics,
	log *logging.Logger,
	ready func(ctx context.Context) error,
) *Server {
	s := &Server{
		config:    config,
		log:       log,
		metrics:   m,
		goals:     goals,
		transfers: transfers,
		lifecycle: lifecycle,
		accounts:  accounts,
		ready:     ready,
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.withRequestLog, s.withAuth)

	api.HandleFunc("/accounts", s.handleCreateAccount).Methods(http.MethodPost)
	api.HandleFunc("/accounts", s.handleListAccounts).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id}", s.handleGetAccount).Methods(http.MethodGet)

	api.HandleFunc("/goals", s.handleCreateGoal).Methods(http.MethodPost)
	api.HandleFunc("/goals", s.handleListGoals).Methods(http.MethodGet)
	api.HandleFunc("/goals/{id}", s.handleGetGoal).Methods(http.MethodGet)
	api.HandleFunc("/goals/{id}", s.handleUpdateGoal).Methods(http.MethodPatch)
	api.HandleFunc("/goals/{id}/archive", s.handleArchiveGoal).Methods(http.MethodPost)
	api.HandleFunc("/goals/{id}/restore", s.handleRestoreGoal).Methods(http.MethodPost)
	api.HandleFunc("/goals/{id}/transfers", s.handleTransfer).Methods(http.MethodPost)

	s.server = &http.Server{
		Addr:         config.Addr,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// Handler returns the configured HTTP handler, exposed for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// ListenAndServe starts serving; it blocks until the server stops
func (s *Server) ListenAndServe() error {
	s.log.Info("REST server listening", zap.String("addr", s.config.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}
