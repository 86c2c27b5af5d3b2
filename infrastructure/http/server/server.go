package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/techpro/techpromanager/application/port/inbound"
	"github.com/techpro/techpromanager/application/port/outbound"
	apperr "github.com/techpro/techpromanager/domain/error"
	"github.com/techpro/techpromanager/infrastructure/http/handler"
	"github.com/techpro/techpromanager/infrastructure/http/middleware"
	"github.com/techpro/techpromanager/infrastructure/http/response"
	"github.com/techpro/techpromanager/infrastructure/service/logger"
)

// Config holds the transport settings of the HTTP server
type Config struct {
	Addr                 string
	ReadTimeout          time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
}

// Dependencies are the use cases and services the routes are built from
type Dependencies struct {
	AuthUseCase           inbound.AuthUseCase
	UserManagementUseCase inbound.UserManagementUseCase
	ProjectUseCase        inbound.ProjectUseCase
	TaskUseCase           inbound.TaskUseCase
	TokenService          outbound.TokenService
	Logger                logger.Logger
}

// Server represents the HTTP server
type Server struct {
	handler http.Handler
	server  *http.Server
	log     logger.Logger
}

func NewServer(cfg Config, deps Dependencies) *Server {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 15 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}

	router := NewRouter(deps)

	// outermost first: recovery, correlation ID, access log, CORS
	var h http.Handler = router
	if cfg.CORSEnabled && len(cfg.CORSAllowedOrigins) > 0 {
		h = middleware.CORSMiddleware(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials)(h)
	}
	h = middleware.LoggingMiddleware(deps.Logger)(h)
	h = middleware.CorrelationIDMiddleware(h)
	h = middleware.RecoveryMiddleware(deps.Logger)(h)

	return &Server{
		handler: h,
		log:     deps.Logger,
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      h,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// NewRouter registers every route on a fresh gorilla/mux router
func NewRouter(deps Dependencies) *mux.Router {
	authMiddleware := middleware.NewAuthMiddleware(deps.TokenService, deps.Logger)

	authHandler := handler.NewAuthHandler(deps.AuthUseCase)
	userHandler := handler.NewUserManagementHandler(deps.UserManagementUseCase)
	projectHandler := handler.NewProjectHandler(deps.ProjectUseCase)
	taskHandler := handler.NewTaskHandler(deps.TaskUseCase)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.AppError(w, apperr.ErrNotFound("route", r.URL.Path))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, "TechProManager API", nil)
	}).Methods(http.MethodGet)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, "ok", map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	auth.Handle("/me", authMiddleware.RequireAuth(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)
	auth.Handle("/password", authMiddleware.RequireAuth(http.HandlerFunc(authHandler.ChangePassword))).Methods(http.MethodPut)

	users := api.PathPrefix("/users").Subrouter()
	users.Use(authMiddleware.RequireAuth)
	users.Handle("", middleware.RequireAdmin(http.HandlerFunc(userHandler.ListUsers))).Methods(http.MethodGet)
	users.Handle("", middleware.RequireAdmin(http.HandlerFunc(userHandler.CreateUser))).Methods(http.MethodPost)
	users.HandleFunc("/{id}", userHandler.GetUserDetail).Methods(http.MethodGet)
	users.Handle("/{id}/role", middleware.RequireAdmin(http.HandlerFunc(userHandler.UpdateUserRole))).Methods(http.MethodPut)

	projects := api.PathPrefix("/projects").Subrouter()
	projects.Use(authMiddleware.RequireAuth)
	projects.HandleFunc("", projectHandler.ListProjects).Methods(http.MethodGet)
	projects.HandleFunc("", projectHandler.CreateProject).Methods(http.MethodPost)
	projects.HandleFunc("/{id}", projectHandler.GetProject).Methods(http.MethodGet)
	projects.HandleFunc("/{id}", projectHandler.UpdateProject).Methods(http.MethodPut)
	projects.HandleFunc("/{id}", projectHandler.DeleteProject).Methods(http.MethodDelete)

	tasks := api.PathPrefix("/tasks").Subrouter()
	tasks.Use(authMiddleware.RequireAuth)
	tasks.HandleFunc("", taskHandler.ListTasks).Methods(http.MethodGet)
	tasks.HandleFunc("", taskHandler.CreateTask).Methods(http.MethodPost)
	tasks.HandleFunc("/{id}", taskHandler.GetTask).Methods(http.MethodGet)
	tasks.HandleFunc("/{id}", taskHandler.UpdateTask).Methods(http.MethodPut)
	tasks.HandleFunc("/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)

	return router
}

// Handler returns the fully wrapped handler, for tests
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start blocks serving HTTP until Shutdown is called
func (s *Server) Start() error {
	s.log.Info(context.Background(), "Starting HTTP server", map[string]interface{}{
		"addr": s.server.Addr,
	})
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info(ctx, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
