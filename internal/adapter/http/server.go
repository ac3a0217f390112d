package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/askgate/askgate/internal/service/logger"
)

// Server is the HTTP front of the gateway.
type Server struct {
	server *http.Server
	log    logger.Logger
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer wires the handlers and middleware into one HTTP server.
func NewServer(
	config ServerConfig,
	log logger.Logger,
	authHandler *AuthHandler,
	chatHandler *ChatHandler,
	adminHandler *AdminHandler,
	userHandler *UserHandler,
) *Server {
	router := mux.NewRouter()

	authHandler.RegisterRoutes(router)
	chatHandler.RegisterRoutes(router)
	adminHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)

	router.Use(correlationMiddleware)
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware)
	router.Use(recoveryMiddleware(log))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	return &Server{
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		log: log,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.log.Info("starting HTTP server", map[string]interface{}{"addr": s.server.Addr})
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
