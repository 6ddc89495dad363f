// Package httpapi exposes the authentication flows over HTTP with JSON
// bodies. Routing, status mapping, and request decoding live here; all
// business rules stay in the auth service.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/DorLamesh/devops-web-app/internal/logging"
	"github.com/DorLamesh/devops-web-app/internal/server/models"
)

// AuthService is the surface of the auth layer the HTTP handlers call into.
type AuthService interface {
	Login(ctx context.Context, identifier, password, ip string) (string, error)
	Signup(ctx context.Context, username, email, password string, strict bool, ip string) (string, error)
	Profile(ctx context.Context, token, ip string) (*models.PublicUser, error)
	AdminListUsers(ctx context.Context, token, ip string) ([]*models.PublicUser, error)
}

type Server struct {
	address         string
	logger          logging.Logger
	auth            AuthService
	shutdownTimeout time.Duration
}

func NewServer(address string, logger logging.Logger, auth AuthService, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         address,
		logger:          logger.With("module", "http_server"),
		auth:            auth,
		shutdownTimeout: shutdownTimeout,
	}
}

// Router builds the route table. Exposed so tests can drive the handlers
// through httptest without binding a socket.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/login", s.login).Methods(http.MethodPost)
	router.HandleFunc("/signup", s.signup).Methods(http.MethodPost)
	router.HandleFunc("/profile", s.profile).Methods(http.MethodGet)
	router.HandleFunc("/admin/users", s.adminListUsers).Methods(http.MethodGet)
	return router
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
