package mockapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"myfuture/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Service is an in-memory stand-in for the MyFuture backend, exposing
// the handful of endpoints the client consumes so the CLI and the
// integration tests have a real HTTP surface to talk to.
type Service struct {
	logger *logrus.Logger
	config *types.Config
	store  *Store
	issuer *tokenIssuer

	handler http.Handler
	server  *http.Server
}

func New(config *types.Config, logger *logrus.Logger, store *Store) (*Service, error) {
	issuer, err := newTokenIssuer()
	if err != nil {
		return nil, err
	}

	mux := flow.New()

	s := &Service{
		logger: logger,
		config: config,
		store:  store,
		issuer: issuer,
	}

	s.buildRouter(mux)

	// The production API fronts a browser single-page app.
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	})
	s.handler = c.Handler(mux)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", config.MockPort),
		Handler:           s.handler,
		ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler for httptest servers.
func (s *Service) Handler() http.Handler {
	return s.handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/auth/register", s.handlePostRegister, http.MethodPost)
	r.HandleFunc("/user/login", s.handlePostLogin, http.MethodPost)

	r.HandleFunc("/projects", s.handleListProjects, http.MethodGet)
	r.HandleFunc("/projects/:id", s.handleGetProject, http.MethodGet)

	r.HandleFunc("/.well-known/jwks.json", s.handleJWKS, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/user/@me", s.handleGetMe, http.MethodGet)
		r.HandleFunc("/projects", s.handleCreateProject, http.MethodPost)
		r.HandleFunc("/projects/:id", s.handleUpdateProject, http.MethodPut)
	})
}

func (s *Service) handleJWKS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.issuer.keySet); err != nil {
		s.logger.WithError(err).Error("failed to write jwks")
	}
}
