package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/fieldgate/fieldgate/pkg/authz"
	"github.com/fieldgate/fieldgate/pkg/boundary"
	"github.com/fieldgate/fieldgate/pkg/config"
	"github.com/fieldgate/fieldgate/pkg/policy"
	"github.com/fieldgate/fieldgate/pkg/token"
)

// Server wires the engines behind the HTTP facade. Endpoints register
// themselves onto Router; middleware pulls the collaborators it needs
// from here.
type Server struct {
	Config   *config.Config
	Router   *mux.Router
	DB       *gorm.DB
	Tokens   *token.Service
	Authz    *authz.Engine
	Boundary *boundary.Engine
	Policy   *policy.Engine
	srv      *http.Server
}

func NewServer(
	cfg *config.Config,
	db *gorm.DB,
	tokens *token.Service,
	authzEngine *authz.Engine,
	boundaryEngine *boundary.Engine,
	policyEngine *policy.Engine,
) *Server {
	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler:      handlers.LoggingHandler(os.Stdout, router),
		Addr:         cfg.ListenAddress,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Config:   cfg,
		Router:   router,
		DB:       db,
		Tokens:   tokens,
		Authz:    authzEngine,
		Boundary: boundaryEngine,
		Policy:   policyEngine,
		srv:      srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
