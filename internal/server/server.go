// Package server exposes the repository, ledger, and session over a JSON HTTP
// API. All input validation lives here: the repository and ledger stay total
// and accept whatever they are given, so the handlers are the only place a
// request can be rejected.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"splitbook/internal/repo"
	"splitbook/internal/session"
)

// Server bundles the handlers' collaborators.
type Server struct {
	repo     *repo.Repository
	sessions *session.Manager
}

// New creates a Server around the given repository and session manager.
func New(repository *repo.Repository, sessions *session.Manager) *Server {
	return &Server{repo: repository, sessions: sessions}
}

// Handler builds the full route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/me", s.handleMe)

	mux.HandleFunc("GET /api/groups", s.handleListGroups)
	mux.HandleFunc("POST /api/groups", s.handleCreateGroup)
	mux.HandleFunc("GET /api/groups/{id}", s.handleGetGroup)
	mux.HandleFunc("DELETE /api/groups/{id}", s.handleDeleteGroup)
	mux.HandleFunc("POST /api/groups/{id}/expenses", s.handleAddExpense)
	mux.HandleFunc("GET /api/groups/{id}/balances", s.handleGroupBalances)
	mux.HandleFunc("GET /api/totals", s.handleTotals)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return loggingMiddleware(corsMiddleware(metricsMiddleware(mux)))
}
