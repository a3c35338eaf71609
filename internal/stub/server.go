package stub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"esplan/internal/platform/config"
	"esplan/internal/platform/middleware"
	"esplan/internal/session"
)

// Server is the stub API process: in-memory store, token service, and the
// chi router that serves the client's wire contract.
type Server struct {
	cfg    config.Stub
	store  *Store
	tokens *TokenService
	logger *slog.Logger
}

// New builds a seeded stub server.
func New(cfg config.Stub, logger *slog.Logger) (*Server, error) {
	store := NewStore()
	if err := store.Seed(); err != nil {
		return nil, fmt.Errorf("seed stub store: %w", err)
	}
	return &Server{
		cfg:    cfg,
		store:  store,
		tokens: NewTokenService(cfg.JWTSigningKey, cfg.TokenTTL),
		logger: logger,
	}, nil
}

// Router assembles the full route table. Public read endpoints sit outside
// the auth group; user management additionally requires the admin role.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Get("/projects/public", s.handlePublicProjects)
		r.Get("/projects/public/stats", s.handlePublicProjectStats)
		r.Get("/strategic-issues/public", s.handlePublicIssues)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/auth/logout", s.handleLogout)
			r.Get("/auth/verify", s.handleVerify)

			r.Get("/projects", s.handleListProjects)
			r.Post("/projects", s.handleCreateProject)
			r.Get("/projects/stats", s.handleProjectStats)
			r.Put("/projects/{id}", s.handleUpdateProject)
			r.Delete("/projects/{id}", s.handleDeleteProject)

			r.Get("/strategic-issues", s.handleListIssues)
			r.Post("/strategic-issues", s.handleCreateIssue)
			r.Put("/strategic-issues/{id}", s.handleUpdateIssue)
			r.Delete("/strategic-issues/{id}", s.handleDeleteIssue)

			r.Get("/strategies", s.handleListStrategies)
			r.Post("/strategies", s.handleCreateStrategy)
			r.Put("/strategies/{id}", s.handleUpdateStrategy)
			r.Delete("/strategies/{id}", s.handleDeleteStrategy)

			r.Route("/users", func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Get("/", s.handleListUsers)
				r.Post("/", s.handleCreateUser)
				r.Get("/stats", s.handleUserStats)
				r.Put("/{id}", s.handleUpdateUser)
				r.Delete("/{id}", s.handleDeleteUser)
				r.Put("/{id}/activate", s.handleActivateUser)
				r.Put("/{id}/deactivate", s.handleDeactivateUser)
				r.Put("/{id}/change-password", s.handleChangePassword)
			})
		})
	})

	return r
}

// Run serves until the context is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("stub api listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("stub api: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("stub api shutting down")
	return srv.Shutdown(shutdownCtx)
}

type authKey struct{}

// authInfo is what requireAuth leaves behind for handlers.
type authInfo struct {
	acct *Account
	jti  string
}

func authFromContext(ctx context.Context) *authInfo {
	info, _ := ctx.Value(authKey{}).(*authInfo)
	return info
}

// requireAuth validates the bearer token, rejects revoked and expired ones,
// and loads the owning account. Disabled accounts authenticate as if their
// token were invalid.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			respondMessage(w, http.StatusUnauthorized, "กรุณาเข้าสู่ระบบ")
			return
		}
		subject, jti, err := s.tokens.Validate(raw)
		if err != nil || s.store.Revoked(jti) {
			respondMessage(w, http.StatusUnauthorized, "เซสชันหมดอายุ กรุณาเข้าสู่ระบบใหม่")
			return
		}
		acct, err := s.store.AccountByID(subject)
		if err != nil || !acct.Active {
			respondMessage(w, http.StatusUnauthorized, "เซสชันหมดอายุ กรุณาเข้าสู่ระบบใหม่")
			return
		}
		ctx := context.WithValue(r.Context(), authKey{}, &authInfo{acct: acct, jti: jti})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates user management behind the admin role.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := authFromContext(r.Context())
		if info == nil || info.acct.Profile.Role != session.RoleAdmin {
			respondMessage(w, http.StatusForbidden, "คุณไม่มีสิทธิ์เข้าถึงส่วนนี้")
			return
		}
		next.ServeHTTP(w, r)
	})
}
