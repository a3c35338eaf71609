package auth

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"esplan/internal/notify"
	"esplan/internal/session"
	dErrors "esplan/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks API,Notifier

// API is the request boundary the facade talks through. The rest.Client
// satisfies it; tests substitute a mock.
type API interface {
	Do(ctx context.Context, op, method, path string, body, out any) error
}

// Notifier mirrors notify.Notifier so the mock lives next to this package's
// other collaborator mocks.
type Notifier interface {
	notify.Notifier
}

// Service exposes login, logout, session-validity checks, and permission
// lookups. It orchestrates the session store and the authorizing client plus
// one remote verification call; it never decides navigation.
type Service struct {
	api      API
	store    session.Store
	logger   *slog.Logger
	notifier notify.Notifier
	observer func(State)
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithStateObserver receives every state transition during Resume.
func WithStateObserver(fn func(State)) Option {
	return func(s *Service) { s.observer = fn }
}

// NewService constructs the facade.
func NewService(api API, store session.Store, opts ...Option) *Service {
	svc := &Service{api: api, store: store}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.notifier == nil {
		svc.notifier = notify.Discard{}
	}
	return svc
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  session.Profile `json:"user"`
}

// Login posts credentials and returns the issued session. It does not
// persist anything - call sites compose it with the store so the primitive
// stays testable. Rejected credentials surface the server's message.
func (s *Service) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var resp loginResponse
	err := s.api.Do(ctx, "auth.login", http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		msg := dErrors.Message(err, "เข้าสู่ระบบไม่สำเร็จ")
		s.logger.Warn("login rejected", "email", email)
		return nil, dErrors.New(dErrors.CodeAuthentication, msg)
	}
	if resp.Token == "" || resp.User.ID == "" {
		return nil, dErrors.New(dErrors.CodeAuthentication, "malformed login response")
	}
	return &session.Session{Token: resp.Token, User: resp.User}, nil
}

// Logout best-effort notifies the server, then always clears the local
// store. A network failure during the notify must never leave the client in
// an authenticated-looking state.
func (s *Service) Logout(ctx context.Context) {
	if s.store.HasSession() {
		if err := s.api.Do(ctx, "auth.logout", http.MethodPost, "/auth/logout", nil, nil); err != nil {
			s.logger.Warn("logout notification failed", "error", err)
		}
	}
	s.store.Clear()
}

// Verify asks the server whether the stored token is still valid. Any
// failure, network included, is treated as not valid (fail closed).
func (s *Service) Verify(ctx context.Context) bool {
	return s.api.Do(ctx, "auth.verify", http.MethodGet, "/auth/verify", nil, nil) == nil
}

// HasPermission is a pure lookup in the profile's permission grants. An
// absent session or grant list yields false; admins hold every grant.
func HasPermission(sess *session.Session, resource, action string) bool {
	if sess == nil {
		return false
	}
	if sess.User.Role == session.RoleAdmin {
		return true
	}
	actions, ok := sess.User.Permissions[resource]
	if !ok {
		return false
	}
	return slices.Contains(actions, action)
}
