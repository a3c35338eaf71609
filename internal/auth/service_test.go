package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"esplan/internal/auth/mocks"
	"esplan/internal/session"
	dErrors "esplan/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	mockAPI *mocks.MockAPI
	store   *session.InMemoryStore
	service *Service
	states  []State
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockAPI = mocks.NewMockAPI(s.ctrl)
	s.store = session.NewInMemoryStore()
	s.states = nil
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(
		s.mockAPI,
		s.store,
		WithLogger(logger),
		WithStateObserver(func(st State) { s.states = append(s.states, st) }),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) login() {
	s.store.Save(session.Profile{ID: "u-1", Email: "a@b", Role: session.RoleDepartment}, "tok")
}

func (s *ServiceSuite) TestLoginSuccess() {
	s.mockAPI.EXPECT().
		Do(gomock.Any(), "auth.login", http.MethodPost, "/auth/login", loginRequest{Email: "a@b", Password: "pw"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _ string, _, out any) error {
			resp := out.(*loginResponse)
			resp.Token = "tok-1"
			resp.User = session.Profile{ID: "u-1", Email: "a@b", Role: session.RoleDepartment}
			return nil
		})

	sess, err := s.service.Login(context.Background(), "a@b", "pw")
	s.Require().NoError(err)
	s.Equal("tok-1", sess.Token)
	s.Equal("u-1", sess.User.ID)
	// The facade provides the primitive; persisting is the caller's call.
	s.False(s.store.HasSession())
}

func (s *ServiceSuite) TestLoginRejectedCarriesServerMessage() {
	s.mockAPI.EXPECT().
		Do(gomock.Any(), "auth.login", http.MethodPost, "/auth/login", gomock.Any(), gomock.Any()).
		Return(dErrors.New(dErrors.CodeUnauthorized, "รหัสผ่านไม่ถูกต้อง"))

	sess, err := s.service.Login(context.Background(), "a@b", "wrong")
	s.Nil(sess)
	s.True(dErrors.HasCode(err, dErrors.CodeAuthentication))
	s.Equal("รหัสผ่านไม่ถูกต้อง", dErrors.Message(err, ""))
}

func (s *ServiceSuite) TestLoginMalformedResponse() {
	s.mockAPI.EXPECT().
		Do(gomock.Any(), "auth.login", http.MethodPost, "/auth/login", gomock.Any(), gomock.Any()).
		Return(nil)

	sess, err := s.service.Login(context.Background(), "a@b", "pw")
	s.Nil(sess)
	s.True(dErrors.HasCode(err, dErrors.CodeAuthentication))
}

func (s *ServiceSuite) TestLogoutAlwaysClearsLocally() {
	s.Run("server notify fails", func() {
		s.login()
		s.mockAPI.EXPECT().
			Do(gomock.Any(), "auth.logout", http.MethodPost, "/auth/logout", nil, nil).
			Return(dErrors.New(dErrors.CodeNetwork, ""))

		s.service.Logout(context.Background())
		s.False(s.store.HasSession())
	})

	s.Run("no session skips the notify entirely", func() {
		s.service.Logout(context.Background())
		s.False(s.store.HasSession())
	})
}

func (s *ServiceSuite) TestVerifyFailClosed() {
	s.mockAPI.EXPECT().
		Do(gomock.Any(), "auth.verify", http.MethodGet, "/auth/verify", nil, nil).
		Return(dErrors.New(dErrors.CodeNetwork, ""))
	s.False(s.service.Verify(context.Background()))

	s.mockAPI.EXPECT().
		Do(gomock.Any(), "auth.verify", http.MethodGet, "/auth/verify", nil, nil).
		Return(nil)
	s.True(s.service.Verify(context.Background()))
}

func (s *ServiceSuite) TestResumeWithoutToken() {
	got := s.service.Resume(context.Background())
	s.Equal(StateInvalid, got)
	s.Equal([]State{StateUnknown, StateInvalid}, s.states)
}

func (s *ServiceSuite) TestResumeValid() {
	s.login()
	s.mockAPI.EXPECT().
		Do(gomock.Any(), "auth.verify", http.MethodGet, "/auth/verify", nil, nil).
		Return(nil)

	got := s.service.Resume(context.Background())
	s.Equal(StateValid, got)
	s.Equal([]State{StateUnknown, StateChecking, StateValid}, s.states)
	s.True(s.store.HasSession())
}

func (s *ServiceSuite) TestResumeInvalidClearsStore() {
	s.login()
	s.mockAPI.EXPECT().
		Do(gomock.Any(), "auth.verify", http.MethodGet, "/auth/verify", nil, nil).
		Return(dErrors.New(dErrors.CodeUnauthorized, ""))

	got := s.service.Resume(context.Background())
	s.Equal(StateInvalid, got)
	s.Equal([]State{StateUnknown, StateChecking, StateInvalid}, s.states)
	s.False(s.store.HasSession())
}

func (s *ServiceSuite) TestHasPermission() {
	sess := &session.Session{
		Token: "tok",
		User: session.Profile{
			ID:   "u-1",
			Role: session.RoleDepartment,
			Permissions: map[string][]string{
				"projects": {"read", "update"},
			},
		},
	}

	s.Run("absent session yields false", func() {
		s.False(HasPermission(nil, "projects", "read"))
	})

	s.Run("grant membership", func() {
		s.True(HasPermission(sess, "projects", "read"))
		s.False(HasPermission(sess, "projects", "delete"))
		s.False(HasPermission(sess, "users", "read"))
	})

	s.Run("admin holds every grant", func() {
		admin := &session.Session{Token: "t", User: session.Profile{ID: "u-2", Role: session.RoleAdmin}}
		s.True(HasPermission(admin, "users", "delete"))
	})

	s.Run("nil grant map yields false", func() {
		bare := &session.Session{Token: "t", User: session.Profile{ID: "u-3", Role: session.RoleDepartment}}
		s.False(HasPermission(bare, "projects", "read"))
	})
}
