package stub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"esplan/internal/platform/config"
	"esplan/internal/resource/project"
	"esplan/internal/session"
	"esplan/internal/transport/rest"
)

type StubSuite struct {
	suite.Suite
	server *httptest.Server
}

func (s *StubSuite) SetupTest() {
	srv, err := New(config.Stub{
		Addr:          ":0",
		JWTSigningKey: "test-signing-key",
		TokenTTL:      time.Hour,
	}, slog.New(slog.DiscardHandler))
	s.Require().NoError(err)
	s.server = httptest.NewServer(srv.Router())
}

func (s *StubSuite) TearDownTest() {
	s.server.Close()
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *StubSuite) do(method, path, token string, body any) (int, testEnvelope) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var env testEnvelope
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (s *StubSuite) login(email, password string) (string, session.Profile) {
	status, env := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	s.Require().Equal(http.StatusOK, status)
	var payload struct {
		Token string          `json:"token"`
		User  session.Profile `json:"user"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &payload))
	return payload.Token, payload.User
}

func (s *StubSuite) TestLogin() {
	s.Run("valid admin credentials", func() {
		token, profile := s.login(SeedAdminEmail, SeedAdminPassword)
		s.NotEmpty(token)
		s.Equal(session.RoleAdmin, profile.Role)
		s.NotEmpty(profile.Permissions["users"])
	})

	s.Run("wrong password", func() {
		status, env := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    SeedAdminEmail,
			"password": "nope",
		})
		s.Equal(http.StatusUnauthorized, status)
		s.False(env.Success)
		s.Equal("อีเมลหรือรหัสผ่านไม่ถูกต้อง", env.Message)
	})

	s.Run("unknown email uses the same message", func() {
		status, env := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "nobody@esplan.local",
			"password": "whatever",
		})
		s.Equal(http.StatusUnauthorized, status)
		s.Equal("อีเมลหรือรหัสผ่านไม่ถูกต้อง", env.Message)
	})
}

func (s *StubSuite) TestLogoutRevokesToken() {
	token, _ := s.login(SeedAdminEmail, SeedAdminPassword)

	status, _ := s.do(http.MethodGet, "/api/auth/verify", token, nil)
	s.Equal(http.StatusOK, status)

	status, _ = s.do(http.MethodPost, "/api/auth/logout", token, nil)
	s.Equal(http.StatusOK, status)

	status, _ = s.do(http.MethodGet, "/api/auth/verify", token, nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *StubSuite) TestPublicEndpointsNeedNoToken() {
	for _, path := range []string{
		"/api/projects/public",
		"/api/projects/public/stats",
		"/api/strategic-issues/public",
	} {
		status, env := s.do(http.MethodGet, path, "", nil)
		s.Equal(http.StatusOK, status, path)
		s.True(env.Success, path)
	}
}

func (s *StubSuite) TestPublicProjectsOmitBudget() {
	status, env := s.do(http.MethodGet, "/api/projects/public", "", nil)
	s.Require().Equal(http.StatusOK, status)

	var list rest.List[map[string]any]
	s.Require().NoError(json.Unmarshal(env.Data, &list))
	s.Require().NotEmpty(list.Items)
	for _, item := range list.Items {
		s.NotContains(item, "budget")
		s.NotContains(item, "department")
	}
	s.Positive(list.Pagination.Total)
}

func (s *StubSuite) TestProtectedListNeedsToken() {
	status, _ := s.do(http.MethodGet, "/api/projects", "", nil)
	s.Equal(http.StatusUnauthorized, status)

	token, _ := s.login(SeedOfficerEmail, SeedOfficerPassword)
	status, env := s.do(http.MethodGet, "/api/projects", token, nil)
	s.Equal(http.StatusOK, status)

	var list rest.List[project.Project]
	s.Require().NoError(json.Unmarshal(env.Data, &list))
	s.Len(list.Items, list.Pagination.Total)
}

func (s *StubSuite) TestUserRoutesAreAdminOnly() {
	officer, _ := s.login(SeedOfficerEmail, SeedOfficerPassword)
	status, env := s.do(http.MethodGet, "/api/users", officer, nil)
	s.Equal(http.StatusForbidden, status)
	s.False(env.Success)

	admin, _ := s.login(SeedAdminEmail, SeedAdminPassword)
	status, _ = s.do(http.MethodGet, "/api/users", admin, nil)
	s.Equal(http.StatusOK, status)

	status, env = s.do(http.MethodGet, "/api/users/stats", admin, nil)
	s.Equal(http.StatusOK, status)
	var stats struct {
		Total  int `json:"total"`
		Admins int `json:"admins"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &stats))
	s.Equal(2, stats.Total)
	s.Equal(1, stats.Admins)
}

func (s *StubSuite) TestProjectLifecycle() {
	token, _ := s.login(SeedAdminEmail, SeedAdminPassword)

	status, env := s.do(http.MethodPost, "/api/projects", token, map[string]any{
		"name":   "โครงการทดสอบระบบ",
		"budget": 5000,
	})
	s.Require().Equal(http.StatusCreated, status)
	var created project.Project
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	s.NotEmpty(created.ID)
	s.Equal(project.StatusPlanning, created.Status)

	s.Run("duplicate name rejected", func() {
		status, env := s.do(http.MethodPost, "/api/projects", token, map[string]any{
			"name": "โครงการทดสอบระบบ",
		})
		s.Equal(http.StatusUnprocessableEntity, status)
		s.False(env.Success)
		s.Equal("ชื่อโครงการซ้ำ", env.Message)
	})

	s.Run("update", func() {
		status, env := s.do(http.MethodPut, "/api/projects/"+created.ID, token, map[string]any{
			"name":   "โครงการทดสอบระบบ",
			"status": project.StatusActive,
		})
		s.Require().Equal(http.StatusOK, status)
		var updated project.Project
		s.Require().NoError(json.Unmarshal(env.Data, &updated))
		s.Equal(project.StatusActive, updated.Status)
	})

	s.Run("delete", func() {
		status, _ := s.do(http.MethodDelete, "/api/projects/"+created.ID, token, nil)
		s.Equal(http.StatusOK, status)

		status, env := s.do(http.MethodDelete, "/api/projects/"+created.ID, token, nil)
		s.Equal(http.StatusNotFound, status)
		s.False(env.Success)
	})
}

func (s *StubSuite) TestDeactivatedAccountCannotAuthenticate() {
	admin, _ := s.login(SeedAdminEmail, SeedAdminPassword)
	officerToken, officer := s.login(SeedOfficerEmail, SeedOfficerPassword)

	status, _ := s.do(http.MethodPut, fmt.Sprintf("/api/users/%s/deactivate", officer.ID), admin, nil)
	s.Require().Equal(http.StatusOK, status)

	status, _ = s.do(http.MethodGet, "/api/auth/verify", officerToken, nil)
	s.Equal(http.StatusUnauthorized, status)

	status, env := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    SeedOfficerEmail,
		"password": SeedOfficerPassword,
	})
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("บัญชีนี้ถูกระงับการใช้งาน", env.Message)
}

func (s *StubSuite) TestPagination() {
	token, _ := s.login(SeedAdminEmail, SeedAdminPassword)

	status, env := s.do(http.MethodGet, "/api/strategic-issues?limit=2&offset=0", token, nil)
	s.Require().Equal(http.StatusOK, status)

	var list rest.List[map[string]any]
	s.Require().NoError(json.Unmarshal(env.Data, &list))
	s.Len(list.Items, 2)
	s.Equal(3, list.Pagination.Total)
	s.Equal(2, list.Pagination.Pages)
}

func TestStubSuite(t *testing.T) {
	suite.Run(t, new(StubSuite))
}
