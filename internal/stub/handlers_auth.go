package stub

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"esplan/internal/platform/middleware"
	"esplan/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Token string          `json:"token"`
	User  session.Profile `json:"user"`
}

// handleLogin checks credentials and issues a bearer token. Unknown email
// and wrong password share one message so the endpoint does not confirm
// which accounts exist.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "คำขอไม่ถูกต้อง")
		return
	}

	const badCredentials = "อีเมลหรือรหัสผ่านไม่ถูกต้อง"
	acct, err := s.store.AccountByEmail(req.Email)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, badCredentials)
		return
	}
	if bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(req.Password)) != nil {
		respondMessage(w, http.StatusUnauthorized, badCredentials)
		return
	}
	if !acct.Active {
		respondMessage(w, http.StatusUnauthorized, "บัญชีนี้ถูกระงับการใช้งาน")
		return
	}

	token, err := s.tokens.Issue(acct.Profile)
	if err != nil {
		s.logger.Error("issue token", "error", err, "request_id", middleware.GetRequestID(r.Context()))
		respondError(w, err)
		return
	}

	s.logger.Info("login",
		"email", acct.Profile.Email,
		"role", acct.Profile.Role,
		"device", middleware.DeviceSummary(r.Header.Get("User-Agent")),
	)
	respond(w, http.StatusOK, loginPayload{Token: token, User: acct.Profile})
}

// handleLogout revokes the presented token's id.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	info := authFromContext(r.Context())
	s.store.Revoke(info.jti)
	respond(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// handleVerify confirms the token is still valid and echoes the profile so
// clients can refresh a stale local copy.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	info := authFromContext(r.Context())
	respond(w, http.StatusOK, info.acct.Profile)
}
