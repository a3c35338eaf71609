package stub

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"esplan/internal/resource/user"
	"esplan/internal/session"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	items, p := s.store.ListUsers(parseListQuery(r.URL.Query()))
	respondList(w, items, p)
}

type createUserRequest struct {
	user.User
	Password string `json:"password"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decode(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "คำขอไม่ถูกต้อง")
		return
	}
	if len(req.Password) < 8 {
		respondMessage(w, http.StatusUnprocessableEntity, "รหัสผ่านต้องมีอย่างน้อย 8 ตัวอักษร")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, err)
		return
	}
	perms := departmentPermissions()
	if req.Role == session.RoleAdmin {
		perms = adminPermissions()
	}
	created, err := s.store.CreateUser(req.User, hash, perms)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var in user.User
	if err := decode(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "คำขอไม่ถูกต้อง")
		return
	}
	updated, err := s.store.UpdateUser(chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	info := authFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if id == info.acct.Profile.ID {
		respondMessage(w, http.StatusUnprocessableEntity, "ไม่สามารถลบบัญชีของตนเองได้")
		return
	}
	if err := s.store.DeleteUser(id); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleActivateUser(w http.ResponseWriter, r *http.Request) {
	updated, err := s.store.SetActive(chi.URLParam(r, "id"), true)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeactivateUser(w http.ResponseWriter, r *http.Request) {
	info := authFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if id == info.acct.Profile.ID {
		respondMessage(w, http.StatusUnprocessableEntity, "ไม่สามารถระงับบัญชีของตนเองได้")
		return
	}
	updated, err := s.store.SetActive(id, false)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decode(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "คำขอไม่ถูกต้อง")
		return
	}
	if len(req.Password) < 8 {
		respondMessage(w, http.StatusUnprocessableEntity, "รหัสผ่านต้องมีอย่างน้อย 8 ตัวอักษร")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.store.SetPassword(chi.URLParam(r, "id"), hash); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "password_changed"})
}

func (s *Server) handleUserStats(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, s.store.UserStats())
}
