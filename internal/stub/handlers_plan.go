package stub

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"esplan/internal/resource/issue"
	"esplan/internal/resource/project"
	"esplan/internal/resource/strategy"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	items, p := s.store.ListProjects(parseListQuery(r.URL.Query()))
	respondList(w, items, p)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var in project.Project
	if err := decode(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "คำขอไม่ถูกต้อง")
		return
	}
	created, err := s.store.CreateProject(in, authFromContext(r.Context()).acct.Profile.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var in project.Project
	if err := decode(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "คำขอไม่ถูกต้อง")
		return
	}
	updated, err := s.store.UpdateProject(chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProject(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleProjectStats(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, s.store.ProjectStats())
}

// publicProject is the reduced shape served without authentication. No
// budgets, departments, or audit fields leak to anonymous readers.
type publicProject struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func (s *Server) handlePublicProjects(w http.ResponseWriter, r *http.Request) {
	items, p := s.store.ListProjects(parseListQuery(r.URL.Query()))
	out := make([]publicProject, 0, len(items))
	for _, pr := range items {
		out = append(out, publicProject{
			ID:        pr.ID,
			Name:      pr.Name,
			Status:    pr.Status,
			StartDate: pr.StartDate,
			EndDate:   pr.EndDate,
		})
	}
	respondList(w, out, p)
}

// handlePublicProjectStats serves the same aggregate shape as the protected
// stats endpoint. Counts are not sensitive; the budget total is zeroed.
func (s *Server) handlePublicProjectStats(w http.ResponseWriter, _ *http.Request) {
	st := s.store.ProjectStats()
	st.TotalBudget = 0
	respond(w, http.StatusOK, st)
}

func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	items, p := s.store.ListIssues(parseListQuery(r.URL.Query()))
	respondList(w, items, p)
}

func (s *Server) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var in issue.StrategicIssue
	if err := decode(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "คำขอไม่ถูกต้อง")
		return
	}
	created, err := s.store.CreateIssue(in, authFromContext(r.Context()).acct.Profile.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateIssue(w http.ResponseWriter, r *http.Request) {
	var in issue.StrategicIssue
	if err := decode(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "คำขอไม่ถูกต้อง")
		return
	}
	updated, err := s.store.UpdateIssue(chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteIssue(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteIssue(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// publicIssue omits audit fields from the anonymous read.
type publicIssue struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order,omitempty"`
}

func (s *Server) handlePublicIssues(w http.ResponseWriter, r *http.Request) {
	lq := parseListQuery(r.URL.Query())
	lq.status = issue.StatusActive
	items, p := s.store.ListIssues(lq)
	out := make([]publicIssue, 0, len(items))
	for _, it := range items {
		out = append(out, publicIssue{ID: it.ID, Name: it.Name, Description: it.Description, Order: it.Order})
	}
	respondList(w, out, p)
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	items, p := s.store.ListStrategies(parseListQuery(r.URL.Query()))
	respondList(w, items, p)
}

func (s *Server) handleCreateStrategy(w http.ResponseWriter, r *http.Request) {
	var in strategy.Strategy
	if err := decode(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "คำขอไม่ถูกต้อง")
		return
	}
	created, err := s.store.CreateStrategy(in, authFromContext(r.Context()).acct.Profile.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateStrategy(w http.ResponseWriter, r *http.Request) {
	var in strategy.Strategy
	if err := decode(r, &in); err != nil {
		respondMessage(w, http.StatusBadRequest, "คำขอไม่ถูกต้อง")
		return
	}
	updated, err := s.store.UpdateStrategy(chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteStrategy(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteStrategy(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}
