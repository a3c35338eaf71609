// Package stub is a self-contained development API server. It serves the
// same wire contract the real backend does, from seeded in-memory state, so
// the client and its tests never need network access to a deployment.
package stub

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"esplan/internal/resource/issue"
	"esplan/internal/resource/project"
	"esplan/internal/resource/strategy"
	"esplan/internal/resource/user"
	"esplan/internal/sentinel"
	"esplan/internal/session"
	"esplan/internal/transport/rest"
)

// Account is a stored credential-bearing user. The embedded profile is what
// login hands back to the client; the password never leaves the store.
type Account struct {
	Profile      session.Profile
	PasswordHash []byte
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Store holds all stub state behind one mutex. Single-process development
// use only; nothing survives a restart.
//
// Error Contract:
//   - sentinel.ErrNotFound: no entity with the given id (or email).
//   - sentinel.ErrInvalidInput: validation failure, message is user-facing Thai.
type Store struct {
	mu         sync.RWMutex
	accounts   map[string]*Account
	byEmail    map[string]string
	issues     map[string]issue.StrategicIssue
	strategies map[string]strategy.Strategy
	projects   map[string]project.Project
	revoked    map[string]bool
}

// NewStore returns an empty store. Callers normally follow with Seed.
func NewStore() *Store {
	return &Store{
		accounts:   make(map[string]*Account),
		byEmail:    make(map[string]string),
		issues:     make(map[string]issue.StrategicIssue),
		strategies: make(map[string]strategy.Strategy),
		projects:   make(map[string]project.Project),
		revoked:    make(map[string]bool),
	}
}

// AccountByEmail looks up a credential record for login.
func (s *Store) AccountByEmail(email string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.accounts[id], nil
}

// AccountByID looks up a credential record by id.
func (s *Store) AccountByID(id string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return acct, nil
}

// Revoke marks a token id as logged out. Validation rejects revoked tokens
// even before their expiry.
func (s *Store) Revoke(jti string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = true
}

// Revoked reports whether a token id has been logged out.
func (s *Store) Revoked(jti string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revoked[jti]
}

// listQuery is the parsed pagination and filter portion of a list request.
type listQuery struct {
	limit  int
	offset int
	q      string
	status string
}

func parseListQuery(values url.Values) listQuery {
	lq := listQuery{limit: 20}
	if v, err := strconv.Atoi(values.Get("limit")); err == nil && v > 0 && v <= 100 {
		lq.limit = v
	}
	if v, err := strconv.Atoi(values.Get("offset")); err == nil && v >= 0 {
		lq.offset = v
	}
	lq.q = strings.TrimSpace(values.Get("q"))
	lq.status = strings.TrimSpace(values.Get("status"))
	return lq
}

// page slices a pre-sorted result set and builds the pagination envelope.
func page[T any](all []T, lq listQuery) ([]T, rest.Pagination) {
	total := len(all)
	start := lq.offset
	if start > total {
		start = total
	}
	end := start + lq.limit
	if end > total {
		end = total
	}
	pages := 0
	if lq.limit > 0 {
		pages = (total + lq.limit - 1) / lq.limit
	}
	return all[start:end], rest.Pagination{
		Total:  total,
		Limit:  lq.limit,
		Offset: lq.offset,
		Pages:  pages,
	}
}

func matches(name, status string, lq listQuery) bool {
	if lq.q != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(lq.q)) {
		return false
	}
	if lq.status != "" && status != lq.status {
		return false
	}
	return true
}

// ListIssues returns strategic issues ordered by their display order.
func (s *Store) ListIssues(lq listQuery) ([]issue.StrategicIssue, rest.Pagination) {
	s.mu.RLock()
	all := make([]issue.StrategicIssue, 0, len(s.issues))
	for _, it := range s.issues {
		if matches(it.Name, it.Status, lq) {
			all = append(all, it)
		}
	}
	s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool {
		if all[i].Order != all[j].Order {
			return all[i].Order < all[j].Order
		}
		return all[i].ID < all[j].ID
	})
	return page(all, lq)
}

// CreateIssue validates and stores a new strategic issue.
func (s *Store) CreateIssue(in issue.StrategicIssue, createdBy string) (issue.StrategicIssue, error) {
	if strings.TrimSpace(in.Name) == "" {
		return issue.StrategicIssue{}, fmt.Errorf("กรุณาระบุชื่อประเด็นยุทธศาสตร์: %w", sentinel.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.issues {
		if strings.EqualFold(it.Name, in.Name) {
			return issue.StrategicIssue{}, fmt.Errorf("ชื่อประเด็นยุทธศาสตร์ซ้ำ: %w", sentinel.ErrInvalidInput)
		}
	}
	now := time.Now().UTC()
	in.ID = uuid.New().String()
	if in.Status == "" {
		in.Status = issue.StatusActive
	}
	in.CreatedBy = createdBy
	in.CreatedAt = now
	in.UpdatedAt = now
	s.issues[in.ID] = in
	return in, nil
}

// UpdateIssue replaces the mutable fields of an existing issue.
func (s *Store) UpdateIssue(id string, in issue.StrategicIssue) (issue.StrategicIssue, error) {
	if strings.TrimSpace(in.Name) == "" {
		return issue.StrategicIssue{}, fmt.Errorf("กรุณาระบุชื่อประเด็นยุทธศาสตร์: %w", sentinel.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.issues[id]
	if !ok {
		return issue.StrategicIssue{}, sentinel.ErrNotFound
	}
	cur.Name = in.Name
	cur.Description = in.Description
	if in.Status != "" {
		cur.Status = in.Status
	}
	cur.Order = in.Order
	cur.UpdatedAt = time.Now().UTC()
	s.issues[id] = cur
	return cur, nil
}

// DeleteIssue removes an issue. Strategies and projects that reference it
// keep their dangling ids; clients prune those on display.
func (s *Store) DeleteIssue(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.issues[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.issues, id)
	return nil
}

// ListStrategies returns strategies ordered by creation time.
func (s *Store) ListStrategies(lq listQuery) ([]strategy.Strategy, rest.Pagination) {
	s.mu.RLock()
	all := make([]strategy.Strategy, 0, len(s.strategies))
	for _, st := range s.strategies {
		if matches(st.Name, st.Status, lq) {
			all = append(all, st)
		}
	}
	s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return page(all, lq)
}

// CreateStrategy validates and stores a new strategy. The parent issue must
// exist at creation time; it may be deleted later.
func (s *Store) CreateStrategy(in strategy.Strategy, createdBy string) (strategy.Strategy, error) {
	if strings.TrimSpace(in.Name) == "" {
		return strategy.Strategy{}, fmt.Errorf("กรุณาระบุชื่อกลยุทธ์: %w", sentinel.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.StrategicIssueID != "" {
		if _, ok := s.issues[in.StrategicIssueID]; !ok {
			return strategy.Strategy{}, fmt.Errorf("ไม่พบประเด็นยุทธศาสตร์ที่เลือก: %w", sentinel.ErrInvalidInput)
		}
	}
	now := time.Now().UTC()
	in.ID = uuid.New().String()
	if in.Status == "" {
		in.Status = strategy.StatusDraft
	}
	in.CreatedBy = createdBy
	in.CreatedAt = now
	in.UpdatedAt = now
	s.strategies[in.ID] = in
	return in, nil
}

// UpdateStrategy replaces the mutable fields of an existing strategy.
func (s *Store) UpdateStrategy(id string, in strategy.Strategy) (strategy.Strategy, error) {
	if strings.TrimSpace(in.Name) == "" {
		return strategy.Strategy{}, fmt.Errorf("กรุณาระบุชื่อกลยุทธ์: %w", sentinel.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.strategies[id]
	if !ok {
		return strategy.Strategy{}, sentinel.ErrNotFound
	}
	cur.Name = in.Name
	cur.Description = in.Description
	if in.Status != "" {
		cur.Status = in.Status
	}
	if in.StrategicIssueID != "" {
		cur.StrategicIssueID = in.StrategicIssueID
	}
	cur.UpdatedAt = time.Now().UTC()
	s.strategies[id] = cur
	return cur, nil
}

// DeleteStrategy removes a strategy.
func (s *Store) DeleteStrategy(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.strategies[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.strategies, id)
	return nil
}

// ListProjects returns projects ordered by creation time.
func (s *Store) ListProjects(lq listQuery) ([]project.Project, rest.Pagination) {
	s.mu.RLock()
	all := make([]project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if matches(p.Name, p.Status, lq) {
			all = append(all, p)
		}
	}
	s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return page(all, lq)
}

// CreateProject validates and stores a new project. Project names are
// unique; the duplicate message is what operators see in the UI.
func (s *Store) CreateProject(in project.Project, createdBy string) (project.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return project.Project{}, fmt.Errorf("กรุณาระบุชื่อโครงการ: %w", sentinel.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if strings.EqualFold(p.Name, in.Name) {
			return project.Project{}, fmt.Errorf("ชื่อโครงการซ้ำ: %w", sentinel.ErrInvalidInput)
		}
	}
	now := time.Now().UTC()
	in.ID = uuid.New().String()
	if in.Status == "" {
		in.Status = project.StatusPlanning
	}
	in.CreatedBy = createdBy
	in.CreatedAt = now
	in.UpdatedAt = now
	s.projects[in.ID] = in
	return in, nil
}

// UpdateProject replaces the mutable fields of an existing project.
func (s *Store) UpdateProject(id string, in project.Project) (project.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return project.Project{}, fmt.Errorf("กรุณาระบุชื่อโครงการ: %w", sentinel.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.projects[id]
	if !ok {
		return project.Project{}, sentinel.ErrNotFound
	}
	for other, p := range s.projects {
		if other != id && strings.EqualFold(p.Name, in.Name) {
			return project.Project{}, fmt.Errorf("ชื่อโครงการซ้ำ: %w", sentinel.ErrInvalidInput)
		}
	}
	cur.Name = in.Name
	cur.Description = in.Description
	if in.Status != "" {
		cur.Status = in.Status
	}
	cur.Budget = in.Budget
	cur.Department = in.Department
	cur.StartDate = in.StartDate
	cur.EndDate = in.EndDate
	cur.StrategicIssues = in.StrategicIssues
	cur.Strategies = in.Strategies
	cur.UpdatedAt = time.Now().UTC()
	s.projects[id] = cur
	return cur, nil
}

// DeleteProject removes a project.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

// ProjectStats aggregates project counts per status and the budget total.
func (s *Store) ProjectStats() project.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st project.Stats
	for _, p := range s.projects {
		st.Total++
		st.TotalBudget += p.Budget
		switch p.Status {
		case project.StatusPlanning:
			st.Planning++
		case project.StatusActive:
			st.Active++
		case project.StatusCompleted:
			st.Completed++
		case project.StatusCancelled:
			st.Cancelled++
		}
	}
	return st
}

// ListUsers returns user records ordered by email.
func (s *Store) ListUsers(lq listQuery) ([]user.User, rest.Pagination) {
	s.mu.RLock()
	all := make([]user.User, 0, len(s.accounts))
	for _, acct := range s.accounts {
		u := acct.userRecord()
		status := "inactive"
		if u.Active {
			status = "active"
		}
		if matches(u.Email, status, lq) {
			all = append(all, u)
		}
	}
	s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return page(all, lq)
}

// CreateUser stores a new account with the given password hash.
func (s *Store) CreateUser(in user.User, hash []byte, perms map[string][]string) (user.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return user.User{}, fmt.Errorf("กรุณาระบุอีเมล: %w", sentinel.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return user.User{}, fmt.Errorf("อีเมลนี้ถูกใช้งานแล้ว: %w", sentinel.ErrInvalidInput)
	}
	now := time.Now().UTC()
	acct := &Account{
		Profile: session.Profile{
			ID:          uuid.New().String(),
			Email:       email,
			Role:        in.Role,
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			Department:  in.Department,
			Position:    in.Position,
			Permissions: perms,
		},
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if acct.Profile.Role == "" {
		acct.Profile.Role = session.RoleDepartment
	}
	s.accounts[acct.Profile.ID] = acct
	s.byEmail[email] = acct.Profile.ID
	return acct.userRecord(), nil
}

// UpdateUser replaces the mutable profile fields of an account.
func (s *Store) UpdateUser(id string, in user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return user.User{}, sentinel.ErrNotFound
	}
	if in.FirstName != "" {
		acct.Profile.FirstName = in.FirstName
	}
	if in.LastName != "" {
		acct.Profile.LastName = in.LastName
	}
	if in.Department != "" {
		acct.Profile.Department = in.Department
	}
	if in.Position != "" {
		acct.Profile.Position = in.Position
	}
	if in.Role != "" {
		acct.Profile.Role = in.Role
	}
	acct.UpdatedAt = time.Now().UTC()
	return acct.userRecord(), nil
}

// DeleteUser removes an account entirely. Prefer SetActive(false) when the
// history should stay attributable.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byEmail, acct.Profile.Email)
	delete(s.accounts, id)
	return nil
}

// SetActive toggles whether an account can log in.
func (s *Store) SetActive(id string, active bool) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return user.User{}, sentinel.ErrNotFound
	}
	acct.Active = active
	acct.UpdatedAt = time.Now().UTC()
	return acct.userRecord(), nil
}

// SetPassword replaces an account's password hash.
func (s *Store) SetPassword(id string, hash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	acct.PasswordHash = hash
	acct.UpdatedAt = time.Now().UTC()
	return nil
}

// UserStats aggregates account counts.
func (s *Store) UserStats() user.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st user.Stats
	for _, acct := range s.accounts {
		st.Total++
		if acct.Active {
			st.Active++
		} else {
			st.Inactive++
		}
		if acct.Profile.Role == session.RoleAdmin {
			st.Admins++
		}
	}
	return st
}

func (a *Account) userRecord() user.User {
	return user.User{
		ID:         a.Profile.ID,
		Email:      a.Profile.Email,
		Role:       a.Profile.Role,
		FirstName:  a.Profile.FirstName,
		LastName:   a.Profile.LastName,
		Department: a.Profile.Department,
		Position:   a.Profile.Position,
		Active:     a.Active,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
