package stub

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"esplan/internal/resource/issue"
	"esplan/internal/resource/project"
	"esplan/internal/resource/strategy"
	"esplan/internal/session"
)

// Dev credentials the stub always seeds. Printed by the CLI's stub command
// so nobody has to dig through source to log in.
const (
	SeedAdminEmail      = "admin@esplan.local"
	SeedAdminPassword   = "admin1234"
	SeedOfficerEmail    = "officer@esplan.local"
	SeedOfficerPassword = "officer1234"
)

func adminPermissions() map[string][]string {
	all := []string{"read", "create", "update", "delete"}
	return map[string][]string{
		"projects":         all,
		"strategic-issues": all,
		"strategies":       all,
		"users":            all,
	}
}

func departmentPermissions() map[string][]string {
	rw := []string{"read", "create", "update"}
	return map[string][]string{
		"projects":         rw,
		"strategic-issues": {"read"},
		"strategies":       {"read"},
	}
}

// Seed loads the fixed development dataset: two accounts and a small slice
// of a provincial education strategic plan. Idempotent only in the sense
// that callers run it once on an empty store.
func (s *Store) Seed() error {
	if err := s.seedAccounts(); err != nil {
		return err
	}
	s.seedPlan()
	return nil
}

func (s *Store) seedAccounts() error {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	officerHash, err := bcrypt.GenerateFromPassword([]byte(SeedOfficerPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()

	admin := &Account{
		Profile: session.Profile{
			ID:          uuid.New().String(),
			Email:       SeedAdminEmail,
			Role:        session.RoleAdmin,
			FirstName:   "Somchai",
			LastName:    "Ritthikrai",
			FirstNameTH: "สมชาย",
			LastNameTH:  "ฤทธิไกร",
			Department:  "กลุ่มนโยบายและแผน",
			Position:    "ผู้อำนวยการกลุ่ม",
			Permissions: adminPermissions(),
		},
		PasswordHash: adminHash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	officer := &Account{
		Profile: session.Profile{
			ID:          uuid.New().String(),
			Email:       SeedOfficerEmail,
			Role:        session.RoleDepartment,
			FirstName:   "Suda",
			LastName:    "Chaiyasit",
			FirstNameTH: "สุดา",
			LastNameTH:  "ชัยสิทธิ์",
			Department:  "กลุ่มส่งเสริมการศึกษา",
			Position:    "นักวิชาการศึกษา",
			Permissions: departmentPermissions(),
		},
		PasswordHash: officerHash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, acct := range []*Account{admin, officer} {
		s.accounts[acct.Profile.ID] = acct
		s.byEmail[acct.Profile.Email] = acct.Profile.ID
	}
	return nil
}

func (s *Store) seedPlan() {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()

	issues := []issue.StrategicIssue{
		{
			ID:          uuid.New().String(),
			Name:        "การจัดการศึกษาเพื่อความมั่นคง",
			Description: "ส่งเสริมการจัดการศึกษาที่เสริมสร้างความมั่นคงของสถาบันหลักของชาติ",
			Status:      issue.StatusActive,
			Order:       1,
		},
		{
			ID:          uuid.New().String(),
			Name:        "การพัฒนาคุณภาพผู้เรียนทุกช่วงวัย",
			Description: "ยกระดับผลสัมฤทธิ์และทักษะที่จำเป็นในศตวรรษที่ 21",
			Status:      issue.StatusActive,
			Order:       2,
		},
		{
			ID:          uuid.New().String(),
			Name:        "การเพิ่มประสิทธิภาพการบริหารจัดการ",
			Description: "พัฒนาระบบบริหารจัดการศึกษาแบบบูรณาการในระดับจังหวัด",
			Status:      issue.StatusActive,
			Order:       3,
		},
	}
	for i := range issues {
		issues[i].CreatedAt = now
		issues[i].UpdatedAt = now
		s.issues[issues[i].ID] = issues[i]
	}

	strategies := []strategy.Strategy{
		{
			ID:               uuid.New().String(),
			Name:             "พัฒนาหลักสูตรท้องถิ่นและแหล่งเรียนรู้ชุมชน",
			Status:           strategy.StatusActive,
			StrategicIssueID: issues[1].ID,
		},
		{
			ID:               uuid.New().String(),
			Name:             "ยกระดับระบบข้อมูลสารสนเทศทางการศึกษา",
			Status:           strategy.StatusActive,
			StrategicIssueID: issues[2].ID,
		},
		{
			ID:               uuid.New().String(),
			Name:             "เสริมสร้างภูมิคุ้มกันภัยคุกคามรูปแบบใหม่ในสถานศึกษา",
			Status:           strategy.StatusDraft,
			StrategicIssueID: issues[0].ID,
		},
	}
	for i := range strategies {
		strategies[i].CreatedAt = now
		strategies[i].UpdatedAt = now
		s.strategies[strategies[i].ID] = strategies[i]
	}

	start := time.Date(now.Year(), time.October, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0).Add(-24 * time.Hour)
	projects := []project.Project{
		{
			ID:              uuid.New().String(),
			Name:            "โครงการอบรมครูด้านการจัดการเรียนรู้เชิงรุก",
			Status:          project.StatusActive,
			Budget:          250000,
			Department:      "กลุ่มนิเทศ ติดตาม และประเมินผล",
			StartDate:       &start,
			EndDate:         &end,
			StrategicIssues: []string{issues[1].ID},
			Strategies:      []string{strategies[0].ID},
		},
		{
			ID:              uuid.New().String(),
			Name:            "โครงการพัฒนาระบบสารสนเทศเพื่อการบริหาร",
			Status:          project.StatusPlanning,
			Budget:          180000,
			Department:      "กลุ่มนโยบายและแผน",
			StrategicIssues: []string{issues[2].ID},
			Strategies:      []string{strategies[1].ID},
		},
		{
			ID:              uuid.New().String(),
			Name:            "โครงการลูกเสือจิตอาสาพระราชทาน",
			Status:          project.StatusCompleted,
			Budget:          95000,
			Department:      "กลุ่มลูกเสือ ยุวกาชาด และกิจการนักเรียน",
			StrategicIssues: []string{issues[0].ID},
		},
	}
	for i := range projects {
		projects[i].CreatedAt = now.Add(time.Duration(i) * time.Second)
		projects[i].UpdatedAt = projects[i].CreatedAt
		s.projects[projects[i].ID] = projects[i]
	}
}
