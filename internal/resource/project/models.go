package project

import "time"

// Status values owned by the API.
const (
	StatusPlanning  = "planning"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Project is a flat record mirroring the API's project resource. Parent
// references are held by identifier only and may point at entities that no
// longer exist server-side; the client tolerates such orphans.
type Project struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	Budget          float64    `json:"budget,omitempty"`
	Department      string     `json:"department,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	StrategicIssues []string   `json:"strategic_issues,omitempty"`
	Strategies      []string   `json:"strategies,omitempty"`
	CreatedBy       string     `json:"created_by,omitempty"`
	CreatedAt       time.Time  `json:"created_at,omitzero"`
	UpdatedAt       time.Time  `json:"updated_at,omitzero"`
}

// EntityID implements resource.Entity.
func (p Project) EntityID() string { return p.ID }

// PruneRefs returns a copy of the project with references to deleted parents
// removed. Display-only: the stored record keeps whatever the server sent.
func (p Project) PruneRefs(issueIDs, strategyIDs map[string]bool) Project {
	p.StrategicIssues = keepKnown(p.StrategicIssues, issueIDs)
	p.Strategies = keepKnown(p.Strategies, strategyIDs)
	return p
}

func keepKnown(refs []string, known map[string]bool) []string {
	if len(refs) == 0 {
		return refs
	}
	kept := make([]string, 0, len(refs))
	for _, ref := range refs {
		if known[ref] {
			kept = append(kept, ref)
		}
	}
	return kept
}

// Stats is the shape of the project stats endpoints.
type Stats struct {
	Total       int     `json:"total"`
	Planning    int     `json:"planning"`
	Active      int     `json:"active"`
	Completed   int     `json:"completed"`
	Cancelled   int     `json:"cancelled"`
	TotalBudget float64 `json:"total_budget"`
}
