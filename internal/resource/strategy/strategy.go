// Package strategy holds the client-side collection for strategies, the
// middle level of the strategic-plan hierarchy. Every strategy references
// one parent strategic issue by id.
package strategy

import (
	"time"

	"esplan/internal/notify"
	"esplan/internal/resource"
	"esplan/internal/session"
)

// Status values owned by the API.
const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Strategy is a flat record mirroring the API's strategy resource.
type Strategy struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Status           string    `json:"status"`
	StrategicIssueID string    `json:"strategic_issue_id"`
	CreatedBy        string    `json:"created_by,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitzero"`
	UpdatedAt        time.Time `json:"updated_at,omitzero"`
}

// EntityID implements resource.Entity.
func (s Strategy) EntityID() string { return s.ID }

// Orphaned reports whether the strategy's parent issue no longer exists.
// The record itself stays usable; surfaces decide whether to hide it.
func (s Strategy) Orphaned(issueIDs map[string]bool) bool {
	return s.StrategicIssueID != "" && !issueIDs[s.StrategicIssueID]
}

// IDSet builds the membership map used for orphan-reference pruning.
func IDSet(strategies []Strategy) map[string]bool {
	set := make(map[string]bool, len(strategies))
	for _, st := range strategies {
		set[st.ID] = true
	}
	return set
}

const basePath = "/strategies"

// NewCollection wires the strategy collection. Strategies expose no public
// read endpoint, so unauthenticated reads go to the authorized endpoint and
// fail under the normal 401 policy.
func NewCollection(api resource.API, store session.Store, notifier notify.Notifier) *resource.Collection[Strategy] {
	return resource.NewCollection[Strategy](
		resource.NewAPISource[Strategy](api, "strategies", basePath),
		nil,
		store,
		notifier,
		resource.Messages{
			List:   "ไม่สามารถโหลดกลยุทธ์ได้",
			Create: "ไม่สามารถสร้างกลยุทธ์ได้",
			Update: "ไม่สามารถแก้ไขกลยุทธ์ได้",
			Delete: "ไม่สามารถลบกลยุทธ์ได้",
		},
	)
}
