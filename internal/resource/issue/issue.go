// Package issue holds the client-side collection for strategic issues, the
// root of the strategic-plan hierarchy.
package issue

import (
	"time"

	"esplan/internal/notify"
	"esplan/internal/resource"
	"esplan/internal/session"
)

// Status values owned by the API.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// StrategicIssue is a flat record mirroring the API's strategic-issue
// resource.
type StrategicIssue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Order       int       `json:"order,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// EntityID implements resource.Entity.
func (i StrategicIssue) EntityID() string { return i.ID }

// IDSet builds the membership map used for orphan-reference pruning.
func IDSet(issues []StrategicIssue) map[string]bool {
	set := make(map[string]bool, len(issues))
	for _, it := range issues {
		set[it.ID] = true
	}
	return set
}

const basePath = "/strategic-issues"

// NewCollection wires the strategic-issue collection with its public
// fallback.
func NewCollection(api resource.API, store session.Store, notifier notify.Notifier) *resource.Collection[StrategicIssue] {
	return resource.NewCollection[StrategicIssue](
		resource.NewAPISource[StrategicIssue](api, "strategic-issues", basePath),
		resource.NewPublicSource[StrategicIssue](api, "strategic-issues", basePath),
		store,
		notifier,
		resource.Messages{
			List:   "ไม่สามารถโหลดประเด็นยุทธศาสตร์ได้",
			Create: "ไม่สามารถสร้างประเด็นยุทธศาสตร์ได้",
			Update: "ไม่สามารถแก้ไขประเด็นยุทธศาสตร์ได้",
			Delete: "ไม่สามารถลบประเด็นยุทธศาสตร์ได้",
		},
	)
}
