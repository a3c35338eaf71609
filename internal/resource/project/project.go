// Package project holds the client-side collection for the project family:
// the lowest level of the strategic-plan hierarchy, referencing its parent
// strategic issues and strategies by id.
package project

import (
	"context"
	"net/http"

	"esplan/internal/notify"
	"esplan/internal/resource"
	"esplan/internal/session"
)

const basePath = "/projects"

// NewCollection wires the project collection with its public fallback.
func NewCollection(api resource.API, store session.Store, notifier notify.Notifier) *resource.Collection[Project] {
	return resource.NewCollection[Project](
		resource.NewAPISource[Project](api, "projects", basePath),
		resource.NewPublicSource[Project](api, "projects", basePath),
		store,
		notifier,
		resource.Messages{
			List:   "ไม่สามารถโหลดข้อมูลโครงการได้",
			Create: "ไม่สามารถสร้างโครงการได้",
			Update: "ไม่สามารถแก้ไขโครงการได้",
			Delete: "ไม่สามารถลบโครงการได้",
		},
	)
}

// FetchStats reads the project stats, choosing the authorized endpoint when
// a session is present and the public one otherwise.
func FetchStats(ctx context.Context, api resource.API, store session.Store) (Stats, error) {
	path := basePath + "/public/stats"
	op := "projects.stats.public"
	if store.HasSession() {
		path = basePath + "/stats"
		op = "projects.stats"
	}
	var stats Stats
	err := api.Do(ctx, op, http.MethodGet, path, nil, &stats)
	return stats, err
}
