// Package dashboard assembles the landing-view summary by fanning out to
// the stats surfaces of every resource family.
package dashboard

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"esplan/internal/resource"
	"esplan/internal/resource/project"
	"esplan/internal/resource/user"
	"esplan/internal/session"
	"esplan/internal/transport/rest"
)

const gatherTimeout = 15 * time.Second

// Summary is the assembled dashboard view.
type Summary struct {
	Projects   project.Stats
	Users      user.Stats
	Issues     int
	Strategies int
	FetchedAt  time.Time
}

// fetchResult holds results from the parallel gather. Each goroutine writes
// to its own field, avoiding data races; the summary is assembled only after
// all of them complete.
type fetchResult struct {
	projects   project.Stats
	users      user.Stats
	issues     int
	strategies int
}

// Gather fetches all stats concurrently with shared context cancellation.
// The user stats leg degrades to the zeroed shape for non-admins without
// touching the protected endpoint.
func Gather(ctx context.Context, api resource.API, store session.Store) (*Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, gatherTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	var result fetchResult

	g.Go(func() error {
		stats, err := project.FetchStats(ctx, api, store)
		if err != nil {
			return err
		}
		result.projects = stats
		return nil
	})

	g.Go(func() error {
		stats, err := user.FetchStats(ctx, api, store)
		if err != nil {
			return err
		}
		result.users = stats
		return nil
	})

	g.Go(func() error {
		total, err := countOf(ctx, api, store, "strategic-issues", "/strategic-issues")
		if err != nil {
			return err
		}
		result.issues = total
		return nil
	})

	g.Go(func() error {
		if !store.HasSession() {
			// No public strategies endpoint exists; keep the tile at zero.
			return nil
		}
		total, err := countOf(ctx, api, store, "strategies", "/strategies")
		if err != nil {
			return err
		}
		result.strategies = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Summary{
		Projects:   result.projects,
		Users:      result.users,
		Issues:     result.issues,
		Strategies: result.strategies,
		FetchedAt:  time.Now(),
	}, nil
}

// countOf reads just the pagination total of a list endpoint, using the
// public variant when no session exists.
func countOf(ctx context.Context, api resource.API, store session.Store, family, base string) (int, error) {
	path := base
	op := family + ".count"
	if !store.HasSession() {
		path = base + "/public"
		op = family + ".count.public"
	}
	filter := url.Values{"limit": {"1"}}
	var list rest.List[countedEntity]
	if err := api.Do(ctx, op, http.MethodGet, path+"?"+filter.Encode(), nil, &list); err != nil {
		return 0, err
	}
	return list.Pagination.Total, nil
}

type countedEntity struct {
	ID string `json:"id"`
}

func (e countedEntity) EntityID() string { return e.ID }
