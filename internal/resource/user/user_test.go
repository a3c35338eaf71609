package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esplan/internal/session"
)

type fakeAPI struct {
	calls []string
	stats Stats
}

func (f *fakeAPI) Do(_ context.Context, op, _, _ string, _, out any) error {
	f.calls = append(f.calls, op)
	if s, ok := out.(*Stats); ok {
		*s = f.stats
	}
	return nil
}

func TestFetchStatsAdmin(t *testing.T) {
	api := &fakeAPI{stats: Stats{Total: 12, Active: 10, Inactive: 2, Admins: 3}}
	store := session.NewInMemoryStore()
	store.Save(session.Profile{ID: "u-1", Role: session.RoleAdmin}, "tok")

	stats, err := FetchStats(context.Background(), api, store)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Total)
	assert.Equal(t, []string{"users.stats"}, api.calls)
}

func TestFetchStatsNonAdminGetsZeroedShape(t *testing.T) {
	api := &fakeAPI{stats: Stats{Total: 12}}
	store := session.NewInMemoryStore()
	store.Save(session.Profile{ID: "u-2", Role: session.RoleDepartment}, "tok")

	stats, err := FetchStats(context.Background(), api, store)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Empty(t, api.calls) // the protected endpoint is never called
}

func TestFetchStatsWithoutSession(t *testing.T) {
	api := &fakeAPI{}
	stats, err := FetchStats(context.Background(), api, session.NewInMemoryStore())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Empty(t, api.calls)
}
