package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPruneRefs(t *testing.T) {
	p := Project{
		ID:              "p-1",
		Name:            "ปรับปรุงห้องสมุดโรงเรียน",
		StrategicIssues: []string{"si-1", "si-gone", "si-2"},
		Strategies:      []string{"st-gone"},
	}

	pruned := p.PruneRefs(
		map[string]bool{"si-1": true, "si-2": true},
		map[string]bool{},
	)

	assert.Equal(t, []string{"si-1", "si-2"}, pruned.StrategicIssues)
	assert.Empty(t, pruned.Strategies)
	// The original record keeps whatever the server sent.
	assert.Len(t, p.StrategicIssues, 3)
}

func TestPruneRefsNoRefs(t *testing.T) {
	p := Project{ID: "p-1"}
	pruned := p.PruneRefs(nil, nil)
	assert.Nil(t, pruned.StrategicIssues)
	assert.Nil(t, pruned.Strategies)
}
