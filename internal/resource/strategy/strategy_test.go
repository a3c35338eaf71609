package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrphaned(t *testing.T) {
	issues := map[string]bool{"si-1": true}

	assert.False(t, Strategy{ID: "st-1", StrategicIssueID: "si-1"}.Orphaned(issues))
	assert.True(t, Strategy{ID: "st-2", StrategicIssueID: "si-gone"}.Orphaned(issues))
	// A strategy with no parent reference is not treated as orphaned.
	assert.False(t, Strategy{ID: "st-3"}.Orphaned(issues))
}

func TestIDSet(t *testing.T) {
	set := IDSet([]Strategy{{ID: "st-1"}, {ID: "st-2"}})
	assert.True(t, set["st-1"])
	assert.False(t, set["st-9"])
}
