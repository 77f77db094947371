package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vedartha/erp-backend-go/internal/pkg/directory"
)

func groupOfSize(n int) MutationGroup {
	group := make(MutationGroup, n)
	for i := range group {
		group[i] = directory.Mutation{Op: directory.OpDelete, Collection: directory.CollectionEmployees}
	}
	return group
}

func TestCommand_Batches_PacksWithinLimit(t *testing.T) {
	cmd := Command{Groups: []MutationGroup{groupOfSize(2), groupOfSize(2), groupOfSize(2)}}

	batches := cmd.Batches(4)
	assert.Len(t, batches, 2)
	assert.Len(t, batches[0], 4)
	assert.Len(t, batches[1], 2)
}

func TestCommand_Batches_NeverSplitsAGroup(t *testing.T) {
	// 3+3 exceeds the limit of 5, so the second group starts a new batch
	// instead of being torn across the boundary.
	cmd := Command{Groups: []MutationGroup{groupOfSize(3), groupOfSize(3)}}

	batches := cmd.Batches(5)
	assert.Len(t, batches, 2)
	assert.Len(t, batches[0], 3)
	assert.Len(t, batches[1], 3)
}

func TestCommand_Batches_OversizedGroupBecomesOwnBatch(t *testing.T) {
	cmd := Command{Groups: []MutationGroup{groupOfSize(2), groupOfSize(7), groupOfSize(1)}}

	batches := cmd.Batches(5)
	assert.Len(t, batches, 3)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[1], 7)
	assert.Len(t, batches[2], 1)
}

func TestCommand_MutationCount(t *testing.T) {
	cmd := Command{Groups: []MutationGroup{groupOfSize(2), groupOfSize(3)}}
	assert.Equal(t, 5, cmd.MutationCount())
}
