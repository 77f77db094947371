package directory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
}

func TestMemoryStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "docs", "a", testDoc{ID: "a", Name: "first"}))

	raw, err := store.GetByID(ctx, "docs", "a")
	require.NoError(t, err)
	var doc testDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "first", doc.Name)

	require.NoError(t, store.Delete(ctx, "docs", "a"))
	_, err = store.GetByID(ctx, "docs", "a")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing document is not an error.
	assert.NoError(t, store.Delete(ctx, "docs", "a"))
}

func TestMemoryStore_QueryEquals(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "docs", "a", testDoc{ID: "a", Name: "x", Group: "g1"}))
	require.NoError(t, store.Put(ctx, "docs", "b", testDoc{ID: "b", Name: "x", Group: "g2"}))
	require.NoError(t, store.Put(ctx, "docs", "c", testDoc{ID: "c", Name: "y", Group: "g1"}))

	raws, err := store.QueryEquals(ctx, "docs", Eq("name", "x"))
	require.NoError(t, err)
	assert.Len(t, raws, 2)

	raws, err = store.QueryEquals(ctx, "docs", Eq("name", "x"), Eq("group", "g1"))
	require.NoError(t, err)
	assert.Len(t, raws, 1)

	raws, err = store.QueryEquals(ctx, "docs", Eq("name", "z"))
	require.NoError(t, err)
	assert.Empty(t, raws)
}

func TestMemoryStore_ApplyBatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "docs", "a", testDoc{ID: "a", Name: "first"}))

	// The create collides, so the whole batch must leave the store untouched.
	err := store.ApplyBatch(ctx, []Mutation{
		{Op: OpDelete, Collection: "docs", ID: "a"},
		{Op: OpCreate, Collection: "docs", ID: "a", Doc: testDoc{ID: "a", Name: "second"}},
	})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	raw, err := store.GetByID(ctx, "docs", "a")
	require.NoError(t, err)
	var doc testDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "first", doc.Name)
}

func TestMemoryStore_ApplyBatchUpdateMissingDoc(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.ApplyBatch(ctx, []Mutation{
		{Op: OpUpdate, Collection: "docs", ID: "missing", Fields: map[string]any{"name": "x"}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "docs", "a", testDoc{ID: "a", Name: "first", Group: "g1"}))

	require.NoError(t, store.ApplyBatch(ctx, []Mutation{
		{Op: OpUpdate, Collection: "docs", ID: "a", Fields: map[string]any{"name": "second"}},
	}))

	raw, err := store.GetByID(ctx, "docs", "a")
	require.NoError(t, err)
	var doc testDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "second", doc.Name)
	assert.Equal(t, "g1", doc.Group)
}

func TestMemoryStore_WatchDeliversEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := NewMemoryStore()

	events, err := store.Watch(ctx, "docs")
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "docs", "a", testDoc{ID: "a", Name: "first"}))
	ev := <-events
	assert.Equal(t, Event{Collection: "docs", ID: "a", Kind: EventPut}, ev)

	require.NoError(t, store.Delete(ctx, "docs", "a"))
	ev = <-events
	assert.Equal(t, Event{Collection: "docs", ID: "a", Kind: EventDelete}, ev)
}
