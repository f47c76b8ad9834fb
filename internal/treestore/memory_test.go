package treestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPushAndGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	key, err := st.Push(ctx, "workers", Record{"username": "w1", "role": "WORKER"})
	require.NoError(t, err)
	require.NotEmpty(t, key)

	node, err := st.Get(ctx, "workers")
	require.NoError(t, err)
	require.Len(t, node, 1)
	rec, ok := node[key].(Node)
	require.True(t, ok)
	assert.Equal(t, "w1", rec["username"])

	// reading a single record by its full path works too
	rec2, err := st.Get(ctx, "workers/"+key)
	require.NoError(t, err)
	assert.Equal(t, "WORKER", rec2["role"])
}

func TestMemoryGetAbsent(t *testing.T) {
	st := NewMemory()
	node, err := st.Get(context.Background(), "projects")
	require.NoError(t, err)
	assert.Nil(t, node)
}

func TestMemoryNestedSubtree(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	k1, err := st.Push(ctx, "attendance/w1/P1", Record{"Date": "2024-01-01"})
	require.NoError(t, err)
	_, err = st.Push(ctx, "attendance/w1/P2", Record{"Date": "2024-01-02"})
	require.NoError(t, err)
	_, err = st.Push(ctx, "attendance/w2/P1", Record{"Date": "2024-01-03"})
	require.NoError(t, err)

	node, err := st.Get(ctx, "attendance/w1")
	require.NoError(t, err)
	require.Len(t, node, 2)
	p1, ok := node["P1"].(Node)
	require.True(t, ok)
	rec, ok := p1[k1].(Node)
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", rec["Date"])
}

func TestMemoryUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	key, err := st.Push(ctx, "projects", Record{
		"projectName":     "P1",
		"projectOverview": "old",
		"workers":         []string{"w1"},
	})
	require.NoError(t, err)

	require.NoError(t, st.Update(ctx, "projects/"+key, Record{"projectOverview": "new"}))

	rec, err := st.Get(ctx, "projects/"+key)
	require.NoError(t, err)
	assert.Equal(t, "new", rec["projectOverview"])
	assert.Equal(t, "P1", rec["projectName"], "untouched fields survive a merge")
	assert.Equal(t, []string{"w1"}, Strings(rec["workers"]))
}

func TestMemoryRemoveSubtree(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	_, err := st.Push(ctx, "attendance/w1/P1", Record{"Date": "2024-01-01"})
	require.NoError(t, err)
	_, err = st.Push(ctx, "attendance/w2/P1", Record{"Date": "2024-01-01"})
	require.NoError(t, err)

	require.NoError(t, st.Remove(ctx, "attendance/w1"))

	node, err := st.Get(ctx, "attendance/w1")
	require.NoError(t, err)
	assert.Nil(t, node)

	node, err = st.Get(ctx, "attendance/w2")
	require.NoError(t, err)
	assert.Len(t, node, 1)
}

func TestMemoryQueryExactMatch(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	key, err := st.Push(ctx, "workers", Record{"username": "w1"})
	require.NoError(t, err)
	_, err = st.Push(ctx, "workers", Record{"username": "w2"})
	require.NoError(t, err)
	// a record without the field is simply not a match
	_, err = st.Push(ctx, "workers", Record{"fullName": "No Name"})
	require.NoError(t, err)

	got, err := st.Query(ctx, "workers", "username", "w1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got, key)

	// exact means case matters here
	got, err = st.Query(ctx, "workers", "username", "W1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryDump(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	dump, err := st.Dump(ctx)
	require.NoError(t, err)
	assert.Empty(t, dump)

	_, err = st.Push(ctx, "workers", Record{"username": "w1"})
	require.NoError(t, err)
	_, err = st.Push(ctx, "projects", Record{"projectName": "P1"})
	require.NoError(t, err)

	dump, err = st.Dump(ctx)
	require.NoError(t, err)
	assert.Contains(t, dump, "workers")
	assert.Contains(t, dump, "projects")
}

func TestMemoryGetCopiesRecords(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	key, err := st.Push(ctx, "workers", Record{"username": "w1"})
	require.NoError(t, err)

	node, err := st.Get(ctx, "workers")
	require.NoError(t, err)
	node[key].(Node)["username"] = "mutated"

	rec, err := st.Get(ctx, "workers/"+key)
	require.NoError(t, err)
	assert.Equal(t, "w1", rec["username"])
}
