package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecrew/internal/model"
	"sitecrew/internal/treestore"
)

func TestEnsureDefaultsCreatesAdmin(t *testing.T) {
	ctx := context.Background()
	st := treestore.NewMemory()

	require.NoError(t, EnsureDefaults(ctx, st, "admin", "pw"))

	workers, err := st.Get(ctx, model.CollectionWorkers)
	require.NoError(t, err)
	require.Len(t, workers, 1)
	for _, v := range workers {
		rec := v.(treestore.Node)
		assert.Equal(t, "admin", rec["username"])
		assert.Equal(t, "ADMIN", rec["role"])
		assert.Equal(t, "Default Admin", rec["fullName"])
	}

	creds, err := st.Query(ctx, model.CollectionCredentials, "username", "admin")
	require.NoError(t, err)
	require.Len(t, creds, 1)
	for _, cred := range creds {
		assert.Equal(t, "pw", cred["password"])
	}
}

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := treestore.NewMemory()

	require.NoError(t, EnsureDefaults(ctx, st, "admin", "pw"))
	require.NoError(t, EnsureDefaults(ctx, st, "admin", "pw"))

	workers, err := st.Get(ctx, model.CollectionWorkers)
	require.NoError(t, err)
	assert.Len(t, workers, 1)
	creds, err := st.Get(ctx, model.CollectionCredentials)
	require.NoError(t, err)
	assert.Len(t, creds, 1)
}

func TestEnsureDefaultsSkipsWorkerWhenRosterExists(t *testing.T) {
	ctx := context.Background()
	st := treestore.NewMemory()

	_, err := st.Push(ctx, model.CollectionWorkers, treestore.Record{
		"username": "someone", "role": "WORKER",
	})
	require.NoError(t, err)

	require.NoError(t, EnsureDefaults(ctx, st, "admin", "pw"))

	// roster already existed, so no admin worker is added; the credential
	// record is still seeded
	workers, err := st.Get(ctx, model.CollectionWorkers)
	require.NoError(t, err)
	assert.Len(t, workers, 1)
	creds, err := st.Query(ctx, model.CollectionCredentials, "username", "admin")
	require.NoError(t, err)
	assert.Len(t, creds, 1)
}
