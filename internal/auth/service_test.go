package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecrew/internal/apperr"
	"sitecrew/internal/model"
	"sitecrew/internal/treestore"
)

func newService(t *testing.T) *Service {
	t.Helper()
	st := treestore.NewMemory()
	_, err := st.Push(context.Background(), model.CollectionCredentials, treestore.Record{
		"username": "Admin", "password": "secret", "role": "ADMIN",
	})
	require.NoError(t, err)
	return New(st)
}

func TestLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	cases := []struct {
		name                     string
		username, password, role string
		wantKind                 apperr.Kind
		wantOK                   bool
	}{
		{"success", "Admin", "secret", "ADMIN", 0, true},
		{"username folds case", "admin", "secret", "ADMIN", 0, true},
		{"unknown user", "ghost", "secret", "ADMIN", apperr.KindUnauthorized, false},
		{"wrong password", "admin", "nope", "ADMIN", apperr.KindUnauthorized, false},
		{"password is exact", "admin", "SECRET", "ADMIN", apperr.KindUnauthorized, false},
		{"role mismatch", "admin", "secret", "WORKER", apperr.KindForbidden, false},
		{"missing fields", "", "secret", "ADMIN", apperr.KindValidation, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Login(ctx, tc.username, tc.password, tc.role)
			if tc.wantOK {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, tc.wantKind))
		})
	}
}
