// Package seed ensures the default administrator exists on startup.
package seed

import (
	"context"

	"sitecrew/internal/logging"
	"sitecrew/internal/model"
	"sitecrew/internal/treestore"
)

// EnsureDefaults creates the default admin worker when the workers collection
// is absent, and its credential record when no credential carries the admin
// username. Safe to run on every start.
func EnsureDefaults(ctx context.Context, st treestore.Store, username, password string) error {
	workers, err := st.Get(ctx, model.CollectionWorkers)
	if err != nil {
		return err
	}
	if workers == nil {
		logging.Logger.Info("creating default admin worker")
		if _, err := st.Push(ctx, model.CollectionWorkers, treestore.Record{
			"username":      username,
			"role":          model.RoleAdmin,
			"fullName":      "Default Admin",
			"contactNumber": "+0000000000",
			"dob":           "1990-01-01",
			"doj":           "1990-01-01",
			"address":       "Admin Office",
		}); err != nil {
			return err
		}
	}

	exists, err := treestore.Exists(ctx, st, model.CollectionCredentials, "username", username)
	if err != nil {
		return err
	}
	if !exists {
		if _, err := st.Push(ctx, model.CollectionCredentials, treestore.Record{
			"username": username,
			"password": password,
			"role":     model.RoleAdmin,
		}); err != nil {
			return err
		}
	}
	return nil
}
