// Package auth checks submitted credentials against the stored credential
// collection. Login is stateless: no token or session is issued.
package auth

import (
	"context"

	"sitecrew/internal/apperr"
	"sitecrew/internal/model"
	"sitecrew/internal/treestore"
)

// Service exposes the login check over the injected store.
type Service struct {
	store treestore.Store
}

func New(st treestore.Store) *Service {
	return &Service{store: st}
}

// Login verifies username, password and role. The username lookup folds
// case; the password and role comparisons are exact. Absent user and wrong
// password are deliberately indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password, role string) error {
	if username == "" || password == "" || role == "" {
		return apperr.Validation("Username, password, and role are required")
	}

	_, cred, err := treestore.FindByField(ctx, s.store, model.CollectionCredentials, "username", username, true)
	if err != nil {
		return err
	}
	if cred == nil {
		return apperr.Unauthorized("Invalid username or password.")
	}
	if treestore.Str(cred, "password") != password {
		return apperr.Unauthorized("Invalid username or password.")
	}
	if treestore.Str(cred, "role") != role {
		return apperr.Forbidden("You do not have admin access")
	}
	return nil
}
