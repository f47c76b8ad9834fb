// Package roster manages the worker roster and the shadow credential records
// that grant login access.
package roster

import (
	"context"
	"regexp"
	"strings"

	"sitecrew/internal/apperr"
	"sitecrew/internal/logging"
	"sitecrew/internal/model"
	"sitecrew/internal/treestore"
)

var contactNumberRe = regexp.MustCompile(`^\+\d{10,15}$`)

// Service exposes roster operations over the injected store.
type Service struct {
	store treestore.Store
}

func New(st treestore.Store) *Service {
	return &Service{store: st}
}

// List returns the whole workers collection keyed by store key.
func (s *Service) List(ctx context.Context) (treestore.Node, error) {
	node, err := s.store.Get(ctx, model.CollectionWorkers)
	if err != nil {
		return nil, err
	}
	if node == nil {
		node = treestore.Node{}
	}
	return node, nil
}

// Create adds a worker and, as a second sequential write, its credential
// record. The two writes are not atomic: a failure after the first leaves a
// worker without login access, which callers see as a plain store fault.
func (s *Service) Create(ctx context.Context, w model.Worker, password string) (string, error) {
	var missing []string
	for _, f := range []struct{ name, val string }{
		{"username", w.Username},
		{"password", password},
		{"role", w.Role},
		{"fullName", w.FullName},
		{"contactNumber", w.ContactNumber},
		{"dob", w.DOB},
		{"doj", w.DOJ},
		{"address", w.Address},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return "", apperr.Validation("missing required fields: " + strings.Join(missing, ", "))
	}
	if w.Role != model.RoleWorker && w.Role != model.RoleAdmin {
		return "", apperr.Validation("role must be WORKER or ADMIN")
	}
	if !contactNumberRe.MatchString(w.ContactNumber) {
		return "", apperr.Validation("contactNumber must be in the format +xxxxxxxxxx (10-15 digits)")
	}

	exists, err := treestore.Exists(ctx, s.store, model.CollectionWorkers, "username", w.Username)
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperr.Conflict("username already exists")
	}

	key, err := s.store.Push(ctx, model.CollectionWorkers, treestore.Record{
		"username":      w.Username,
		"role":          w.Role,
		"fullName":      w.FullName,
		"contactNumber": w.ContactNumber,
		"dob":           w.DOB,
		"doj":           w.DOJ,
		"address":       w.Address,
	})
	if err != nil {
		return "", err
	}

	if _, err := s.store.Push(ctx, model.CollectionCredentials, treestore.Record{
		"username": w.Username,
		"password": password,
		"role":     w.Role,
	}); err != nil {
		logging.Logger.WithError(err).Errorf("worker %s created without credentials", w.Username)
		return "", err
	}

	return key, nil
}

// Delete removes a worker, its credential record (absence tolerated), and
// scrubs the username out of every project's worker list. The three phases
// run sequentially with no rollback; a mid-cascade fault leaves partial
// state behind.
func (s *Service) Delete(ctx context.Context, username string) error {
	if username == "" {
		return apperr.Validation("Username is required")
	}

	matches, err := s.store.Query(ctx, model.CollectionWorkers, "username", username)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return apperr.NotFound("Worker not found")
	}
	for key := range matches {
		if err := s.store.Remove(ctx, model.CollectionWorkers+"/"+key); err != nil {
			return err
		}
		break
	}

	creds, err := s.store.Query(ctx, model.CollectionCredentials, "username", username)
	if err != nil {
		return err
	}
	for key := range creds {
		if err := s.store.Remove(ctx, model.CollectionCredentials+"/"+key); err != nil {
			return err
		}
		break
	}

	projects, err := s.store.Get(ctx, model.CollectionProjects)
	if err != nil {
		return err
	}
	for key, child := range projects {
		rec, ok := child.(treestore.Node)
		if !ok {
			continue
		}
		workers := treestore.Strings(rec["workers"])
		filtered := workers[:0:0]
		for _, w := range workers {
			if w != username {
				filtered = append(filtered, w)
			}
		}
		if len(filtered) == len(workers) {
			continue
		}
		if filtered == nil {
			filtered = []string{}
		}
		if err := s.store.Update(ctx, model.CollectionProjects+"/"+key, treestore.Record{
			"workers": filtered,
		}); err != nil {
			return err
		}
	}

	return nil
}
