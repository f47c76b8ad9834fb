// Package projects manages projects and their worker assignments.
package projects

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"sitecrew/internal/apperr"
	"sitecrew/internal/model"
	"sitecrew/internal/treestore"
)

// Service exposes project operations over the injected store.
type Service struct {
	store treestore.Store
}

func New(st treestore.Store) *Service {
	return &Service{store: st}
}

// List returns the whole projects collection keyed by store key.
func (s *Service) List(ctx context.Context) (treestore.Node, error) {
	node, err := s.store.Get(ctx, model.CollectionProjects)
	if err != nil {
		return nil, err
	}
	if node == nil {
		node = treestore.Node{}
	}
	return node, nil
}

// Create adds a project after a case-insensitive name duplicate check.
func (s *Service) Create(ctx context.Context, p model.Project) (string, error) {
	if p.ProjectName == "" {
		return "", apperr.Validation("Project name is required")
	}
	if p.ProjectOverview == "" {
		return "", apperr.Validation("Project overview is required")
	}
	if p.Workers == nil {
		return "", apperr.Validation("worker list is required")
	}

	exists, err := treestore.Exists(ctx, s.store, model.CollectionProjects, "projectName", p.ProjectName)
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperr.Conflict("project name already exists")
	}

	return s.store.Push(ctx, model.CollectionProjects, treestore.Record{
		"projectName":     p.ProjectName,
		"projectOverview": p.ProjectOverview,
		"workers":         p.Workers,
	})
}

// ReplaceWorkers swaps a project's worker list for the given usernames.
// Unknown usernames are silently dropped; only an entirely unknown list is an
// error. Username comparison against the roster is exact while the project
// name lookup folds case.
func (s *Service) ReplaceWorkers(ctx context.Context, projectName string, usernames []string) (string, error) {
	if projectName == "" {
		return "", apperr.Validation("Project name is required")
	}
	if len(usernames) == 0 {
		return "", apperr.Validation("No workers provided")
	}

	key, _, err := treestore.FindByField(ctx, s.store, model.CollectionProjects, "projectName", projectName, true)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", apperr.NotFound("Project not found")
	}

	roster, err := s.store.Get(ctx, model.CollectionWorkers)
	if err != nil {
		return "", err
	}
	known := map[string]bool{}
	for _, child := range roster {
		if rec, ok := child.(treestore.Node); ok {
			known[treestore.Str(rec, "username")] = true
		}
	}

	var valid []string
	for _, u := range usernames {
		if known[u] {
			valid = append(valid, u)
		}
	}
	if len(valid) == 0 {
		return "", apperr.NotFound("No valid workers found with provided usernames")
	}

	if err := s.store.Update(ctx, model.CollectionProjects+"/"+key, treestore.Record{
		"workers": valid,
	}); err != nil {
		return "", err
	}
	return key, nil
}

// UpdateDetails renames a project and/or replaces its overview. The overview
// is mandatory; omitting it is rejected with a not-found status.
func (s *Service) UpdateDetails(ctx context.Context, projectName, newName, overview string) (string, error) {
	if projectName == "" {
		return "", apperr.Validation("Project name is required")
	}

	key, _, err := treestore.FindByField(ctx, s.store, model.CollectionProjects, "projectName", projectName, true)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", apperr.NotFound("Project not found")
	}

	if overview == "" {
		return "", apperr.NotFound("You need to specify project overview to change")
	}
	updates := treestore.Record{"projectOverview": overview}
	if newName != "" {
		updates["projectName"] = newName
	}

	if err := s.store.Update(ctx, model.CollectionProjects+"/"+key, updates); err != nil {
		return "", err
	}
	return key, nil
}

// Delete removes a project by case-insensitive name. Attendance entries
// recorded under the project name are left behind; there is no cascade.
func (s *Service) Delete(ctx context.Context, projectName string) (string, error) {
	if projectName == "" {
		return "", apperr.Validation("Project name is required")
	}

	key, _, err := treestore.FindByField(ctx, s.store, model.CollectionProjects, "projectName", projectName, true)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", apperr.NotFound("Project not found")
	}

	if err := s.store.Remove(ctx, model.CollectionProjects+"/"+key); err != nil {
		return "", err
	}
	return key, nil
}

// PagesForWorker returns every project containing the worker, with full
// details for each assigned worker. The per-worker lookups are independent
// reads, so each project's fan-out runs them concurrently.
func (s *Service) PagesForWorker(ctx context.Context, username string) ([]model.ProjectPage, error) {
	if username == "" {
		return nil, apperr.Validation("Worker username is required")
	}

	projects, err := s.store.Get(ctx, model.CollectionProjects)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, apperr.NotFound("No projects found")
	}

	keys := make([]string, 0, len(projects))
	for key := range projects {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var pages []model.ProjectPage
	for _, key := range keys {
		rec, ok := projects[key].(treestore.Node)
		if !ok {
			continue
		}
		members := treestore.Strings(rec["workers"])
		if !contains(members, username) {
			continue
		}

		details := make([]model.ProjectWorker, len(members))
		errs := make([]error, len(members))
		var wg sync.WaitGroup
		for i, member := range members {
			wg.Add(1)
			go func(i int, member string) {
				defer wg.Done()
				details[i], errs[i] = s.workerDetail(ctx, member)
			}(i, member)
		}
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}

		pages = append(pages, model.ProjectPage{
			ProjectName: treestore.Str(rec, "projectName"),
			Description: treestore.Str(rec, "projectOverview"),
			Workers:     details,
		})
	}

	if len(pages) == 0 {
		return nil, apperr.NotFound("No projects found for the given worker")
	}
	return pages, nil
}

func (s *Service) workerDetail(ctx context.Context, username string) (model.ProjectWorker, error) {
	matches, err := s.store.Query(ctx, model.CollectionWorkers, "username", username)
	if err != nil {
		return model.ProjectWorker{}, err
	}
	for _, rec := range matches {
		return model.ProjectWorker{
			Username:      treestore.Str(rec, "username"),
			Name:          treestore.Str(rec, "fullName"),
			ContactNumber: treestore.Str(rec, "contactNumber"),
			Address:       treestore.Str(rec, "address"),
			DOB:           treestore.Str(rec, "dob"),
			DOJ:           treestore.Str(rec, "doj"),
			Role:          treestore.Str(rec, "role"),
		}, nil
	}
	// a project referencing a username missing from the roster is corrupt
	// state, surfaced as a server error
	return model.ProjectWorker{}, fmt.Errorf("worker %q assigned to a project but missing from roster", username)
}

func contains(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
