// Package attendance records daily work entries per worker per project.
// Entries live under attendance/{workerID}/{projectName} and are unique per
// Date: re-marking the same day is an in-place update, not a duplicate.
package attendance

import (
	"context"

	"sitecrew/internal/apperr"
	"sitecrew/internal/model"
	"sitecrew/internal/treestore"
)

// Service exposes attendance operations over the injected store.
type Service struct {
	store treestore.Store
}

func New(st treestore.Store) *Service {
	return &Service{store: st}
}

// Mark upserts the entry for (workerID, projectName, Date). The project must
// exist by case-insensitive name; the Date match is exact. Returns true when
// an existing entry was updated rather than a new one created. The nested
// path uses the project name as submitted, casing included.
func (s *Service) Mark(ctx context.Context, workerID, projectName string, entry model.AttendanceEntry) (bool, error) {
	if workerID == "" || projectName == "" || entry.Date == "" || entry.WorkDescription == "" || entry.ImagePath == "" {
		return false, apperr.Validation("worker Id, Project name, date, work description and image path are required")
	}

	exists, err := treestore.Exists(ctx, s.store, model.CollectionProjects, "projectName", projectName)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, apperr.NotFound("Project not found")
	}

	path := model.CollectionAttendance + "/" + workerID + "/" + projectName
	fields := treestore.Record{
		"Date":            entry.Date,
		"workDescription": entry.WorkDescription,
		"imagePath":       entry.ImagePath,
	}

	matches, err := s.store.Query(ctx, path, "Date", entry.Date)
	if err != nil {
		return false, err
	}
	for key := range matches {
		if err := s.store.Update(ctx, path+"/"+key, fields); err != nil {
			return false, err
		}
		return true, nil
	}

	if _, err := s.store.Push(ctx, path, fields); err != nil {
		return false, err
	}
	return false, nil
}

// ForWorker returns every entry recorded for the worker, grouped by project
// name. Unknown workers yield an empty map.
func (s *Service) ForWorker(ctx context.Context, workerID string) (treestore.Node, error) {
	node, err := s.store.Get(ctx, model.CollectionAttendance+"/"+workerID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		node = treestore.Node{}
	}
	return node, nil
}
