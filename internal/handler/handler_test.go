package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecrew/internal/seed"
	"sitecrew/internal/treestore"
)

func newTestRouter(t *testing.T) (*gin.Engine, treestore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := treestore.NewMemory()
	r := gin.New()
	RegisterRoutes(r, New(st))
	return r, st
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 && json.Valid(w.Body.Bytes()) {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func TestWorkerLifecycleScenario(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := map[string]any{
		"username": "w1", "password": "p", "role": "WORKER",
		"fullName": "A", "contactNumber": "+1234567890",
		"dob": "1990-01-01", "doj": "2020-01-01", "address": "X",
	}

	w, body := do(t, r, http.MethodPost, "/workers", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Worker added successfully", body["message"])
	workerID, _ := body["workerId"].(string)
	require.NotEmpty(t, workerID)

	w, body = do(t, r, http.MethodGet, "/workers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body, 1)
	rec, ok := body[workerID].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "w1", rec["username"])

	// identical second create conflicts
	w, body = do(t, r, http.MethodPost, "/workers", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "username already exists", body["error"])
}

func TestAttendanceScenario(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := do(t, r, http.MethodPost, "/projects", map[string]any{
		"projectName": "P1", "projectOverview": "o", "workers": []string{},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	mark := map[string]any{
		"workerID": "w1", "projectName": "P1", "Date": "2024-01-01",
		"workDescription": "d", "imagePath": "img",
	}
	w, body := do(t, r, http.MethodPost, "/attendance", mark)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Attendance added successfully", body["message"])
	assert.Equal(t, "w1", body["workerId"])

	mark["workDescription"] = "d2"
	w, body = do(t, r, http.MethodPost, "/attendance", mark)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Attendance updated successfully", body["message"])

	w, body = do(t, r, http.MethodGet, "/attendance?workerID=w1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p1, ok := body["P1"].(map[string]any)
	require.True(t, ok)
	require.Len(t, p1, 1, "the upsert must not duplicate the entry")
	for _, v := range p1 {
		entry := v.(map[string]any)
		assert.Equal(t, "d2", entry["workDescription"])
	}
}

func TestAttendanceUnknownProject(t *testing.T) {
	r, _ := newTestRouter(t)
	w, body := do(t, r, http.MethodPost, "/attendance", map[string]any{
		"workerID": "w1", "projectName": "nope", "Date": "2024-01-01",
		"workDescription": "d", "imagePath": "img",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Project not found", body["error"])
}

func TestLoginRoute(t *testing.T) {
	r, st := newTestRouter(t)
	require.NoError(t, seed.EnsureDefaults(context.Background(), st, "admin", "pw"))

	w, body := do(t, r, http.MethodPost, "/auth", map[string]any{
		"username": "admin", "password": "pw", "role": "ADMIN",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", body["message"])

	w, body = do(t, r, http.MethodPost, "/auth", map[string]any{
		"username": "admin", "password": "wrong", "role": "ADMIN",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid username or password.", body["message"])

	w, body = do(t, r, http.MethodPost, "/auth", map[string]any{
		"username": "admin", "password": "pw", "role": "WORKER",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You do not have admin access", body["message"])

	w, _ = do(t, r, http.MethodPost, "/auth", map[string]any{
		"username": "admin",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	// roster entry for the PUT validation
	w, _ := do(t, r, http.MethodPost, "/workers", map[string]any{
		"username": "w1", "password": "p", "role": "WORKER",
		"fullName": "A", "contactNumber": "+1234567890",
		"dob": "1990-01-01", "doj": "2020-01-01", "address": "X",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := do(t, r, http.MethodPost, "/projects", map[string]any{
		"projectName": "Bridge", "projectOverview": "o", "workers": []string{},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	projectID, _ := body["projectId"].(string)
	require.NotEmpty(t, projectID)

	w, body = do(t, r, http.MethodPut, "/projects", map[string]any{
		"projectName": "bridge", "workerUsernames": []string{"w1", "ghost"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, projectID, body["projectId"])

	w, body = do(t, r, http.MethodGet, "/projects/loadPageInfo?username=w1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = do(t, r, http.MethodPatch, "/projects", map[string]any{
		"projectName": "Bridge", "newProjectName": "Tunnel", "projectOverview": "o2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, body = do(t, r, http.MethodDelete, "/projects/deleteProject", map[string]any{
		"projectName": "tunnel",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Project deleted successfully", body["message"])

	w, body = do(t, r, http.MethodGet, "/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body)
}

func TestDeleteWorkerRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := do(t, r, http.MethodPost, "/workers", map[string]any{
		"username": "w1", "password": "p", "role": "WORKER",
		"fullName": "A", "contactNumber": "+1234567890",
		"dob": "1990-01-01", "doj": "2020-01-01", "address": "X",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := do(t, r, http.MethodDelete, "/workers/deleteWorker", map[string]any{
		"username": "w1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Worker deleted successfully", body["message"])

	w, body = do(t, r, http.MethodDelete, "/workers/deleteWorker", map[string]any{
		"username": "w1",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Worker not found", body["error"])
}

func TestBackupRoute(t *testing.T) {
	r, st := newTestRouter(t)
	require.NoError(t, seed.EnsureDefaults(context.Background(), st, "admin", "pw"))

	w, body := do(t, r, http.MethodGet, "/backup", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "workers")
	assert.Contains(t, body, "logincredentials")
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	w, body := do(t, r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}
