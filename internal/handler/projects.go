package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sitecrew/internal/model"
)

type createProjectRequest struct {
	ProjectName     string   `json:"projectName"`
	ProjectOverview string   `json:"projectOverview"`
	Workers         []string `json:"workers"`
}

func (h *Handler) ListProjects(c *gin.Context) {
	list, err := h.projects.List(c.Request.Context())
	if err != nil {
		fail(c, "error", err, "Failed to retrieve projects")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.projects.Create(c.Request.Context(), model.Project{
		ProjectName:     req.ProjectName,
		ProjectOverview: req.ProjectOverview,
		Workers:         req.Workers,
	})
	if err != nil {
		fail(c, "error", err, "Failed to add project")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Project created",
		"projectId": key,
	})
}

type replaceWorkersRequest struct {
	ProjectName     string   `json:"projectName"`
	WorkerUsernames []string `json:"workerUsernames"`
}

func (h *Handler) ReplaceProjectWorkers(c *gin.Context) {
	var req replaceWorkersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.projects.ReplaceWorkers(c.Request.Context(), req.ProjectName, req.WorkerUsernames)
	if err != nil {
		fail(c, "error", err, "Failed to add workers to project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Workers added successfully to the project",
		"projectId": key,
	})
}

type updateProjectRequest struct {
	ProjectName     string `json:"projectName"`
	NewProjectName  string `json:"newProjectName"`
	ProjectOverview string `json:"projectOverview"`
}

func (h *Handler) UpdateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.projects.UpdateDetails(c.Request.Context(), req.ProjectName, req.NewProjectName, req.ProjectOverview)
	if err != nil {
		fail(c, "error", err, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Project updated successfully",
		"projectId": key,
	})
}

type deleteProjectRequest struct {
	ProjectName string `json:"projectName"`
}

func (h *Handler) DeleteProject(c *gin.Context) {
	var req deleteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project name is required"})
		return
	}

	key, err := h.projects.Delete(c.Request.Context(), req.ProjectName)
	if err != nil {
		fail(c, "error", err, "Failed to delete project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Project deleted successfully",
		"projectId": key,
	})
}

func (h *Handler) ProjectPageInfo(c *gin.Context) {
	pages, err := h.projects.PagesForWorker(c.Request.Context(), c.Query("username"))
	if err != nil {
		fail(c, "error", err, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, pages)
}
