// Package handler wires the HTTP surface to the entity services.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sitecrew/internal/apperr"
	"sitecrew/internal/attendance"
	"sitecrew/internal/auth"
	"sitecrew/internal/logging"
	"sitecrew/internal/projects"
	"sitecrew/internal/roster"
	"sitecrew/internal/treestore"
)

type Handler struct {
	store      treestore.Store
	roster     *roster.Service
	projects   *projects.Service
	attendance *attendance.Service
	auth       *auth.Service
}

func New(st treestore.Store) *Handler {
	return &Handler{
		store:      st,
		roster:     roster.New(st),
		projects:   projects.New(st),
		attendance: attendance.New(st),
		auth:       auth.New(st),
	}
}

// RegisterRoutes attaches every API route to r.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)

	r.POST("/auth", h.Login)

	r.GET("/workers", h.ListWorkers)
	r.POST("/workers", h.CreateWorker)
	r.DELETE("/workers/deleteWorker", h.DeleteWorker)

	r.GET("/projects", h.ListProjects)
	r.POST("/projects", h.CreateProject)
	r.PUT("/projects", h.ReplaceProjectWorkers)
	r.PATCH("/projects", h.UpdateProject)
	r.GET("/projects/loadPageInfo", h.ProjectPageInfo)
	r.DELETE("/projects/deleteProject", h.DeleteProject)

	r.GET("/attendance", h.ListAttendance)
	r.POST("/attendance", h.MarkAttendance)

	r.GET("/backup", h.Backup)
}

func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Server is running and database is initialized!")
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "store": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": true})
}

// Backup returns the entire tree.
func (h *Handler) Backup(c *gin.Context) {
	dump, err := h.store.Dump(c.Request.Context())
	if err != nil {
		fail(c, "error", err, "Failed to retrieve database")
		return
	}
	c.JSON(http.StatusOK, dump)
}

// fail converts a service error to its HTTP response. Store faults become a
// generic 500 under the given fallback message; the cause is only logged.
func fail(c *gin.Context, key string, err error, fallback string) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		c.JSON(ae.Status(), gin.H{key: ae.Message})
		return
	}
	logging.Logger.WithError(err).Error(fallback)
	c.JSON(http.StatusInternalServerError, gin.H{key: fallback})
}
