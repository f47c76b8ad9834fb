package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sitecrew/internal/model"
)

type createWorkerRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	FullName      string `json:"fullName"`
	ContactNumber string `json:"contactNumber"`
	DOB           string `json:"dob"`
	DOJ           string `json:"doj"`
	Address       string `json:"address"`
}

func (h *Handler) ListWorkers(c *gin.Context) {
	workers, err := h.roster.List(c.Request.Context())
	if err != nil {
		fail(c, "error", err, "Failed to retrieve workers")
		return
	}
	c.JSON(http.StatusOK, workers)
}

func (h *Handler) CreateWorker(c *gin.Context) {
	var req createWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.roster.Create(c.Request.Context(), model.Worker{
		Username:      req.Username,
		Role:          req.Role,
		FullName:      req.FullName,
		ContactNumber: req.ContactNumber,
		DOB:           req.DOB,
		DOJ:           req.DOJ,
		Address:       req.Address,
	}, req.Password)
	if err != nil {
		fail(c, "error", err, "Failed to add worker")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Worker added successfully",
		"workerId": key,
	})
}

type deleteWorkerRequest struct {
	Username string `json:"username"`
}

func (h *Handler) DeleteWorker(c *gin.Context) {
	var req deleteWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	if err := h.roster.Delete(c.Request.Context(), req.Username); err != nil {
		fail(c, "error", err, "Failed to delete worker")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Worker deleted successfully"})
}
