package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sitecrew/internal/model"
)

type markAttendanceRequest struct {
	WorkerID        string `json:"workerID"`
	ProjectName     string `json:"projectName"`
	Date            string `json:"Date"`
	WorkDescription string `json:"workDescription"`
	ImagePath       string `json:"imagePath"`
}

func (h *Handler) MarkAttendance(c *gin.Context) {
	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.attendance.Mark(c.Request.Context(), req.WorkerID, req.ProjectName, model.AttendanceEntry{
		Date:            req.Date,
		WorkDescription: req.WorkDescription,
		ImagePath:       req.ImagePath,
	})
	if err != nil {
		fail(c, "error", err, "Failed to add/update attendance entry")
		return
	}

	msg := "Attendance added successfully"
	if updated {
		msg = "Attendance updated successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  msg,
		"workerId": req.WorkerID,
	})
}

func (h *Handler) ListAttendance(c *gin.Context) {
	records, err := h.attendance.ForWorker(c.Request.Context(), c.Query("workerID"))
	if err != nil {
		fail(c, "error", err, "Failed to retrieve attendance records")
		return
	}
	c.JSON(http.StatusOK, records)
}
