package handler

import (
	"errors"
	"net/http"
	"strings"

	"roadwatch/backend/internal/complaint"
	"roadwatch/backend/internal/models"
	"roadwatch/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// SubmitComplaint handles the public intake form (multipart, optional
// media file).
func (h *Handler) SubmitComplaint(c *gin.Context) {
	sub := complaint.Submission{
		VehicleNo:     c.PostForm("vehicle-no"),
		ViolationType: c.PostForm("violation-type"),
		Location:      c.PostForm("offence-location"),
		Latitude:      c.PostForm("latitude"),
		Longitude:     c.PostForm("longitude"),
		Date:          c.PostForm("date"),
		Time:          c.PostForm("time"),
		State:         c.PostForm("state"),
		Comment:       c.PostForm("comment"),
	}

	// FormFile errors just mean no usable file was attached.
	media, err := c.FormFile("media")
	if err != nil {
		media = nil
	}

	registered, err := h.Complaints.Submit(sub, media)
	if err != nil {
		if errors.Is(err, complaint.ErrVehicleNoRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Vehicle number is required."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error registering complaint."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Complaint registered successfully!",
		"complaint_id": registered.ComplaintID,
	})
}

// History is the public read-only complaint listing, newest first.
func (h *Handler) History(c *gin.Context) {
	complaints, err := h.Complaints.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error listing complaints."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "complaints": complaints})
}

// AdminDashboard serves the same listing for the authenticated admin UI.
func (h *Handler) AdminDashboard(c *gin.Context) {
	complaints, err := h.Complaints.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error listing complaints."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "complaints": complaints})
}

// APIListComplaints is the shared-secret machine view: a bare JSON array.
func (h *Handler) APIListComplaints(c *gin.Context) {
	complaints, err := h.Complaints.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error listing complaints."})
		return
	}
	c.JSON(http.StatusOK, complaints)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateComplaintStatus moves a complaint through its lifecycle.
func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	complaintID := c.Param("id")

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "New status not provided."})
		return
	}

	applied, err := h.Complaints.UpdateStatus(complaintID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, complaint.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid status provided. Must be one of: " + strings.Join(models.ValidStatuses, ", "),
			})
		case errors.Is(err, storage.ErrComplaintNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Complaint with ID " + complaintID + " not found.",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error updating status."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Complaint status updated.",
		"complaint_id": complaintID,
		"new_status":   applied,
	})
}
