package handlers

import (
	"net/http"

	"plenura/services/practice"
	"plenura/utils"

	"github.com/gin-gonic/gin"
)

// PracticeHandler exposes multi-therapist practice management.
type PracticeHandler struct {
	Svc practice.PracticeService
}

// NewPracticeHandler constructs a PracticeHandler.
func NewPracticeHandler(svc practice.PracticeService) *PracticeHandler {
	return &PracticeHandler{Svc: svc}
}

// CreateHandler creates a practice owned by the caller.
func (h *PracticeHandler) CreateHandler(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), input.Name)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetHandler returns a practice.
func (h *PracticeHandler) GetHandler(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AddTherapistHandler adds a therapist to the roster, owner only.
func (h *PracticeHandler) AddTherapistHandler(c *gin.Context) {
	if err := h.Svc.AddTherapist(c.Request.Context(), c.GetString("userID"), c.Param("id"), c.Param("therapistID")); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": true})
}

// RemoveTherapistHandler removes a therapist from the roster, owner only.
func (h *PracticeHandler) RemoveTherapistHandler(c *gin.Context) {
	if err := h.Svc.RemoveTherapist(c.Request.Context(), c.GetString("userID"), c.Param("id"), c.Param("therapistID")); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// ListBookingsHandler lists bookings across the roster, owner only.
func (h *PracticeHandler) ListBookingsHandler(c *gin.Context) {
	limit, offset := pagination(c)
	bookings, err := h.Svc.ListPracticeBookings(c.Request.Context(), c.GetString("userID"), c.Param("id"), limit, offset)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
