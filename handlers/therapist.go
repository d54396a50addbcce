package handlers

import (
	"net/http"

	"plenura/services/therapist"
	"plenura/utils"

	"github.com/gin-gonic/gin"
)

// TherapistHandler exposes therapist profile, treatment, availability and
// subscription endpoints.
type TherapistHandler struct {
	Svc therapist.TherapistService
}

// NewTherapistHandler constructs a TherapistHandler.
func NewTherapistHandler(svc therapist.TherapistService) *TherapistHandler {
	return &TherapistHandler{Svc: svc}
}

// RegisterHandler creates (or returns) the caller's therapist profile.
func (h *TherapistHandler) RegisterHandler(c *gin.Context) {
	var input struct {
		DisplayName string `json:"display_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	th, err := h.Svc.Register(c.Request.Context(), c.GetString("userID"), input.DisplayName)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, th)
}

// GetProfileHandler returns a therapist's public profile.
func (h *TherapistHandler) GetProfileHandler(c *gin.Context) {
	th, err := h.Svc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, th)
}

// MeHandler returns the caller's own therapist profile.
func (h *TherapistHandler) MeHandler(c *gin.Context) {
	th, err := h.Svc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, th)
}

// UpdateProfileHandler patches editable profile fields.
func (h *TherapistHandler) UpdateProfileHandler(c *gin.Context) {
	var update therapist.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	th, err := h.Svc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := h.Svc.UpdateProfile(c.Request.Context(), th.ID, update); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// SetAvailableHandler toggles marketplace visibility.
func (h *TherapistHandler) SetAvailableHandler(c *gin.Context) {
	var input struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	th, err := h.Svc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := h.Svc.SetAvailable(c.Request.Context(), th.ID, *input.Available); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": *input.Available})
}

// ListVisibleHandler is the public marketplace listing.
func (h *TherapistHandler) ListVisibleHandler(c *gin.Context) {
	limit, offset := pagination(c)
	therapists, err := h.Svc.ListVisible(c.Request.Context(), limit, offset)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"therapists": therapists})
}

// SaveAvailabilityHandler replaces the caller's weekly availability rules.
func (h *TherapistHandler) SaveAvailabilityHandler(c *gin.Context) {
	var input struct {
		Rules []therapist.RuleInput `json:"rules" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	th, err := h.Svc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	rules, err := h.Svc.SaveAvailability(c.Request.Context(), th.ID, input.Rules)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// ListAvailabilityHandler returns a therapist's weekly rules.
func (h *TherapistHandler) ListAvailabilityHandler(c *gin.Context) {
	rules, err := h.Svc.ListAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// AddBlockedPeriodHandler blocks a date range, e.g. a holiday.
func (h *TherapistHandler) AddBlockedPeriodHandler(c *gin.Context) {
	var input struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	th, err := h.Svc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	blocked, err := h.Svc.AddBlockedPeriod(c.Request.Context(), th.ID, input.StartDate, input.EndDate, input.Reason)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blocked)
}

// RemoveBlockedPeriodHandler lifts a blocked period.
func (h *TherapistHandler) RemoveBlockedPeriodHandler(c *gin.Context) {
	th, err := h.Svc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := h.Svc.RemoveBlockedPeriod(c.Request.Context(), th.ID, c.Param("blockedID")); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// ListBlockedPeriodsHandler lists the caller's blocked periods.
func (h *TherapistHandler) ListBlockedPeriodsHandler(c *gin.Context) {
	th, err := h.Svc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	blocked, err := h.Svc.ListBlockedPeriods(c.Request.Context(), th.ID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked_periods": blocked})
}

// ChangeTierHandler switches the caller's subscription tier.
func (h *TherapistHandler) ChangeTierHandler(c *gin.Context) {
	var input struct {
		Tier string `json:"tier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	th, err := h.Svc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := h.Svc.ChangeSubscriptionTier(c.Request.Context(), th.ID, input.Tier); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tier": input.Tier})
}

// SetVettingStatusHandler is the admin vetting decision endpoint.
func (h *TherapistHandler) SetVettingStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Svc.SetVettingStatus(c.Request.Context(), c.GetString("role"), c.Param("id"), input.Status); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vetting_status": input.Status})
}

// AddTreatmentHandler adds a bookable treatment to the caller's profile.
func (h *TherapistHandler) AddTreatmentHandler(c *gin.Context) {
	var input therapist.TreatmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	th, err := h.Svc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	treatment, err := h.Svc.AddTreatment(c.Request.Context(), th.ID, input)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, treatment)
}

// UpdateTreatmentHandler patches a treatment owned by the caller.
func (h *TherapistHandler) UpdateTreatmentHandler(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	th, err := h.Svc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := h.Svc.UpdateTreatment(c.Request.Context(), th.ID, c.Param("treatmentID"), fields); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// ListTreatmentsHandler returns a therapist's active treatments.
func (h *TherapistHandler) ListTreatmentsHandler(c *gin.Context) {
	treatments, err := h.Svc.ListTreatments(c.Request.Context(), c.Param("id"), c.DefaultQuery("active", "true") == "true")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"treatments": treatments})
}
