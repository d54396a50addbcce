package handlers

import (
	"net/http"
	"strconv"
	"time"

	"plenura/services/booking"
	"plenura/services/therapist"
	"plenura/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes booking lifecycle and slot endpoints.
type BookingHandler struct {
	Svc          booking.BookingService
	TherapistSvc therapist.TherapistService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.BookingService, therapistSvc therapist.TherapistService) *BookingHandler {
	return &BookingHandler{Svc: svc, TherapistSvc: therapistSvc}
}

// CreateBookingHandler creates a client booking.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input struct {
		TherapistID        string    `json:"therapist_id" binding:"required"`
		TherapistServiceID string    `json:"therapist_service_id" binding:"required"`
		ScheduledAt        time.Time `json:"scheduled_at" binding:"required"`
		ClientName         string    `json:"client_name"`
		ClientAddress      string    `json:"client_address"`
		Notes              string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Svc.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		ClientID:           c.GetString("userID"),
		ClientName:         input.ClientName,
		TherapistID:        input.TherapistID,
		TherapistServiceID: input.TherapistServiceID,
		ScheduledAt:        input.ScheduledAt,
		ClientAddress:      input.ClientAddress,
		Notes:              input.Notes,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// CreateManualBookingHandler records a booking the therapist took outside the
// app, e.g. over the phone.
func (h *BookingHandler) CreateManualBookingHandler(c *gin.Context) {
	var input struct {
		TherapistServiceID string    `json:"therapist_service_id" binding:"required"`
		ClientID           string    `json:"client_id"`
		ClientName         string    `json:"client_name" binding:"required"`
		ScheduledAt        time.Time `json:"scheduled_at" binding:"required"`
		Notes              string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	th, err := h.TherapistSvc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	b, err := h.Svc.CreateManualBooking(c.Request.Context(), booking.ManualBookingInput{
		TherapistID:        th.ID,
		TherapistServiceID: input.TherapistServiceID,
		ClientID:           input.ClientID,
		ClientName:         input.ClientName,
		ScheduledAt:        input.ScheduledAt,
		Notes:              input.Notes,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetSlotsHandler returns the bookable slots for a therapist on a date.
func (h *BookingHandler) GetSlotsHandler(c *gin.Context) {
	therapistID := c.Param("id")
	date := c.Query("date")
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "duration must be an integer")
		return
	}

	slots, svcErr := h.Svc.GetAvailableSlots(c.Request.Context(), therapistID, date, duration)
	if svcErr != nil {
		utils.RespondAppError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// TransitionHandler moves a booking to a new lifecycle status.
func (h *BookingHandler) TransitionHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	actor, err := h.actorFromContext(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	b, err := h.Svc.TransitionStatus(c.Request.Context(), c.Param("id"), input.Status, actor)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingHandler returns one booking, visibility-checked for the caller.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	actor, err := h.actorFromContext(c)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	b, err := h.Svc.GetBooking(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMyBookingsHandler lists the authenticated client's bookings.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	limit, offset := pagination(c)
	bookings, err := h.Svc.ListClientBookings(c.Request.Context(), c.GetString("userID"), c.Query("status"), limit, offset)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListTherapistBookingsHandler lists the authenticated therapist's bookings.
func (h *BookingHandler) ListTherapistBookingsHandler(c *gin.Context) {
	th, err := h.TherapistSvc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	limit, offset := pagination(c)
	bookings, err := h.Svc.ListTherapistBookings(c.Request.Context(), th.ID, c.Query("status"), limit, offset)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateNotesHandler records the therapist's private session notes.
func (h *BookingHandler) UpdateNotesHandler(c *gin.Context) {
	var input struct {
		Notes string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	th, err := h.TherapistSvc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if err := h.Svc.UpdateTherapistNotes(c.Request.Context(), c.Param("id"), th.ID, input.Notes); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// actorFromContext builds the lifecycle actor; therapists act under their
// profile ID rather than their auth user ID.
func (h *BookingHandler) actorFromContext(c *gin.Context) (booking.Actor, error) {
	userID := c.GetString("userID")
	role := c.GetString("role")
	if role == "therapist" {
		th, err := h.TherapistSvc.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			return booking.Actor{}, err
		}
		return booking.Actor{UserID: th.ID, Role: role}, nil
	}
	return booking.Actor{UserID: userID, Role: role}, nil
}

// pagination reads limit/offset query params with service-side clamping left
// to the services.
func pagination(c *gin.Context) (int64, int64) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	return limit, offset
}
