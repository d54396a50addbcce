package handlers

import (
	"net/http"
	"time"

	"plenura/services/earnings"
	"plenura/services/therapist"
	"plenura/utils"

	"github.com/gin-gonic/gin"
)

// EarningsHandler exposes the therapist earnings views.
type EarningsHandler struct {
	Svc          earnings.EarningsService
	TherapistSvc therapist.TherapistService
}

// NewEarningsHandler constructs an EarningsHandler.
func NewEarningsHandler(svc earnings.EarningsService, therapistSvc therapist.TherapistService) *EarningsHandler {
	return &EarningsHandler{Svc: svc, TherapistSvc: therapistSvc}
}

// GetSummaryHandler returns the caller's earnings summary. An optional as_of
// query param (RFC 3339) anchors the month buckets; it defaults to now.
func (h *EarningsHandler) GetSummaryHandler(c *gin.Context) {
	th, err := h.TherapistSvc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "as_of must be RFC 3339")
			return
		}
		asOf = parsed
	}

	summary, err := h.Svc.GetSummary(c.Request.Context(), th.ID, asOf)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListBookingEarningsHandler returns the caller's per-booking earnings rows.
func (h *EarningsHandler) ListBookingEarningsHandler(c *gin.Context) {
	th, err := h.TherapistSvc.GetByUserID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	limit, offset := pagination(c)
	rows, err := h.Svc.ListBookingEarnings(c.Request.Context(), th.ID, limit, offset)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"earnings": rows})
}
