package handlers

import (
	"net/http"

	"plenura/services/review"
	"plenura/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes review creation and listing.
type ReviewHandler struct {
	Svc review.ReviewService
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

// CreateReviewHandler records a client's review of a completed booking.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	var input struct {
		BookingID string `json:"booking_id" binding:"required"`
		Rating    int    `json:"rating" binding:"required,min=1,max=5"`
		Comment   string `json:"comment"`
		IsPublic  *bool  `json:"is_public"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	r, err := h.Svc.CreateReview(c.Request.Context(), c.GetString("userID"), review.CreateReviewInput{
		BookingID: input.BookingID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		IsPublic:  isPublic,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListTherapistReviewsHandler returns a therapist's public reviews.
func (h *ReviewHandler) ListTherapistReviewsHandler(c *gin.Context) {
	limit, offset := pagination(c)
	reviews, err := h.Svc.ListTherapistReviews(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
