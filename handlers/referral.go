package handlers

import (
	"net/http"

	"plenura/services/referral"
	"plenura/utils"

	"github.com/gin-gonic/gin"
)

// ReferralHandler exposes invite codes and their redemption.
type ReferralHandler struct {
	Svc referral.ReferralService
}

// NewReferralHandler constructs a ReferralHandler.
func NewReferralHandler(svc referral.ReferralService) *ReferralHandler {
	return &ReferralHandler{Svc: svc}
}

// GetCodeHandler returns the caller's invite code, minting one on first use.
func (h *ReferralHandler) GetCodeHandler(c *gin.Context) {
	code, err := h.Svc.GetOrCreateCode(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, code)
}

// ApplyHandler redeems an invite code for the caller.
func (h *ReferralHandler) ApplyHandler(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	redemption, err := h.Svc.Apply(c.Request.Context(), input.Code, c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, redemption)
}
