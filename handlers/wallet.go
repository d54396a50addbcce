package handlers

import (
	"net/http"

	"plenura/services/wallet"
	"plenura/utils"

	"github.com/gin-gonic/gin"
)

// WalletHandler exposes wallet balance, ledger, top-up and booking payment.
type WalletHandler struct {
	Svc wallet.WalletService
}

// NewWalletHandler constructs a WalletHandler.
func NewWalletHandler(svc wallet.WalletService) *WalletHandler {
	return &WalletHandler{Svc: svc}
}

// GetBalanceHandler returns the caller's wallet.
func (h *WalletHandler) GetBalanceHandler(c *gin.Context) {
	w, err := h.Svc.GetBalance(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// ListTransactionsHandler returns the caller's ledger, newest first.
func (h *WalletHandler) ListTransactionsHandler(c *gin.Context) {
	limit, offset := pagination(c)
	txs, err := h.Svc.ListTransactions(c.Request.Context(), c.GetString("userID"), limit, offset)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// TopUpHandler creates a Stripe PaymentIntent for a wallet top-up and returns
// its client secret.
func (h *WalletHandler) TopUpHandler(c *gin.Context) {
	var input struct {
		AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
		Currency    string `json:"currency"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	clientSecret, err := h.Svc.TopUpIntent(c.Request.Context(), c.GetString("userID"), input.AmountCents, input.Currency)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client_secret": clientSecret})
}

// PayBookingHandler pays for a booking out of the caller's wallet balance.
func (h *WalletHandler) PayBookingHandler(c *gin.Context) {
	if err := h.Svc.PayBooking(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paid": true})
}
