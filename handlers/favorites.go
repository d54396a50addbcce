package handlers

import (
	"net/http"

	"plenura/services/favorites"
	"plenura/utils"

	"github.com/gin-gonic/gin"
)

// FavoritesHandler exposes client favorites.
type FavoritesHandler struct {
	Svc favorites.FavoritesService
}

// NewFavoritesHandler constructs a FavoritesHandler.
func NewFavoritesHandler(svc favorites.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{Svc: svc}
}

// AddHandler saves a therapist to the caller's favorites.
func (h *FavoritesHandler) AddHandler(c *gin.Context) {
	favorite, err := h.Svc.Add(c.Request.Context(), c.GetString("userID"), c.Param("therapistID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

// RemoveHandler unsaves a therapist.
func (h *FavoritesHandler) RemoveHandler(c *gin.Context) {
	if err := h.Svc.Remove(c.Request.Context(), c.GetString("userID"), c.Param("therapistID")); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// ListHandler lists the caller's favorites.
func (h *FavoritesHandler) ListHandler(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": list})
}
