package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me returns the authoritative player snapshot.
func (h *Handler) Me(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	player, err := h.Game.Players().GetByID(c.Request.Context(), playerID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"player": player})
}
