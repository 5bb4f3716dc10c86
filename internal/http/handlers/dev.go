package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DevReset wipes the player's progress. Registered only in dev mode.
func (h *Handler) DevReset(c *gin.Context) {
	if !h.Cfg.DevMode {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.Game.Players().Reset(c.Request.Context(), playerID); err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
