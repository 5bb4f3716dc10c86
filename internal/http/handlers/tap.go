package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TapRequest struct {
	Count int `json:"count"`
}

// Tap applies a batch of taps. Count 0 is treated as a single tap so
// old clients that omit the field keep working.
func (h *Handler) Tap(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req TapRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if req.Count == 0 {
		req.Count = 1
	}
	if req.Count < 1 || req.Count > h.Cfg.MaxTapBatch {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tap count"})
		return
	}

	player, err := h.Game.Tap(c.Request.Context(), playerID, req.Count)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"player": player})
}
