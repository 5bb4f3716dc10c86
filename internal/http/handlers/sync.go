package handlers

import (
	"net/http"

	"tapminer/internal/domain"

	"github.com/gin-gonic/gin"
)

// Sync merges the client's optimistic counters into the authoritative
// snapshot and returns the merge result. The ledger row is not changed;
// the client is expected to flush pending taps through /tap.
func (h *Handler) Sync(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var local domain.ClientState
	if err := c.BindJSON(&local); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	merged, err := h.Game.Sync(c.Request.Context(), playerID, local)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"player": merged})
}

// SettleOffline credits capped passive earnings and regenerated energy
// for the time since the last visit.
func (h *Handler) SettleOffline(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	settlement, player, err := h.Game.SettleOffline(c.Request.Context(), playerID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"earnings": settlement.Earnings,
		"energy":   settlement.Energy,
		"player":   player,
	})
}
