package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the top 100 players by total earnings.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	top, err := h.Leaderboard.GetTop(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": top,
		"metric":      "total_earnings",
	})
}

// GetMyRank returns the current player's rank.
func (h *Handler) GetMyRank(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rank, earnings, err := h.Leaderboard.GetPlayerRank(c.Request.Context(), playerID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"rank":           0,
			"total_earnings": 0,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rank":           rank,
		"total_earnings": earnings,
	})
}
