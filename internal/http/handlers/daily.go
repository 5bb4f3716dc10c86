package handlers

import (
	"net/http"
	"time"

	"tapminer/internal/economy"

	"github.com/gin-gonic/gin"
)

// GetDaily returns the reward schedule and the player's claim window.
func (h *Handler) GetDaily(c *gin.Context) {
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

	now := time.Now()
	streak := player.DailyStreak
	if economy.ShouldResetStreak(player.LastDailyAt, now) {
		streak = 0
	}
	next, _ := economy.DailyRewardFor(streak)

	c.JSON(http.StatusOK, gin.H{
		"schedule":    economy.DailySchedule,
		"streak":      streak,
		"can_claim":   economy.CanClaimDaily(player.LastDailyAt, now),
		"next_reward": next,
	})
}

// ClaimDaily claims the daily login reward and advances the streak.
func (h *Handler) ClaimDaily(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reward, streak, player, err := h.Game.ClaimDaily(c.Request.Context(), playerID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reward": reward,
		"streak": streak,
		"player": player,
	})
}
