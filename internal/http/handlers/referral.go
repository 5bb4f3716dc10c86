package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetReferrals returns the player's invite link, direct referrals and
// cumulative earnings from each tier.
func (h *Handler) GetReferrals(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	player, err := h.Game.Players().GetByID(ctx, playerID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	list, err := h.Game.Referrals().ListByReferrer(ctx, playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	link := fmt.Sprintf("https://t.me/%s?start=ref_%d", h.Cfg.BotUsername, player.TgID)

	c.JSON(http.StatusOK, gin.H{
		"invite_link": link,
		"referrals":   list,
		"earnings": gin.H{
			"tier1": player.ReferralEarnT1,
			"tier2": player.ReferralEarnT2,
			"tier3": player.ReferralEarnT3,
		},
	})
}
