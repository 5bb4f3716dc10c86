package handlers

import (
	"net/http"

	"tapminer/internal/economy"

	"github.com/gin-gonic/gin"
)

// GetUpgrades returns the catalog together with the player's owned
// levels and the cost of each next level.
func (h *Handler) GetUpgrades(c *gin.Context) {
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

	type upgradeView struct {
		economy.UpgradeDef
		OwnedLevel int   `json:"owned_level"`
		NextCost   int64 `json:"next_cost"`
		Maxed      bool  `json:"maxed"`
	}

	out := make([]upgradeView, 0, len(economy.Upgrades))
	for _, def := range economy.Upgrades {
		owned := player.Upgrades[def.ID]
		view := upgradeView{UpgradeDef: def, OwnedLevel: owned}
		if owned >= def.MaxLevel {
			view.Maxed = true
		} else {
			view.NextCost = economy.UpgradeCost(def, owned)
		}
		out = append(out, view)
	}

	c.JSON(http.StatusOK, gin.H{"upgrades": out})
}

// BuyUpgrade purchases the next level of the upgrade in the path param.
func (h *Handler) BuyUpgrade(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	upgradeID := c.Param("id")
	if upgradeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upgrade id required"})
		return
	}

	player, err := h.Game.PurchaseUpgrade(c.Request.Context(), playerID, upgradeID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"player": player})
}
