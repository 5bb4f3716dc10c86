package handlers

import (
	"net/http"

	"tapminer/internal/economy"

	"github.com/gin-gonic/gin"
)

// GetTasks returns the task catalog annotated with claim state and
// current progress toward each requirement.
func (h *Handler) GetTasks(c *gin.Context) {
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

	referralCount, err := h.Game.Referrals().CountByReferrer(ctx, playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	type taskView struct {
		economy.TaskDef
		Progress int64 `json:"progress"`
		Claimed  bool  `json:"claimed"`
	}

	out := make([]taskView, 0, len(economy.Tasks))
	for _, def := range economy.Tasks {
		view := taskView{TaskDef: def}
		switch def.Type {
		case economy.TaskReferrals:
			view.Progress = referralCount
		case economy.TaskLevel:
			view.Progress = int64(player.Level)
		case economy.TaskTaps:
			view.Progress = player.TotalTaps
		}
		if _, claimed := player.Tasks[def.ID]; claimed {
			view.Claimed = true
		}
		out = append(out, view)
	}

	c.JSON(http.StatusOK, gin.H{"tasks": out})
}

// ClaimTask claims a one-time task reward.
func (h *Handler) ClaimTask(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task id required"})
		return
	}

	player, err := h.Game.ClaimTask(c.Request.Context(), playerID, taskID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"player": player})
}
