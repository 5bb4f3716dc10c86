package handlers

import (
	"errors"
	"net/http"

	"tapminer/internal/repository"
	"tapminer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds request-level limits for the handler.
type HandlerConfig struct {
	BotToken    string
	BotUsername string
	DevMode     bool
	MaxTapBatch int
}

type Handler struct {
	DB          *pgxpool.Pool
	Game        *service.GameService
	Leaderboard *service.LeaderboardService
	Cfg         HandlerConfig
}

func NewHandler(db *pgxpool.Pool, game *service.GameService, leaderboard *service.LeaderboardService, cfg HandlerConfig) *Handler {
	return &Handler{
		DB:          db,
		Game:        game,
		Leaderboard: leaderboard,
		Cfg:         cfg,
	}
}

// getPlayerID извлекает player_id из контекста Gin
func getPlayerID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	idVal, ok := c.Get("player_id")
	if !ok {
		return 0, false
	}
	switch v := idVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// respondGameError maps ledger sentinel errors to HTTP responses.
func respondGameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
	case errors.Is(err, repository.ErrInsufficientEnergy):
		c.JSON(http.StatusConflict, gin.H{"error": "not enough energy"})
	case errors.Is(err, repository.ErrInsufficientFunds):
		c.JSON(http.StatusConflict, gin.H{"error": "not enough coins"})
	case errors.Is(err, repository.ErrUpgradeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown upgrade"})
	case errors.Is(err, repository.ErrMaxLevelReached):
		c.JSON(http.StatusConflict, gin.H{"error": "upgrade at max level"})
	case errors.Is(err, repository.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown task"})
	case errors.Is(err, repository.ErrAlreadyClaimed):
		c.JSON(http.StatusConflict, gin.H{"error": "already claimed"})
	case errors.Is(err, repository.ErrAlreadyClaimedToday):
		c.JSON(http.StatusConflict, gin.H{"error": "already claimed today"})
	case errors.Is(err, repository.ErrRequirementNotMet):
		c.JSON(http.StatusConflict, gin.H{"error": "requirement not met"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
