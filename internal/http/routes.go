package http

import (
	"os"
	"strconv"
	"time"

	"tapminer/internal/config"
	"tapminer/internal/http/handlers"
	"tapminer/internal/http/middleware"
	"tapminer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the full API surface onto the gin engine.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string, notifier service.Notifier) {
	game := service.NewGameService(db, notifier)
	leaderboard := service.NewLeaderboardService(db, middleware.Client())

	h := handlers.NewHandler(db, game, leaderboard, handlers.HandlerConfig{
		BotToken:    cfg.BotToken,
		BotUsername: cfg.BotUsername,
		DevMode:     cfg.DevMode,
		MaxTapBatch: cfg.MaxTapBatch,
	})
	healthHandler := handlers.NewHealthHandler(db, version)

	// read API-wide limits from env, with safe defaults
	apiRateLimit := 30
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}
	authRateWindow := time.Minute

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Per-player action limits; taps get the wide budget, purchases and
	// claims a narrow one.
	actionWindow := time.Duration(cfg.TapRateWindow) * time.Second
	tapRL := middleware.PlayerRateLimit("tap", cfg.TapRateLimit, actionWindow)
	claimRL := middleware.PlayerRateLimit("claim", 20, actionWindow)

	api := r.Group("/api/v1")
	api.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Auth
	api.POST("/auth", middleware.RedisRateLimit(authRateLimit, authRateWindow), h.Auth)

	// Player state
	api.GET("/me", middleware.JWT(), h.Me)
	api.POST("/sync", middleware.JWT(), h.Sync)
	api.POST("/offline/settle", middleware.JWT(), h.SettleOffline)

	// Core loop
	api.POST("/tap", middleware.JWT(), tapRL, h.Tap)

	// Upgrades
	api.GET("/upgrades", middleware.JWT(), h.GetUpgrades)
	api.POST("/upgrades/:id/buy", middleware.JWT(), claimRL, h.BuyUpgrade)

	// Tasks
	api.GET("/tasks", middleware.JWT(), h.GetTasks)
	api.POST("/tasks/:id/claim", middleware.JWT(), claimRL, h.ClaimTask)

	// Daily reward
	api.GET("/daily", middleware.JWT(), h.GetDaily)
	api.POST("/daily/claim", middleware.JWT(), claimRL, h.ClaimDaily)

	// Referrals
	api.GET("/referrals", middleware.JWT(), h.GetReferrals)

	// Leaderboard (top 100 + player rank)
	api.GET("/leaderboard", h.GetLeaderboard)
	api.GET("/leaderboard/rank", middleware.JWT(), h.GetMyRank)

	// Dev tooling
	if cfg.DevMode {
		api.POST("/dev/reset", middleware.JWT(), h.DevReset)
	}

	// WebSocket session merge channel
	r.GET("/ws/sync", h.WSSync)
}
