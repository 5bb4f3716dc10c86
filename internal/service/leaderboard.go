package service

import (
	"context"
	"encoding/json"
	"time"

	"tapminer/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
)

const leaderboardCacheKey = "leaderboard:top"
const leaderboardCacheTTL = 30 * time.Second

// LeaderboardService serves the ranking read path with a short-lived
// Redis snapshot cache in front of the window query. Cache failures are
// fail-open: the database answer is always available.
type LeaderboardService struct {
	repo  *repository.LeaderboardRepository
	cache *redis.Client
}

func NewLeaderboardService(db *pgxpool.Pool, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		repo:  repository.NewLeaderboardRepository(db),
		cache: cache,
	}
}

// GetTop returns the top players, from cache when fresh.
func (s *LeaderboardService) GetTop(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, leaderboardCacheKey).Bytes(); err == nil {
			var entries []repository.LeaderboardEntry
			if json.Unmarshal(raw, &entries) == nil && len(entries) >= limit {
				return entries[:limit], nil
			}
		}
	}

	entries, err := s.repo.GetTop(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(entries); err == nil {
			s.cache.Set(ctx, leaderboardCacheKey, raw, leaderboardCacheTTL)
		}
	}

	return entries, nil
}

// GetPlayerRank returns a player's rank; ranks are not cached since the
// per-player window query is cheap and always fresh.
func (s *LeaderboardService) GetPlayerRank(ctx context.Context, playerID int64) (int, int64, error) {
	return s.repo.GetPlayerRank(ctx, playerID)
}
