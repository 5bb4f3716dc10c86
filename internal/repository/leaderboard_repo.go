package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LeaderboardEntry is one ranked row, ordered by lifetime earnings.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	PlayerID      int64  `json:"player_id"`
	Username      string `json:"username"`
	FirstName     string `json:"first_name"`
	Level         int    `json:"level"`
	TotalEarnings int64  `json:"total_earnings"`
}

type LeaderboardRepository struct {
	db *pgxpool.Pool
}

func NewLeaderboardRepository(db *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// GetTop returns the top players by lifetime earnings.
func (r *LeaderboardRepository) GetTop(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, COALESCE(username, ''), COALESCE(first_name, ''), level, total_earnings
		FROM players
		ORDER BY total_earnings DESC, id
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.Username, &e.FirstName, &e.Level, &e.TotalEarnings); err != nil {
			return nil, err
		}
		e.Rank = rank
		res = append(res, e)
		rank++
	}
	return res, nil
}

// GetPlayerRank returns a player's rank and lifetime earnings.
func (r *LeaderboardRepository) GetPlayerRank(ctx context.Context, playerID int64) (int, int64, error) {
	var rank int
	var earnings int64
	err := r.db.QueryRow(ctx, `
		WITH ranked AS (
			SELECT id, total_earnings,
			       RANK() OVER (ORDER BY total_earnings DESC) AS rank
			FROM players
		)
		SELECT rank, total_earnings FROM ranked WHERE id = $1
	`, playerID).Scan(&rank, &earnings)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrPlayerNotFound
		}
		return 0, 0, err
	}
	return rank, earnings, nil
}
