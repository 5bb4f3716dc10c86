package domain

import "time"

// Ledger entry types.
const (
	EntryTap           = "tap"
	EntryReferralShare = "referral_share"
	EntryReferralBonus = "referral_bonus"
	EntryUpgrade       = "upgrade"
	EntryTaskReward    = "task_reward"
	EntryDailyReward   = "daily_reward"
	EntryOffline       = "offline_earnings"
)

// LedgerEntry records a single coin delta applied to a player.
type LedgerEntry struct {
	ID        int64          `db:"id" json:"id"`
	PlayerID  int64          `db:"player_id" json:"player_id"`
	Type      string         `db:"type" json:"type"`
	Amount    int64          `db:"amount" json:"amount"`
	Meta      map[string]any `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
