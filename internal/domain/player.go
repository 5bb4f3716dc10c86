package domain

import "time"

// Player is the authoritative per-player ledger row plus its owned
// collections, shaped for direct serialization to the client.
type Player struct {
	ID        int64     `db:"id" json:"id"`
	TgID      int64     `db:"tg_id" json:"tg_id"`
	Username  string    `db:"username" json:"username"`
	FirstName string    `db:"first_name" json:"first_name"`
	PhotoURL  string    `db:"photo_url" json:"photo_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Coins         int64 `db:"coins" json:"coins"`
	TotalEarnings int64 `db:"total_earnings" json:"total_earnings"`
	XP            int64 `db:"xp" json:"xp"`
	Level         int   `db:"level" json:"level"`

	Energy    int64 `db:"energy" json:"energy"`
	MaxEnergy int64 `db:"max_energy" json:"max_energy"`

	CoinsPerTap  int64 `db:"coins_per_tap" json:"coins_per_tap"`
	CoinsPerHour int64 `db:"coins_per_hour" json:"coins_per_hour"`

	TotalTaps int64 `db:"total_taps" json:"total_taps"`
	DailyTaps int64 `db:"daily_taps" json:"daily_taps"`

	LastEnergyAt  time.Time  `db:"last_energy_at" json:"last_energy_at"`
	LastOfflineAt time.Time  `db:"last_offline_at" json:"last_offline_at"`
	LastTapDay    time.Time  `db:"last_tap_day" json:"-"`
	LastDailyAt   *time.Time `db:"last_daily_at" json:"last_daily_at,omitempty"`
	DailyStreak   int        `db:"daily_streak" json:"daily_streak"`

	// Referral chain, resolved once at creation and immutable after.
	ReferrerT1 *int64 `db:"referrer_t1" json:"referrer_t1,omitempty"`
	ReferrerT2 *int64 `db:"referrer_t2" json:"referrer_t2,omitempty"`
	ReferrerT3 *int64 `db:"referrer_t3" json:"referrer_t3,omitempty"`

	ReferralEarnT1 int64 `db:"referral_earn_t1" json:"referral_earn_t1"`
	ReferralEarnT2 int64 `db:"referral_earn_t2" json:"referral_earn_t2"`
	ReferralEarnT3 int64 `db:"referral_earn_t3" json:"referral_earn_t3"`

	Upgrades  map[string]int       `json:"upgrades"`
	Tasks     map[string]time.Time `json:"tasks"`
	Referrals []ReferralEntry      `json:"referrals"`
}

// ReferralEntry is a display row in a player's direct-invitee list.
type ReferralEntry struct {
	PlayerID  int64     `db:"player_id" json:"player_id"`
	Username  string    `db:"username" json:"username"`
	FirstName string    `db:"first_name" json:"first_name"`
	JoinedAt  time.Time `db:"joined_at" json:"joined_at"`
}

// ClientState is the slice of player state the client advances
// optimistically between flushes.
type ClientState struct {
	Coins  int64 `json:"coins"`
	XP     int64 `json:"xp"`
	Energy int64 `json:"energy"`
}
