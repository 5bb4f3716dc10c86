package service

import (
	"tapminer/internal/domain"
)

// MergeSession merges a client's optimistic local state into a fresh
// authoritative snapshot. Coins and xp take the max so an in-flight local
// batch is never visibly rolled back; everything else stays server-side
// (energy, upgrades and claims are not safely mergeable by a max rule).
func MergeSession(local domain.ClientState, server *domain.Player) *domain.Player {
	merged := *server
	if local.Coins > merged.Coins {
		merged.Coins = local.Coins
	}
	if local.XP > merged.XP {
		merged.XP = local.XP
	}
	return &merged
}

// OfflineSettlement is the settled result of an absence: earned passive
// coins and the regenerated energy level.
type OfflineSettlement struct {
	Earnings int64 `json:"earnings"`
	Energy   int64 `json:"energy"`
}
