package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TapsApplied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_taps_applied_total",
			Help: "Total taps applied to the ledger",
		},
	)
	TapCoinsEarned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_tap_coins_total",
			Help: "Total coins credited for taps",
		},
	)
	ReferralCoinsShared = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_referral_coins_total",
			Help: "Total coins fanned out to referral ancestors",
		},
	)
	UpgradesPurchased = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_upgrades_purchased_total",
			Help: "Upgrades purchased, by upgrade id",
		},
		[]string{"upgrade"},
	)
	TasksClaimed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_tasks_claimed_total",
			Help: "Task rewards claimed, by task id",
		},
		[]string{"task"},
	)
	DailyClaimed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_daily_claimed_total",
			Help: "Daily rewards claimed",
		},
	)
	PlayersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "game_players_created_total",
			Help: "New player records created",
		},
	)
)

func init() {
	prometheus.MustRegister(
		TapsApplied,
		TapCoinsEarned,
		ReferralCoinsShared,
		UpgradesPurchased,
		TasksClaimed,
		DailyClaimed,
		PlayersCreated,
	)
}
