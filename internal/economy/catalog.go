package economy

// BonusType selects which derived rate an upgrade feeds.
type BonusType string

const (
	BonusTap    BonusType = "tap"
	BonusHour   BonusType = "hour"
	BonusEnergy BonusType = "energy"
)

// UpgradeDef is a static upgrade definition.
type UpgradeDef struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	BonusType      BonusType `json:"bonus_type"`
	BaseCost       int64     `json:"base_cost"`
	CostMultiplier float64   `json:"cost_multiplier"`
	BonusValue     int64     `json:"bonus_value"`
	MaxLevel       int       `json:"max_level"`
}

// Upgrades is the purchasable upgrade catalog.
var Upgrades = map[string]UpgradeDef{
	"pickaxe":  {ID: "pickaxe", Name: "Reinforced Pickaxe", BonusType: BonusTap, BaseCost: 200, CostMultiplier: 1.5, BonusValue: 1, MaxLevel: 20},
	"glove":    {ID: "glove", Name: "Power Glove", BonusType: BonusTap, BaseCost: 1500, CostMultiplier: 1.6, BonusValue: 3, MaxLevel: 15},
	"drill":    {ID: "drill", Name: "Auto Drill", BonusType: BonusHour, BaseCost: 500, CostMultiplier: 1.45, BonusValue: 100, MaxLevel: 25},
	"conveyor": {ID: "conveyor", Name: "Ore Conveyor", BonusType: BonusHour, BaseCost: 4000, CostMultiplier: 1.5, BonusValue: 450, MaxLevel: 20},
	"battery":  {ID: "battery", Name: "Energy Cell", BonusType: BonusEnergy, BaseCost: 300, CostMultiplier: 1.4, BonusValue: 100, MaxLevel: 15},
	"exosuit":  {ID: "exosuit", Name: "Exosuit", BonusType: BonusEnergy, BaseCost: 2500, CostMultiplier: 1.55, BonusValue: 350, MaxLevel: 10},
}

// LevelRow is one threshold in the ordered level table. TapBonus and
// EnergyBonus are additive deltas granted at that level; PassiveMultiplier
// is a multiplicative factor. Cumulative bonuses are the sum (resp. product)
// of all rows up to and including the player's level.
type LevelRow struct {
	Level             int     `json:"level"`
	XPRequired        int64   `json:"xp_required"`
	TapBonus          int64   `json:"tap_bonus"`
	EnergyBonus       int64   `json:"energy_bonus"`
	PassiveMultiplier float64 `json:"passive_multiplier"`
}

// Levels must stay sorted ascending by both Level and XPRequired.
var Levels = []LevelRow{
	{Level: 1, XPRequired: 0, TapBonus: 0, EnergyBonus: 0, PassiveMultiplier: 1.0},
	{Level: 2, XPRequired: 500, TapBonus: 1, EnergyBonus: 250, PassiveMultiplier: 1.05},
	{Level: 3, XPRequired: 2_000, TapBonus: 1, EnergyBonus: 250, PassiveMultiplier: 1.05},
	{Level: 4, XPRequired: 6_000, TapBonus: 2, EnergyBonus: 500, PassiveMultiplier: 1.1},
	{Level: 5, XPRequired: 15_000, TapBonus: 2, EnergyBonus: 500, PassiveMultiplier: 1.1},
	{Level: 6, XPRequired: 40_000, TapBonus: 3, EnergyBonus: 750, PassiveMultiplier: 1.1},
	{Level: 7, XPRequired: 100_000, TapBonus: 3, EnergyBonus: 750, PassiveMultiplier: 1.15},
	{Level: 8, XPRequired: 250_000, TapBonus: 4, EnergyBonus: 1_000, PassiveMultiplier: 1.15},
	{Level: 9, XPRequired: 600_000, TapBonus: 5, EnergyBonus: 1_500, PassiveMultiplier: 1.2},
	{Level: 10, XPRequired: 1_500_000, TapBonus: 6, EnergyBonus: 2_000, PassiveMultiplier: 1.25},
}

// DailyReward is one slot of the rotating daily login schedule.
// Completion marks the final slot; claiming it wraps the streak.
type DailyReward struct {
	Coins      int64 `json:"coins"`
	XP         int64 `json:"xp"`
	Completion bool  `json:"completion"`
}

var DailySchedule = []DailyReward{
	{Coins: 500, XP: 50},
	{Coins: 1_000, XP: 100},
	{Coins: 1_500, XP: 150},
	{Coins: 2_500, XP: 250},
	{Coins: 4_000, XP: 400},
	{Coins: 6_000, XP: 600},
	{Coins: 10_000, XP: 1_000, Completion: true},
}

// TaskType selects which player counter a task requirement checks.
type TaskType string

const (
	TaskReferrals TaskType = "referrals"
	TaskLevel     TaskType = "level"
	TaskTaps      TaskType = "taps"
)

// TaskDef is a static claimable task definition.
type TaskDef struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Type        TaskType `json:"type"`
	Target      int64    `json:"target"`
	RewardCoins int64    `json:"reward_coins"`
	RewardXP    int64    `json:"reward_xp"`
}

// Tasks is the claimable task catalog.
var Tasks = map[string]TaskDef{
	"first_steps":  {ID: "first_steps", Title: "Make 100 taps", Type: TaskTaps, Target: 100, RewardCoins: 500, RewardXP: 100},
	"tap_machine":  {ID: "tap_machine", Title: "Make 10 000 taps", Type: TaskTaps, Target: 10_000, RewardCoins: 10_000, RewardXP: 1_000},
	"level_5":      {ID: "level_5", Title: "Reach level 5", Type: TaskLevel, Target: 5, RewardCoins: 5_000, RewardXP: 500},
	"level_10":     {ID: "level_10", Title: "Reach level 10", Type: TaskLevel, Target: 10, RewardCoins: 25_000, RewardXP: 2_000},
	"bring_friend": {ID: "bring_friend", Title: "Invite a friend", Type: TaskReferrals, Target: 1, RewardCoins: 2_000, RewardXP: 200},
	"crew_leader":  {ID: "crew_leader", Title: "Invite 10 friends", Type: TaskReferrals, Target: 10, RewardCoins: 20_000, RewardXP: 1_500},
}

// Core economy constants.
const (
	BaseCoinsPerTap = 1
	BaseMaxEnergy   = 1000

	XPPerTap  = 1
	UpgradeXP = 50 // xp award per purchase = UpgradeXP * new owned level

	EnergyPerTap         = 1
	EnergyRegenPerSecond = 1

	OfflineCapHours = 3.0

	DailyClaimCooldownHours = 24
	DailyStreakResetHours   = 48

	DailyCompletionBonus = 15_000
)

// Referral economics. Percentages apply to batch-tap earnings; signup
// bonuses are flat coins credited once at referral resolution.
const (
	ReferralTier1Pct = 0.10
	ReferralTier2Pct = 0.05
	ReferralTier3Pct = 0.025

	ReferralTier1Bonus = 2_500
	ReferralTier2Bonus = 1_000
	ReferralTier3Bonus = 500

	ReferralMaxDepth = 3
)
