package economy

import (
	"math"
	"time"
)

// UpgradeCost returns the price of the next level of an upgrade given the
// currently owned level. Strictly increasing in ownedLevel.
func UpgradeCost(def UpgradeDef, ownedLevel int) int64 {
	return int64(math.Floor(float64(def.BaseCost) * math.Pow(def.CostMultiplier, float64(ownedLevel))))
}

// TotalBonus sums bonusValue*ownedLevel over owned upgrades of the given type.
func TotalBonus(owned map[string]int, bonusType BonusType) int64 {
	var total int64
	for id, level := range owned {
		def, ok := Upgrades[id]
		if !ok || def.BonusType != bonusType {
			continue
		}
		total += def.BonusValue * int64(level)
	}
	return total
}

// LevelFromXP returns the largest level whose threshold is covered by xp.
// XP below the first threshold yields level 1.
func LevelFromXP(xp int64) int {
	level := 1
	for _, row := range Levels {
		if xp >= row.XPRequired {
			level = row.Level
		} else {
			break
		}
	}
	return level
}

// LevelBonusSet is the cumulative bonus granted by all level thresholds
// up to and including a level.
type LevelBonusSet struct {
	TapBonus          int64
	EnergyBonus       int64
	PassiveMultiplier float64
}

// LevelBonuses accumulates additive tap/energy bonuses and the passive
// multiplier product over all rows <= level.
func LevelBonuses(level int) LevelBonusSet {
	set := LevelBonusSet{PassiveMultiplier: 1.0}
	for _, row := range Levels {
		if row.Level > level {
			break
		}
		set.TapBonus += row.TapBonus
		set.EnergyBonus += row.EnergyBonus
		set.PassiveMultiplier *= row.PassiveMultiplier
	}
	return set
}

// DerivedStats holds every field the reconciler persists together.
type DerivedStats struct {
	Level        int
	CoinsPerTap  int64
	CoinsPerHour int64
	MaxEnergy    int64
}

// ComputeDerived recomputes level and the three rates from xp and owned
// upgrades. This is the single formula both the reconciler and player
// creation use; nothing else may derive these fields.
func ComputeDerived(xp int64, owned map[string]int) DerivedStats {
	level := LevelFromXP(xp)
	lb := LevelBonuses(level)

	return DerivedStats{
		Level:        level,
		CoinsPerTap:  BaseCoinsPerTap + TotalBonus(owned, BonusTap) + lb.TapBonus,
		CoinsPerHour: int64(math.Floor(float64(TotalBonus(owned, BonusHour)) * lb.PassiveMultiplier)),
		MaxEnergy:    BaseMaxEnergy + TotalBonus(owned, BonusEnergy) + lb.EnergyBonus,
	}
}

// DailyRewardFor returns the schedule slot for a pre-increment streak.
// The completion bonus applies exactly on the slot that wraps the schedule.
func DailyRewardFor(streak int) (DailyReward, bool) {
	reward := DailySchedule[streak%len(DailySchedule)]
	if reward.Completion {
		reward.Coins += DailyCompletionBonus
		return reward, true
	}
	return reward, false
}

// CanClaimDaily reports whether a daily reward is claimable: never claimed,
// or at least the cooldown has elapsed.
func CanClaimDaily(lastClaim *time.Time, now time.Time) bool {
	if lastClaim == nil {
		return true
	}
	return now.Sub(*lastClaim) >= DailyClaimCooldownHours*time.Hour
}

// ShouldResetStreak reports whether the streak grace window has elapsed.
// Between 24h and 48h the streak is preserved.
func ShouldResetStreak(lastClaim *time.Time, now time.Time) bool {
	if lastClaim == nil {
		return false
	}
	return now.Sub(*lastClaim) >= DailyStreakResetHours*time.Hour
}

// ReferralShare returns the coins owed to an ancestor tier (1-based) from
// a batch-tap total. Unknown tiers earn nothing.
func ReferralShare(totalCoins int64, tier int) int64 {
	var pct float64
	switch tier {
	case 1:
		pct = ReferralTier1Pct
	case 2:
		pct = ReferralTier2Pct
	case 3:
		pct = ReferralTier3Pct
	default:
		return 0
	}
	return int64(math.Floor(float64(totalCoins) * pct))
}

// ReferralSignupBonus returns the flat coins credited to an ancestor tier
// when a referred player is created.
func ReferralSignupBonus(tier int) int64 {
	switch tier {
	case 1:
		return ReferralTier1Bonus
	case 2:
		return ReferralTier2Bonus
	case 3:
		return ReferralTier3Bonus
	}
	return 0
}

// OfflineEarnings projects passive income for an absence, capped at
// OfflineCapHours.
func OfflineEarnings(coinsPerHour int64, elapsed time.Duration) int64 {
	hours := elapsed.Hours()
	if hours <= 0 {
		return 0
	}
	if hours > OfflineCapHours {
		hours = OfflineCapHours
	}
	return int64(math.Floor(hours * float64(coinsPerHour)))
}

// RegenEnergy restores energy for elapsed time, clamped to maxEnergy.
func RegenEnergy(current, maxEnergy int64, elapsed time.Duration) int64 {
	if elapsed <= 0 {
		return clampEnergy(current, maxEnergy)
	}
	restored := current + int64(elapsed.Seconds())*EnergyRegenPerSecond
	return clampEnergy(restored, maxEnergy)
}

func clampEnergy(energy, maxEnergy int64) int64 {
	if energy > maxEnergy {
		return maxEnergy
	}
	if energy < 0 {
		return 0
	}
	return energy
}
