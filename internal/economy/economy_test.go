package economy

import (
	"testing"
	"time"
)

func TestUpgradeCostMonotonic(t *testing.T) {
	for id, def := range Upgrades {
		prev := int64(-1)
		for lvl := 0; lvl < def.MaxLevel; lvl++ {
			cost := UpgradeCost(def, lvl)
			if cost <= prev {
				t.Fatalf("%s: cost at level %d = %d, not greater than %d", id, lvl, cost, prev)
			}
			prev = cost
		}
	}
}

func TestUpgradeCostFormula(t *testing.T) {
	def := UpgradeDef{BaseCost: 200, CostMultiplier: 1.5}
	tests := []struct {
		level int
		want  int64
	}{
		{0, 200},
		{1, 300},
		{2, 450},
		{3, 675},
	}
	for _, tc := range tests {
		if got := UpgradeCost(def, tc.level); got != tc.want {
			t.Fatalf("level %d: got %d want %d", tc.level, got, tc.want)
		}
	}
}

func TestLevelFromXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{1_999, 2},
		{2_000, 3},
		{1_500_000, 10},
		{99_999_999, 10},
	}
	for _, tc := range tests {
		if got := LevelFromXP(tc.xp); got != tc.want {
			t.Fatalf("xp=%d got level %d want %d", tc.xp, got, tc.want)
		}
	}
}

func TestLevelTableMonotonic(t *testing.T) {
	for i := 1; i < len(Levels); i++ {
		if Levels[i].Level <= Levels[i-1].Level {
			t.Fatalf("level numbers not increasing at index %d", i)
		}
		if Levels[i].XPRequired <= Levels[i-1].XPRequired {
			t.Fatalf("xp thresholds not increasing at index %d", i)
		}
	}
}

func TestLevelBonusesCumulative(t *testing.T) {
	l1 := LevelBonuses(1)
	if l1.TapBonus != 0 || l1.EnergyBonus != 0 || l1.PassiveMultiplier != 1.0 {
		t.Fatalf("level 1 must grant no bonuses, got %+v", l1)
	}

	l3 := LevelBonuses(3)
	wantTap := Levels[1].TapBonus + Levels[2].TapBonus
	if l3.TapBonus != wantTap {
		t.Fatalf("level 3 tap bonus = %d, want %d", l3.TapBonus, wantTap)
	}
	wantEnergy := Levels[1].EnergyBonus + Levels[2].EnergyBonus
	if l3.EnergyBonus != wantEnergy {
		t.Fatalf("level 3 energy bonus = %d, want %d", l3.EnergyBonus, wantEnergy)
	}
}

func TestComputeDerivedNewPlayer(t *testing.T) {
	d := ComputeDerived(0, nil)
	if d.Level != 1 {
		t.Fatalf("level = %d, want 1", d.Level)
	}
	if d.CoinsPerTap != 1 {
		t.Fatalf("coins per tap = %d, want 1", d.CoinsPerTap)
	}
	if d.CoinsPerHour != 0 {
		t.Fatalf("coins per hour = %d, want 0", d.CoinsPerHour)
	}
	if d.MaxEnergy != 1000 {
		t.Fatalf("max energy = %d, want 1000", d.MaxEnergy)
	}
}

func TestComputeDerivedWithTapUpgrade(t *testing.T) {
	// pickaxe gives +1 per level; 3 levels at player level 1 => 1 + 3 + 0
	d := ComputeDerived(0, map[string]int{"pickaxe": 3})
	if d.CoinsPerTap != 4 {
		t.Fatalf("coins per tap = %d, want 4", d.CoinsPerTap)
	}
}

func TestComputeDerivedPassiveMultiplier(t *testing.T) {
	// one drill level at player level 1: floor(100 * 1.0) = 100
	d := ComputeDerived(0, map[string]int{"drill": 1})
	if d.CoinsPerHour != 100 {
		t.Fatalf("coins per hour = %d, want 100", d.CoinsPerHour)
	}

	// at level 2 the multiplier kicks in: floor(100 * 1.05) = 105
	d = ComputeDerived(500, map[string]int{"drill": 1})
	if d.CoinsPerHour != 105 {
		t.Fatalf("coins per hour at level 2 = %d, want 105", d.CoinsPerHour)
	}
}

func TestDailyRewardSchedule(t *testing.T) {
	r0, completed := DailyRewardFor(0)
	if completed {
		t.Fatalf("day 1 must not be a completion day")
	}
	if r0.Coins != DailySchedule[0].Coins {
		t.Fatalf("day 1 coins = %d, want %d", r0.Coins, DailySchedule[0].Coins)
	}

	last := len(DailySchedule) - 1
	rLast, completed := DailyRewardFor(last)
	if !completed {
		t.Fatalf("final schedule day must complete the cycle")
	}
	want := DailySchedule[last].Coins + DailyCompletionBonus
	if rLast.Coins != want {
		t.Fatalf("completion coins = %d, want %d", rLast.Coins, want)
	}

	// streak wraps: day len(schedule) is day 1 again
	rWrap, completed := DailyRewardFor(len(DailySchedule))
	if completed || rWrap.Coins != DailySchedule[0].Coins {
		t.Fatalf("wrapped streak should restart the schedule")
	}
}

func TestDailyClaimWindows(t *testing.T) {
	now := time.Now()

	if !CanClaimDaily(nil, now) {
		t.Fatalf("never-claimed player must be able to claim")
	}

	recent := now.Add(-10 * time.Hour)
	if CanClaimDaily(&recent, now) {
		t.Fatalf("claim within 24h must be rejected")
	}

	within := now.Add(-30 * time.Hour)
	if !CanClaimDaily(&within, now) {
		t.Fatalf("claim after 30h must be allowed")
	}
	if ShouldResetStreak(&within, now) {
		t.Fatalf("30h is inside the grace window, streak must be preserved")
	}

	stale := now.Add(-50 * time.Hour)
	if !ShouldResetStreak(&stale, now) {
		t.Fatalf("50h must reset the streak")
	}
	if ShouldResetStreak(nil, now) {
		t.Fatalf("nil last claim must not reset")
	}
}

func TestReferralShare(t *testing.T) {
	// batch of 100 taps at 5 coins per tap = 500 total
	total := int64(500)
	if got := ReferralShare(total, 1); got != 50 {
		t.Fatalf("tier 1 share = %d, want 50", got)
	}
	if got := ReferralShare(total, 2); got != 25 {
		t.Fatalf("tier 2 share = %d, want 25", got)
	}
	if got := ReferralShare(total, 3); got != 12 {
		t.Fatalf("tier 3 share = %d, want 12", got)
	}
	if got := ReferralShare(total, 4); got != 0 {
		t.Fatalf("tier 4 share = %d, want 0", got)
	}
}

func TestReferralTierOrdering(t *testing.T) {
	if !(ReferralTier1Pct > ReferralTier2Pct && ReferralTier2Pct > ReferralTier3Pct) {
		t.Fatalf("tier percentages must strictly decrease")
	}
	if !(ReferralTier1Bonus > ReferralTier2Bonus && ReferralTier2Bonus > ReferralTier3Bonus) {
		t.Fatalf("tier signup bonuses must strictly decrease")
	}
}

func TestOfflineEarnings(t *testing.T) {
	if got := OfflineEarnings(1000, 30*time.Minute); got != 500 {
		t.Fatalf("30m at 1000/h = %d, want 500", got)
	}
	// capped at OfflineCapHours
	if got := OfflineEarnings(1000, 12*time.Hour); got != 3000 {
		t.Fatalf("capped earnings = %d, want 3000", got)
	}
	if got := OfflineEarnings(1000, -time.Minute); got != 0 {
		t.Fatalf("negative elapsed must earn 0, got %d", got)
	}
}

func TestRegenEnergy(t *testing.T) {
	if got := RegenEnergy(100, 1000, 50*time.Second); got != 150 {
		t.Fatalf("regen = %d, want 150", got)
	}
	if got := RegenEnergy(990, 1000, time.Hour); got != 1000 {
		t.Fatalf("regen must clamp to max, got %d", got)
	}
	if got := RegenEnergy(500, 1000, 0); got != 500 {
		t.Fatalf("zero elapsed must not change energy, got %d", got)
	}
}
