package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"tapminer/internal/economy"
	"tapminer/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func openDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

func createPlayer(t *testing.T, repo *repository.PlayerRepository, tgID int64) int64 {
	t.Helper()
	p, err := repo.Create(context.Background(), tgID, "", "Miner", "")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	t.Cleanup(func() { _ = repo.Reset(context.Background(), p.ID) })
	return p.ID
}

func TestPlayerRepository_TapBatch(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlayerRepository(db)
	ctx := context.Background()

	id := createPlayer(t, repo, time.Now().UnixNano())

	p, err := repo.Tap(ctx, id, 10, 1, time.Now())
	if err != nil {
		t.Fatalf("tap: %v", err)
	}
	if p.Coins != 10 {
		t.Fatalf("coins = %d, want 10", p.Coins)
	}
	if p.TotalTaps != 10 || p.DailyTaps != 10 {
		t.Fatalf("taps = %d/%d, want 10/10", p.TotalTaps, p.DailyTaps)
	}
	if p.Energy != p.MaxEnergy-10 {
		t.Fatalf("energy = %d, want %d", p.Energy, p.MaxEnergy-10)
	}
}

func TestPlayerRepository_TapRejectsWhenDrained(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlayerRepository(db)
	ctx := context.Background()

	id := createPlayer(t, repo, time.Now().UnixNano())

	// drain the whole energy pool in one batch, then tap again before
	// any regeneration can happen
	now := time.Now()
	if _, err := repo.Tap(ctx, id, economy.BaseMaxEnergy, 1, now); err != nil {
		t.Fatalf("drain tap: %v", err)
	}
	_, err := repo.Tap(ctx, id, 1, 1, now)
	if !errors.Is(err, repository.ErrInsufficientEnergy) {
		t.Fatalf("err = %v, want ErrInsufficientEnergy", err)
	}
}

func TestPlayerRepository_PurchaseUpgradeRecomputesRates(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlayerRepository(db)
	ctx := context.Background()

	id := createPlayer(t, repo, time.Now().UnixNano())

	// fund the purchase
	if _, err := db.Exec(ctx, `UPDATE players SET coins = 1000 WHERE id = $1`, id); err != nil {
		t.Fatalf("fund: %v", err)
	}

	p, err := repo.PurchaseUpgrade(ctx, id, "pickaxe")
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if p.Upgrades["pickaxe"] != 1 {
		t.Fatalf("owned level = %d, want 1", p.Upgrades["pickaxe"])
	}
	if p.Coins != 1000-200 {
		t.Fatalf("coins = %d, want 800", p.Coins)
	}
	if p.CoinsPerTap != 2 {
		t.Fatalf("coins_per_tap = %d, want 2 after pickaxe", p.CoinsPerTap)
	}

	_, err = repo.PurchaseUpgrade(ctx, id, "conveyor")
	if !errors.Is(err, repository.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestPlayerRepository_ClaimTaskOnce(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlayerRepository(db)
	ctx := context.Background()

	id := createPlayer(t, repo, time.Now().UnixNano())

	if _, err := repo.Tap(ctx, id, 100, 1, time.Now()); err != nil {
		t.Fatalf("tap: %v", err)
	}

	p, err := repo.ClaimTask(ctx, id, "first_steps", time.Now())
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if _, ok := p.Tasks["first_steps"]; !ok {
		t.Fatalf("task not recorded as claimed")
	}

	_, err = repo.ClaimTask(ctx, id, "first_steps", time.Now())
	if !errors.Is(err, repository.ErrAlreadyClaimed) {
		t.Fatalf("err = %v, want ErrAlreadyClaimed", err)
	}

	_, err = repo.ClaimTask(ctx, id, "tap_machine", time.Now())
	if !errors.Is(err, repository.ErrRequirementNotMet) {
		t.Fatalf("err = %v, want ErrRequirementNotMet", err)
	}
}

func TestPlayerRepository_ClaimTaskConcurrentDuplicate(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlayerRepository(db)
	ctx := context.Background()

	id := createPlayer(t, repo, time.Now().UnixNano())

	if _, err := repo.Tap(ctx, id, 100, 1, time.Now()); err != nil {
		t.Fatalf("tap: %v", err)
	}

	// two racing claims: exactly one may win
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ClaimTask(ctx, id, "first_steps", time.Now())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var won, dup int
	for err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, repository.ErrAlreadyClaimed):
			dup++
		default:
			t.Fatalf("unexpected claim error: %v", err)
		}
	}
	if won != 1 || dup != 1 {
		t.Fatalf("claims = %d won / %d duplicate, want 1/1", won, dup)
	}

	p, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	want := int64(100) + economy.Tasks["first_steps"].RewardCoins
	if p.Coins != want {
		t.Fatalf("coins = %d, want %d (reward credited exactly once)", p.Coins, want)
	}
}

func TestPlayerRepository_CreateConcurrentFirstContact(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlayerRepository(db)
	ctx := context.Background()

	tgID := time.Now().UnixNano()

	ids := make(chan int64, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := repo.Create(ctx, tgID, "racer", "Racer", "")
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			ids <- p.ID
		}()
	}
	wg.Wait()
	close(ids)

	var got []int64
	for id := range ids {
		got = append(got, id)
	}
	if len(got) != 2 {
		t.Fatalf("expected both creates to return a player")
	}
	if got[0] != got[1] {
		t.Fatalf("creates returned different rows: %d vs %d", got[0], got[1])
	}
	t.Cleanup(func() { _ = repo.Reset(context.Background(), got[0]) })
}

func TestPlayerRepository_CreditOfflineKeepsSpentEnergy(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlayerRepository(db)
	ctx := context.Background()

	id := createPlayer(t, repo, time.Now().UnixNano())

	// spend energy, then settle at the same instant: the spend must not
	// come back
	now := time.Now()
	if _, err := repo.Tap(ctx, id, 100, 1, now); err != nil {
		t.Fatalf("tap: %v", err)
	}

	earnings, energy, p, err := repo.CreditOffline(ctx, id, now)
	if err != nil {
		t.Fatalf("credit offline: %v", err)
	}
	if earnings != 0 {
		t.Fatalf("earnings = %d, want 0 with zero coins_per_hour", earnings)
	}
	if energy != p.MaxEnergy-100 {
		t.Fatalf("energy = %d, want %d (spend must not be refunded)", energy, p.MaxEnergy-100)
	}
	if p.Energy != p.MaxEnergy-100 {
		t.Fatalf("persisted energy = %d, want %d", p.Energy, p.MaxEnergy-100)
	}
}

func TestPlayerRepository_CreditOfflineSettlesWindow(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlayerRepository(db)
	ctx := context.Background()

	id := createPlayer(t, repo, time.Now().UnixNano())

	// 30 minutes of absence at 1200/h
	past := time.Now().Add(-30 * time.Minute)
	_, err := db.Exec(ctx,
		`UPDATE players SET coins_per_hour = 1200, energy = 100,
		     last_offline_at = $1, last_energy_at = $1
		 WHERE id = $2`, past, id)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	earnings, energy, p, err := repo.CreditOffline(ctx, id, past.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("credit offline: %v", err)
	}
	if earnings != 600 {
		t.Fatalf("earnings = %d, want 600", earnings)
	}
	if energy != p.MaxEnergy {
		t.Fatalf("energy = %d, want full regen to %d after 30 minutes", energy, p.MaxEnergy)
	}
	if p.Coins != 600 {
		t.Fatalf("coins = %d, want 600", p.Coins)
	}
}

func TestPlayerRepository_ClaimDailyWindow(t *testing.T) {
	db := openDB(t)
	repo := repository.NewPlayerRepository(db)
	ctx := context.Background()

	id := createPlayer(t, repo, time.Now().UnixNano())

	reward, streak, _, err := repo.ClaimDaily(ctx, id, time.Now())
	if err != nil {
		t.Fatalf("claim daily: %v", err)
	}
	if streak != 1 {
		t.Fatalf("streak = %d, want 1", streak)
	}
	if reward.Coins != economy.DailySchedule[0].Coins {
		t.Fatalf("reward = %d, want %d", reward.Coins, economy.DailySchedule[0].Coins)
	}

	_, _, _, err = repo.ClaimDaily(ctx, id, time.Now())
	if !errors.Is(err, repository.ErrAlreadyClaimedToday) {
		t.Fatalf("err = %v, want ErrAlreadyClaimedToday", err)
	}
}

func TestReferralRepository_ChainFanOut(t *testing.T) {
	db := openDB(t)
	players := repository.NewPlayerRepository(db)
	referrals := repository.NewReferralRepository(db)
	ctx := context.Background()

	base := time.Now().UnixNano()

	// grandpa <- parent <- child chain, then a new player referred by child
	grandpaID := createPlayer(t, players, base+1)
	parentID := createPlayer(t, players, base+2)
	childID := createPlayer(t, players, base+3)
	newID := createPlayer(t, players, base+4)

	if err := referrals.ResolveChain(ctx, parentID, base+1); err != nil {
		t.Fatalf("resolve parent: %v", err)
	}
	if err := referrals.ResolveChain(ctx, childID, base+2); err != nil {
		t.Fatalf("resolve child: %v", err)
	}
	if err := referrals.ResolveChain(ctx, newID, base+3); err != nil {
		t.Fatalf("resolve new: %v", err)
	}

	p, err := players.GetByID(ctx, newID)
	if err != nil {
		t.Fatalf("get new player: %v", err)
	}
	if p.ReferrerT1 == nil || *p.ReferrerT1 != childID {
		t.Fatalf("tier1 = %v, want %d", p.ReferrerT1, childID)
	}
	if p.ReferrerT2 == nil || *p.ReferrerT2 != parentID {
		t.Fatalf("tier2 = %v, want %d", p.ReferrerT2, parentID)
	}
	if p.ReferrerT3 == nil || *p.ReferrerT3 != grandpaID {
		t.Fatalf("tier3 = %v, want %d", p.ReferrerT3, grandpaID)
	}

	// signup bonuses landed per tier
	child, _ := players.GetByID(ctx, childID)
	if child.ReferralEarnT1 < economy.ReferralTier1Bonus {
		t.Fatalf("child tier1 earn = %d, want >= %d", child.ReferralEarnT1, economy.ReferralTier1Bonus)
	}

	// a second resolve attempt must not re-credit
	before := child.Coins
	if err := referrals.ResolveChain(ctx, newID, base+1); err != nil {
		t.Fatalf("repeat resolve: %v", err)
	}
	child, _ = players.GetByID(ctx, childID)
	if child.Coins != before {
		t.Fatalf("repeat resolve changed balance: %d -> %d", before, child.Coins)
	}

	// batch taps from the new player fan shares up all three tiers
	if _, err := players.Tap(ctx, newID, 100, 10, time.Now()); err != nil {
		t.Fatalf("batch tap: %v", err)
	}
	child, _ = players.GetByID(ctx, childID)
	wantShare := economy.ReferralShare(1000, 1)
	if child.ReferralEarnT1 != economy.ReferralTier1Bonus+wantShare {
		t.Fatalf("tier1 earn after batch = %d, want %d", child.ReferralEarnT1, economy.ReferralTier1Bonus+wantShare)
	}
}
