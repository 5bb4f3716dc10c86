package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"tapminer/internal/domain"
	"tapminer/internal/economy"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const playerColumns = `id, tg_id, COALESCE(username, ''), COALESCE(first_name, ''), COALESCE(photo_url, ''),
	coins, total_earnings, xp, level, energy, max_energy, coins_per_tap, coins_per_hour,
	total_taps, daily_taps, last_energy_at, last_offline_at, last_tap_day, last_daily_at, daily_streak,
	referrer_t1, referrer_t2, referrer_t3, referral_earn_t1, referral_earn_t2, referral_earn_t3, created_at`

// PlayerRepository is the authoritative ledger store. Every mutating
// method is a single transaction: preconditions are re-validated on the
// locked row, never on an earlier read.
type PlayerRepository struct {
	db     *pgxpool.Pool
	ledger *LedgerRepository
}

func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{
		db:     db,
		ledger: NewLedgerRepository(db),
	}
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.ID, &p.TgID, &p.Username, &p.FirstName, &p.PhotoURL,
		&p.Coins, &p.TotalEarnings, &p.XP, &p.Level, &p.Energy, &p.MaxEnergy, &p.CoinsPerTap, &p.CoinsPerHour,
		&p.TotalTaps, &p.DailyTaps, &p.LastEnergyAt, &p.LastOfflineAt, &p.LastTapDay, &p.LastDailyAt, &p.DailyStreak,
		&p.ReferrerT1, &p.ReferrerT2, &p.ReferrerT3, &p.ReferralEarnT1, &p.ReferralEarnT2, &p.ReferralEarnT3, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByID returns the full player projection: ledger row plus owned
// upgrades, claimed tasks and the direct-invitee display list.
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	p, err := scanPlayer(r.db.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	return r.loadCollections(ctx, p)
}

// GetByTgID returns the full projection for a Telegram identity.
func (r *PlayerRepository) GetByTgID(ctx context.Context, tgID int64) (*domain.Player, error) {
	p, err := scanPlayer(r.db.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE tg_id = $1`, tgID))
	if err != nil {
		return nil, err
	}
	return r.loadCollections(ctx, p)
}

func (r *PlayerRepository) loadCollections(ctx context.Context, p *domain.Player) (*domain.Player, error) {
	p.Upgrades = make(map[string]int)
	rows, err := r.db.Query(ctx,
		`SELECT upgrade_id, level FROM player_upgrades WHERE player_id = $1`, p.ID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id string
		var level int
		if err := rows.Scan(&id, &level); err != nil {
			rows.Close()
			return nil, err
		}
		p.Upgrades[id] = level
	}
	rows.Close()

	p.Tasks = make(map[string]time.Time)
	rows, err = r.db.Query(ctx,
		`SELECT task_id, claimed_at FROM player_tasks WHERE player_id = $1`, p.ID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			rows.Close()
			return nil, err
		}
		p.Tasks[id] = at
	}
	rows.Close()

	rows, err = r.db.Query(ctx,
		`SELECT r.referred_id, COALESCE(p.username, ''), COALESCE(p.first_name, ''), r.created_at
		 FROM referrals r
		 JOIN players p ON p.id = r.referred_id
		 WHERE r.referrer_id = $1
		 ORDER BY r.created_at DESC`, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.ReferralEntry
		if err := rows.Scan(&e.PlayerID, &e.Username, &e.FirstName, &e.JoinedAt); err != nil {
			return nil, err
		}
		p.Referrals = append(p.Referrals, e)
	}

	return p, nil
}

// Create inserts a new player with formula-derived defaults and returns
// it. A concurrent first contact that loses the insert race falls back
// to the row the winner created.
func (r *PlayerRepository) Create(ctx context.Context, tgID int64, username, firstName, photoURL string) (*domain.Player, error) {
	d := economy.ComputeDerived(0, nil)
	now := time.Now().UTC()

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO players (tg_id, username, first_name, photo_url,
			level, energy, max_energy, coins_per_tap, coins_per_hour,
			last_energy_at, last_offline_at, last_tap_day)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10, $11)
		 ON CONFLICT (tg_id) DO NOTHING
		 RETURNING id`,
		tgID, username, firstName, photoURL,
		d.Level, d.MaxEnergy, d.MaxEnergy, d.CoinsPerTap, d.CoinsPerHour,
		now, now.Truncate(24*time.Hour),
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.GetByTgID(ctx, tgID)
	}
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// RefreshProfile idempotently updates display fields for an existing
// player; empty values leave the stored ones untouched.
func (r *PlayerRepository) RefreshProfile(ctx context.Context, id int64, username, firstName, photoURL string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE players
		 SET username = COALESCE(NULLIF($1, ''), username),
		     first_name = COALESCE(NULLIF($2, ''), first_name),
		     photo_url = COALESCE(NULLIF($3, ''), photo_url)
		 WHERE id = $4`,
		username, firstName, photoURL, id,
	)
	return err
}

// Tap applies a tap batch in one transaction: energy is regenerated and
// re-checked on the locked row, balances and counters advance together,
// and for count > 1 referral shares fan out to resolved ancestors in the
// same transaction. The coins-per-tap snapshot comes from the caller's
// last known rate; rates are not recomputed mid-tap.
func (r *PlayerRepository) Tap(ctx context.Context, playerID int64, count int, coinsPerTapSnapshot int64, now time.Time) (*domain.Player, error) {
	if count < 1 {
		return nil, errors.New("tap count must be >= 1")
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		energy, maxEnergy, xp, dailyTaps int64
		level                            int
		lastEnergyAt, lastTapDay         time.Time
		refT1, refT2, refT3              *int64
	)
	err = tx.QueryRow(ctx,
		`SELECT energy, max_energy, xp, level, daily_taps, last_energy_at, last_tap_day,
		        referrer_t1, referrer_t2, referrer_t3
		 FROM players WHERE id = $1 FOR UPDATE`, playerID,
	).Scan(&energy, &maxEnergy, &xp, &level, &dailyTaps, &lastEnergyAt, &lastTapDay, &refT1, &refT2, &refT3)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	// Regenerate energy before checking the precondition so a player who
	// waited long enough is never rejected on a stale counter.
	energy = economy.RegenEnergy(energy, maxEnergy, now.Sub(lastEnergyAt))
	needed := int64(count) * economy.EnergyPerTap
	if energy < needed {
		return nil, ErrInsufficientEnergy
	}

	today := now.UTC().Truncate(24 * time.Hour)
	if !lastTapDay.Equal(today) {
		dailyTaps = 0
	}

	totalCoins := int64(count) * coinsPerTapSnapshot
	xpGain := int64(count) * economy.XPPerTap

	_, err = tx.Exec(ctx,
		`UPDATE players
		 SET coins = coins + $1,
		     total_earnings = total_earnings + $1,
		     xp = xp + $2,
		     energy = $3,
		     total_taps = total_taps + $4,
		     daily_taps = $5,
		     last_energy_at = $6,
		     last_tap_day = $7
		 WHERE id = $8`,
		totalCoins, xpGain, energy-needed, count, dailyTaps+int64(count), now, today, playerID,
	)
	if err != nil {
		return nil, err
	}

	if err := r.ledger.CreateWithTx(ctx, tx, &domain.LedgerEntry{
		PlayerID: playerID,
		Type:     domain.EntryTap,
		Amount:   totalCoins,
		Meta:     map[string]any{"count": count, "rate": coinsPerTapSnapshot},
	}); err != nil {
		return nil, err
	}

	// Batch taps pay upstream; a lone tap does not.
	if count > 1 {
		ancestors := []*int64{refT1, refT2, refT3}
		for i, ancestor := range ancestors {
			if ancestor == nil {
				continue
			}
			tier := i + 1
			share := economy.ReferralShare(totalCoins, tier)
			if share <= 0 {
				continue
			}
			if err := r.creditReferralShare(ctx, tx, *ancestor, tier, share, playerID); err != nil {
				return nil, err
			}
		}
	}

	// Taps award xp slowly, but a crossed level boundary must still be
	// reconciled before the transaction commits.
	if economy.LevelFromXP(xp+xpGain) != level {
		if err := r.recomputeDerived(ctx, tx, playerID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, playerID)
}

func (r *PlayerRepository) creditReferralShare(ctx context.Context, tx pgx.Tx, ancestorID int64, tier int, share int64, fromPlayerID int64) error {
	earnColumn := map[int]string{1: "referral_earn_t1", 2: "referral_earn_t2", 3: "referral_earn_t3"}[tier]

	_, err := tx.Exec(ctx,
		`UPDATE players
		 SET coins = coins + $1,
		     total_earnings = total_earnings + $1,
		     `+earnColumn+` = `+earnColumn+` + $1
		 WHERE id = $2`,
		share, ancestorID,
	)
	if err != nil {
		return err
	}

	return r.ledger.CreateWithTx(ctx, tx, &domain.LedgerEntry{
		PlayerID: ancestorID,
		Type:     domain.EntryReferralShare,
		Amount:   share,
		Meta:     map[string]any{"tier": tier, "from_player_id": fromPlayerID},
	})
}

// PurchaseUpgrade debits the cost, bumps the owned level and awards xp in
// one transaction, then reconciles the derived rates before committing.
func (r *PlayerRepository) PurchaseUpgrade(ctx context.Context, playerID int64, upgradeID string) (*domain.Player, error) {
	def, ok := economy.Upgrades[upgradeID]
	if !ok {
		return nil, ErrUpgradeNotFound
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var coins int64
	err = tx.QueryRow(ctx,
		`SELECT coins FROM players WHERE id = $1 FOR UPDATE`, playerID,
	).Scan(&coins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	var ownedLevel int
	err = tx.QueryRow(ctx,
		`SELECT level FROM player_upgrades WHERE player_id = $1 AND upgrade_id = $2`,
		playerID, upgradeID,
	).Scan(&ownedLevel)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if ownedLevel >= def.MaxLevel {
		return nil, ErrMaxLevelReached
	}

	cost := economy.UpgradeCost(def, ownedLevel)
	if coins < cost {
		return nil, ErrInsufficientFunds
	}

	newLevel := ownedLevel + 1
	xpAward := int64(economy.UpgradeXP) * int64(newLevel)

	_, err = tx.Exec(ctx,
		`UPDATE players SET coins = coins - $1, xp = xp + $2 WHERE id = $3`,
		cost, xpAward, playerID,
	)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO player_upgrades (player_id, upgrade_id, level)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (player_id, upgrade_id) DO UPDATE SET level = $3`,
		playerID, upgradeID, newLevel,
	)
	if err != nil {
		return nil, err
	}

	if err := r.ledger.CreateWithTx(ctx, tx, &domain.LedgerEntry{
		PlayerID: playerID,
		Type:     domain.EntryUpgrade,
		Amount:   -cost,
		Meta:     map[string]any{"upgrade_id": upgradeID, "new_level": newLevel},
	}); err != nil {
		return nil, err
	}

	// Upgrades always change the rate inputs; xp may also have crossed a
	// level boundary. Recompute everything together.
	if err := r.recomputeDerived(ctx, tx, playerID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, playerID)
}

// ClaimTask marks a task claimed and credits its reward in one
// transaction. The claim row is the idempotency guard: a concurrent
// duplicate observes the inserted row and fails with ErrAlreadyClaimed.
func (r *PlayerRepository) ClaimTask(ctx context.Context, playerID int64, taskID string, now time.Time) (*domain.Player, error) {
	def, ok := economy.Tasks[taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		xp, totalTaps int64
		level         int
	)
	err = tx.QueryRow(ctx,
		`SELECT xp, total_taps, level FROM players WHERE id = $1 FOR UPDATE`, playerID,
	).Scan(&xp, &totalTaps, &level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	met, err := r.requirementMet(ctx, tx, def, playerID, level, totalTaps)
	if err != nil {
		return nil, err
	}
	if !met {
		return nil, ErrRequirementNotMet
	}

	res, err := tx.Exec(ctx,
		`INSERT INTO player_tasks (player_id, task_id, claimed_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (player_id, task_id) DO NOTHING`,
		playerID, taskID, now,
	)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, ErrAlreadyClaimed
	}

	_, err = tx.Exec(ctx,
		`UPDATE players
		 SET coins = coins + $1, total_earnings = total_earnings + $1, xp = xp + $2
		 WHERE id = $3`,
		def.RewardCoins, def.RewardXP, playerID,
	)
	if err != nil {
		return nil, err
	}

	if err := r.ledger.CreateWithTx(ctx, tx, &domain.LedgerEntry{
		PlayerID: playerID,
		Type:     domain.EntryTaskReward,
		Amount:   def.RewardCoins,
		Meta:     map[string]any{"task_id": taskID},
	}); err != nil {
		return nil, err
	}

	if economy.LevelFromXP(xp+def.RewardXP) != level {
		if err := r.recomputeDerived(ctx, tx, playerID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, playerID)
}

func (r *PlayerRepository) requirementMet(ctx context.Context, tx pgx.Tx, def economy.TaskDef, playerID int64, level int, totalTaps int64) (bool, error) {
	switch def.Type {
	case economy.TaskReferrals:
		var count int64
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM referrals WHERE referrer_id = $1`, playerID,
		).Scan(&count)
		if err != nil {
			return false, err
		}
		return count >= def.Target, nil
	case economy.TaskLevel:
		return int64(level) >= def.Target, nil
	case economy.TaskTaps:
		return totalTaps >= def.Target, nil
	}
	return false, nil
}

// ClaimDaily credits the daily login reward. The reward is computed from
// the pre-increment streak; a lapsed grace window resets the streak first.
func (r *PlayerRepository) ClaimDaily(ctx context.Context, playerID int64, now time.Time) (economy.DailyReward, int, *domain.Player, error) {
	var reward economy.DailyReward

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return reward, 0, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		lastDailyAt *time.Time
		streak      int
		xp          int64
		level       int
	)
	err = tx.QueryRow(ctx,
		`SELECT last_daily_at, daily_streak, xp, level FROM players WHERE id = $1 FOR UPDATE`, playerID,
	).Scan(&lastDailyAt, &streak, &xp, &level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reward, 0, nil, ErrPlayerNotFound
		}
		return reward, 0, nil, err
	}

	if !economy.CanClaimDaily(lastDailyAt, now) {
		return reward, 0, nil, ErrAlreadyClaimedToday
	}
	if economy.ShouldResetStreak(lastDailyAt, now) {
		streak = 0
	}

	reward, _ = economy.DailyRewardFor(streak)
	newStreak := streak + 1

	_, err = tx.Exec(ctx,
		`UPDATE players
		 SET coins = coins + $1, total_earnings = total_earnings + $1, xp = xp + $2,
		     daily_streak = $3, last_daily_at = $4
		 WHERE id = $5`,
		reward.Coins, reward.XP, newStreak, now, playerID,
	)
	if err != nil {
		return reward, 0, nil, err
	}

	if err := r.ledger.CreateWithTx(ctx, tx, &domain.LedgerEntry{
		PlayerID: playerID,
		Type:     domain.EntryDailyReward,
		Amount:   reward.Coins,
		Meta:     map[string]any{"streak": newStreak},
	}); err != nil {
		return reward, 0, nil, err
	}

	if economy.LevelFromXP(xp+reward.XP) != level {
		if err := r.recomputeDerived(ctx, tx, playerID); err != nil {
			return reward, 0, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return reward, 0, nil, err
	}

	p, err := r.GetByID(ctx, playerID)
	return reward, newStreak, p, err
}

// recomputeDerived is the stale-to-consistent transition: level and all
// three rates are recomputed from xp and owned upgrades and persisted in
// a single update. Level is never written without its matching rates.
func (r *PlayerRepository) recomputeDerived(ctx context.Context, tx pgx.Tx, playerID int64) error {
	var xp int64
	if err := tx.QueryRow(ctx, `SELECT xp FROM players WHERE id = $1`, playerID).Scan(&xp); err != nil {
		return err
	}

	owned := make(map[string]int)
	rows, err := tx.Query(ctx,
		`SELECT upgrade_id, level FROM player_upgrades WHERE player_id = $1`, playerID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var id string
		var level int
		if err := rows.Scan(&id, &level); err != nil {
			rows.Close()
			return err
		}
		owned[id] = level
	}
	rows.Close()

	d := economy.ComputeDerived(xp, owned)

	_, err = tx.Exec(ctx,
		`UPDATE players
		 SET level = $1, coins_per_tap = $2, coins_per_hour = $3, max_energy = $4,
		     energy = LEAST(energy, $4)
		 WHERE id = $5`,
		d.Level, d.CoinsPerTap, d.CoinsPerHour, d.MaxEnergy, playerID,
	)
	return err
}

// UpdateState applies a typed field-mask patch: only non-nil fields are
// written. Used by offline settlement to persist a projected state.
func (r *PlayerRepository) UpdateState(ctx context.Context, playerID int64, patch domain.StatePatch) error {
	set := make([]string, 0, 6)
	args := make([]any, 0, 7)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if patch.Coins != nil {
		set = append(set, "coins = "+arg(*patch.Coins))
	}
	if patch.TotalEarnings != nil {
		set = append(set, "total_earnings = "+arg(*patch.TotalEarnings))
	}
	if patch.XP != nil {
		set = append(set, "xp = "+arg(*patch.XP))
	}
	if patch.Energy != nil {
		set = append(set, "energy = LEAST("+arg(*patch.Energy)+", max_energy)")
	}
	if patch.LastEnergyAt != nil {
		set = append(set, "last_energy_at = "+arg(*patch.LastEnergyAt))
	}
	if patch.LastOfflineAt != nil {
		set = append(set, "last_offline_at = "+arg(*patch.LastOfflineAt))
	}
	if len(set) == 0 {
		return nil
	}

	query := "UPDATE players SET " + strings.Join(set, ", ") + " WHERE id = " + arg(playerID)
	res, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// CreditOffline settles the absence window: passive earnings project
// from last_offline_at and energy regenerates from last_energy_at, both
// computed from the locked row inside the transaction so a concurrent
// tap can never have its energy spend refunded.
func (r *PlayerRepository) CreditOffline(ctx context.Context, playerID int64, now time.Time) (int64, int64, *domain.Player, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var coinsPerHour, energy, maxEnergy int64
	var lastEnergyAt, lastOfflineAt time.Time
	err = tx.QueryRow(ctx,
		`SELECT coins_per_hour, energy, max_energy, last_energy_at, last_offline_at
		 FROM players WHERE id = $1 FOR UPDATE`, playerID,
	).Scan(&coinsPerHour, &energy, &maxEnergy, &lastEnergyAt, &lastOfflineAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, nil, ErrPlayerNotFound
		}
		return 0, 0, nil, err
	}

	earnings := economy.OfflineEarnings(coinsPerHour, now.Sub(lastOfflineAt))
	newEnergy := economy.RegenEnergy(energy, maxEnergy, now.Sub(lastEnergyAt))

	_, err = tx.Exec(ctx,
		`UPDATE players
		 SET coins = coins + $1, total_earnings = total_earnings + $1,
		     energy = LEAST($2, max_energy), last_energy_at = $3, last_offline_at = $3
		 WHERE id = $4`,
		earnings, newEnergy, now, playerID,
	)
	if err != nil {
		return 0, 0, nil, err
	}

	if earnings > 0 {
		if err := r.ledger.CreateWithTx(ctx, tx, &domain.LedgerEntry{
			PlayerID: playerID,
			Type:     domain.EntryOffline,
			Amount:   earnings,
		}); err != nil {
			return 0, 0, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, nil, err
	}

	p, err := r.GetByID(ctx, playerID)
	return earnings, newEnergy, p, err
}

// Reset hard-deletes a player and its owned rows. Development only.
func (r *PlayerRepository) Reset(ctx context.Context, playerID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, q := range []string{
		`DELETE FROM ledger_entries WHERE player_id = $1`,
		`DELETE FROM player_tasks WHERE player_id = $1`,
		`DELETE FROM player_upgrades WHERE player_id = $1`,
		`DELETE FROM referrals WHERE referrer_id = $1 OR referred_id = $1`,
		`DELETE FROM players WHERE id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, playerID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

