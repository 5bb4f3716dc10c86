package repository

import (
	"context"
	"errors"

	"tapminer/internal/domain"
	"tapminer/internal/economy"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReferralRepository resolves and persists the upstream referrer chain.
// Resolution happens once, at player creation; the tier pointers are
// immutable afterwards.
type ReferralRepository struct {
	db     *pgxpool.Pool
	ledger *LedgerRepository
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{
		db:     db,
		ledger: NewLedgerRepository(db),
	}
}

// ResolveChain walks the referred-by relation upward from the referrer
// for up to three hops, persists the tier pointers onto the new player,
// records the tier-1 display entry and credits each resolved ancestor's
// signup bonus — all in one transaction. The IS NULL guard makes the
// pointers write-once: a second resolution attempt is a no-op.
func (r *ReferralRepository) ResolveChain(ctx context.Context, playerID, referrerTgID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var tier1 int64
	err = tx.QueryRow(ctx,
		`SELECT id FROM players WHERE tg_id = $1`, referrerTgID,
	).Scan(&tier1)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPlayerNotFound
		}
		return err
	}
	if tier1 == playerID {
		return errors.New("self-referral")
	}

	chain := []int64{tier1}
	current := tier1
	for len(chain) < economy.ReferralMaxDepth {
		var next *int64
		err = tx.QueryRow(ctx,
			`SELECT referrer_t1 FROM players WHERE id = $1`, current,
		).Scan(&next)
		if err != nil || next == nil {
			break
		}
		chain = append(chain, *next)
		current = *next
	}

	tiers := []any{nil, nil, nil}
	for i, id := range chain {
		tiers[i] = id
	}

	res, err := tx.Exec(ctx,
		`UPDATE players
		 SET referrer_t1 = $1, referrer_t2 = $2, referrer_t3 = $3
		 WHERE id = $4 AND referrer_t1 IS NULL`,
		tiers[0], tiers[1], tiers[2], playerID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		// Chain already resolved for this player.
		return nil
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO referrals (referrer_id, referred_id)
		 VALUES ($1, $2)
		 ON CONFLICT (referred_id) DO NOTHING`,
		tier1, playerID,
	)
	if err != nil {
		return err
	}

	for i, ancestorID := range chain {
		tier := i + 1
		bonus := economy.ReferralSignupBonus(tier)
		if bonus <= 0 {
			continue
		}

		earnColumn := map[int]string{1: "referral_earn_t1", 2: "referral_earn_t2", 3: "referral_earn_t3"}[tier]
		_, err = tx.Exec(ctx,
			`UPDATE players
			 SET coins = coins + $1,
			     total_earnings = total_earnings + $1,
			     `+earnColumn+` = `+earnColumn+` + $1
			 WHERE id = $2`,
			bonus, ancestorID,
		)
		if err != nil {
			return err
		}

		if err := r.ledger.CreateWithTx(ctx, tx, &domain.LedgerEntry{
			PlayerID: ancestorID,
			Type:     domain.EntryReferralBonus,
			Amount:   bonus,
			Meta:     map[string]any{"tier": tier, "referred_player_id": playerID},
		}); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListByReferrer returns the direct-invitee display list.
func (r *ReferralRepository) ListByReferrer(ctx context.Context, playerID int64) ([]domain.ReferralEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.referred_id, COALESCE(p.username, ''), COALESCE(p.first_name, ''), r.created_at
		 FROM referrals r
		 JOIN players p ON p.id = r.referred_id
		 WHERE r.referrer_id = $1
		 ORDER BY r.created_at DESC`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ReferralEntry
	for rows.Next() {
		var e domain.ReferralEntry
		if err := rows.Scan(&e.PlayerID, &e.Username, &e.FirstName, &e.JoinedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// CountByReferrer returns the number of direct invitees.
func (r *ReferralRepository) CountByReferrer(ctx context.Context, playerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM referrals WHERE referrer_id = $1`, playerID,
	).Scan(&count)
	return count, err
}
