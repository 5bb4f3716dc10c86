package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tapminer/internal/domain"
	"tapminer/internal/economy"
	"tapminer/internal/logger"
	"tapminer/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Notifier delivers best-effort outbound messages. Implementations must
// never block game flow; failures are the implementation's problem.
type Notifier interface {
	LevelUp(tgID int64, level int)
	ReferralJoined(tgID int64, firstName string)
}

// GameService orchestrates ledger operations, metrics and notifications.
type GameService struct {
	players   *repository.PlayerRepository
	referrals *repository.ReferralRepository
	notifier  Notifier
	log       *slog.Logger
}

func NewGameService(db *pgxpool.Pool, notifier Notifier) *GameService {
	return &GameService{
		players:   repository.NewPlayerRepository(db),
		referrals: repository.NewReferralRepository(db),
		notifier:  notifier,
		log:       logger.With("component", "game_service"),
	}
}

// Players exposes the underlying ledger store for read paths.
func (s *GameService) Players() *repository.PlayerRepository {
	return s.players
}

// Referrals exposes the referral store for read paths.
func (s *GameService) Referrals() *repository.ReferralRepository {
	return s.referrals
}

// GetOrCreatePlayer returns the player for a Telegram identity, creating
// it lazily on first contact. Referral chain resolution runs only for a
// brand-new record and is best-effort: a resolution failure is logged and
// swallowed, never failing the creation.
func (s *GameService) GetOrCreatePlayer(ctx context.Context, tgID int64, username, firstName, photoURL string, referrerTgID *int64) (*domain.Player, bool, error) {
	p, err := s.players.GetByTgID(ctx, tgID)
	if err == nil {
		// Existing player: refresh display fields, ignore any referrer.
		if err := s.players.RefreshProfile(ctx, p.ID, username, firstName, photoURL); err != nil {
			s.log.Warn("profile refresh failed", "tg_id", tgID, "error", err)
		}
		return p, false, nil
	}
	if !errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, false, err
	}

	p, err = s.players.Create(ctx, tgID, username, firstName, photoURL)
	if err != nil {
		return nil, false, err
	}
	PlayersCreated.Inc()

	if referrerTgID != nil && *referrerTgID != tgID {
		if err := s.referrals.ResolveChain(ctx, p.ID, *referrerTgID); err != nil {
			s.log.Warn("referral chain resolution failed",
				"player_id", p.ID, "referrer_tg_id", *referrerTgID, "error", err)
		} else {
			s.notifyReferrer(ctx, *referrerTgID, firstName)
			// Reload so the projection carries the resolved tier pointers.
			if reloaded, err := s.players.GetByID(ctx, p.ID); err == nil {
				p = reloaded
			}
		}
	}

	return p, true, nil
}

func (s *GameService) notifyReferrer(ctx context.Context, referrerTgID int64, firstName string) {
	if s.notifier == nil {
		return
	}
	s.notifier.ReferralJoined(referrerTgID, firstName)
}

// Tap applies a tap batch using the player's last persisted rate as the
// snapshot. Callers must re-fetch after a level change before batching
// more taps.
func (s *GameService) Tap(ctx context.Context, playerID int64, count int) (*domain.Player, error) {
	before, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	p, err := s.players.Tap(ctx, playerID, count, before.CoinsPerTap, time.Now())
	if err != nil {
		return nil, err
	}

	TapsApplied.Add(float64(count))
	TapCoinsEarned.Add(float64(int64(count) * before.CoinsPerTap))
	if count > 1 {
		total := int64(count) * before.CoinsPerTap
		for tier, ancestor := range []*int64{before.ReferrerT1, before.ReferrerT2, before.ReferrerT3} {
			if ancestor != nil {
				ReferralCoinsShared.Add(float64(economy.ReferralShare(total, tier+1)))
			}
		}
	}

	s.maybeNotifyLevelUp(before, p)
	return p, nil
}

// PurchaseUpgrade buys the next level of an upgrade.
func (s *GameService) PurchaseUpgrade(ctx context.Context, playerID int64, upgradeID string) (*domain.Player, error) {
	before, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	p, err := s.players.PurchaseUpgrade(ctx, playerID, upgradeID)
	if err != nil {
		return nil, err
	}

	UpgradesPurchased.WithLabelValues(upgradeID).Inc()
	s.maybeNotifyLevelUp(before, p)
	return p, nil
}

// ClaimTask claims a one-time task reward.
func (s *GameService) ClaimTask(ctx context.Context, playerID int64, taskID string) (*domain.Player, error) {
	before, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	p, err := s.players.ClaimTask(ctx, playerID, taskID, time.Now())
	if err != nil {
		return nil, err
	}

	TasksClaimed.WithLabelValues(taskID).Inc()
	s.maybeNotifyLevelUp(before, p)
	return p, nil
}

// ClaimDaily claims the daily login reward.
func (s *GameService) ClaimDaily(ctx context.Context, playerID int64) (economy.DailyReward, int, *domain.Player, error) {
	before, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return economy.DailyReward{}, 0, nil, err
	}

	reward, streak, p, err := s.players.ClaimDaily(ctx, playerID, time.Now())
	if err != nil {
		return reward, 0, nil, err
	}

	DailyClaimed.Inc()
	s.maybeNotifyLevelUp(before, p)
	return reward, streak, p, nil
}

// SettleOffline settles offline earnings plus regenerated energy in one
// atomic credit; the window is measured on the locked row.
func (s *GameService) SettleOffline(ctx context.Context, playerID int64) (OfflineSettlement, *domain.Player, error) {
	earnings, energy, p, err := s.players.CreditOffline(ctx, playerID, time.Now())
	if err != nil {
		return OfflineSettlement{}, nil, err
	}
	return OfflineSettlement{Earnings: earnings, Energy: energy}, p, nil
}

// Sync merges a client's optimistic state into the authoritative
// snapshot. The merge result is advisory; the ledger row stays as-is.
func (s *GameService) Sync(ctx context.Context, playerID int64, local domain.ClientState) (*domain.Player, error) {
	p, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return MergeSession(local, p), nil
}

func (s *GameService) maybeNotifyLevelUp(before, after *domain.Player) {
	if s.notifier == nil || after == nil || before == nil {
		return
	}
	if after.Level > before.Level {
		s.notifier.LevelUp(after.TgID, after.Level)
	}
}
