package repository

import (
	"context"
	"encoding/json"

	"tapminer/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository records every coin delta as an append-only audit row.
type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// CreateWithTx appends an entry inside an existing transaction so the
// audit row commits or rolls back together with the balance change.
func (r *LedgerRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	metaJSON, err := json.Marshal(e.Meta)
	if err != nil {
		metaJSON = []byte("{}")
	}

	return tx.QueryRow(ctx,
		`INSERT INTO ledger_entries (player_id, type, amount, meta)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.PlayerID, e.Type, e.Amount, metaJSON,
	).Scan(&e.ID, &e.CreatedAt)
}

// GetByPlayerID returns recent entries for a player, newest first.
func (r *LedgerRepository) GetByPlayerID(ctx context.Context, playerID int64, limit int) ([]*domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, player_id, type, amount, meta, created_at
		 FROM ledger_entries
		 WHERE player_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		playerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var metaJSON []byte
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.Type, &e.Amount, &metaJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(metaJSON) > 0 {
			_ = json.Unmarshal(metaJSON, &e.Meta)
		}
		res = append(res, &e)
	}
	return res, nil
}
