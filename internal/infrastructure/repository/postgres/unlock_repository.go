package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/proconnect-api/internal/domain/unlock"
	qb "github.com/riskibarqy/proconnect-api/internal/platform/querybuilder"
)

type UnlockRepository struct {
	db *sqlx.DB
}

func NewUnlockRepository(db *sqlx.DB) *UnlockRepository {
	return &UnlockRepository{db: db}
}

func (r *UnlockRepository) Exists(ctx context.Context, userID, investorID int64) (bool, error) {
	query, args, err := qb.Select("1").From("investor_unlocks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("investor_id", investorID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build exists investor unlock query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("exists investor unlock: %w", err)
	}
	return true, nil
}

// Create inserts the unlock unless the pair already exists. A conflicting
// insert returns no row, in which case the stored unlock is read back.
func (r *UnlockRepository) Create(ctx context.Context, item unlock.Unlock) (unlock.Unlock, bool, error) {
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	insertModel := unlockInsertModel{
		UserID:     item.UserID,
		InvestorID: item.InvestorID,
		CreatedAt:  createdAt,
	}
	query, args, err := qb.InsertModel("investor_unlocks", insertModel).
		OnConflictDoNothing("user_id", "investor_id").
		Returning("id", "user_id", "investor_id", "created_at").
		ToSQL()
	if err != nil {
		return unlock.Unlock{}, false, fmt.Errorf("build insert investor unlock query: %w", err)
	}

	var row unlockTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if !isNotFound(err) {
			return unlock.Unlock{}, false, fmt.Errorf("insert investor unlock: %w", err)
		}
		existing, err := r.get(ctx, item.UserID, item.InvestorID)
		if err != nil {
			return unlock.Unlock{}, false, err
		}
		return existing, false, nil
	}

	return unlockFromRow(row), true, nil
}

func (r *UnlockRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]unlock.Unlock, error) {
	if limit <= 0 || limit > unlock.MaxListLimit {
		limit = unlock.MaxListLimit
	}

	query, args, err := qb.Select("id", "user_id", "investor_id", "created_at").From("investor_unlocks").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list investor unlocks query: %w", err)
	}

	var rows []unlockTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list investor unlocks: %w", err)
	}

	out := make([]unlock.Unlock, 0, len(rows))
	for _, row := range rows {
		out = append(out, unlockFromRow(row))
	}
	return out, nil
}

func (r *UnlockRepository) get(ctx context.Context, userID, investorID int64) (unlock.Unlock, error) {
	query, args, err := qb.Select("id", "user_id", "investor_id", "created_at").From("investor_unlocks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("investor_id", investorID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return unlock.Unlock{}, fmt.Errorf("build get investor unlock query: %w", err)
	}

	var row unlockTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return unlock.Unlock{}, fmt.Errorf("get existing investor unlock: %w", err)
	}
	return unlockFromRow(row), nil
}
