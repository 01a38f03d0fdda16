package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
	qb "github.com/riskibarqy/proconnect-api/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (user.Profile, bool, error) {
	query, args, err := qb.Select(userColumns...).From("users").
		Where(
			qb.Eq("id", userID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("get user: %w", err)
	}

	return userFromRow(row), true, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []int64) ([]user.Profile, error) {
	if len(userIDs) == 0 {
		return []user.Profile{}, nil
	}

	query, args, err := qb.Select(userColumns...).From("users").
		Where(
			qb.AnyInt64("id", userIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get users by ids query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get users by ids: %w", err)
	}

	out := make([]user.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row))
	}
	return out, nil
}
