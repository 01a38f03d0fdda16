package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/proconnect-api/internal/domain/investor"
	qb "github.com/riskibarqy/proconnect-api/internal/platform/querybuilder"
)

type InvestorRepository struct {
	db *sqlx.DB
}

func NewInvestorRepository(db *sqlx.DB) *InvestorRepository {
	return &InvestorRepository{db: db}
}

func (r *InvestorRepository) GetByID(ctx context.Context, investorID int64) (investor.Investor, bool, error) {
	query, args, err := qb.Select(investorColumns...).From("investors").
		Where(
			qb.Eq("id", investorID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return investor.Investor{}, false, fmt.Errorf("build get investor query: %w", err)
	}

	var row investorTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return investor.Investor{}, false, nil
		}
		return investor.Investor{}, false, fmt.Errorf("get investor: %w", err)
	}

	return investorFromRow(row), true, nil
}

func (r *InvestorRepository) ListByIDs(ctx context.Context, investorIDs []int64) ([]investor.Investor, error) {
	if len(investorIDs) == 0 {
		return []investor.Investor{}, nil
	}

	query, args, err := qb.Select(investorColumns...).From("investors").
		Where(
			qb.AnyInt64("id", investorIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list investors by ids query: %w", err)
	}

	var rows []investorTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list investors by ids: %w", err)
	}

	out := make([]investor.Investor, 0, len(rows))
	for _, row := range rows {
		out = append(out, investorFromRow(row))
	}
	return out, nil
}
