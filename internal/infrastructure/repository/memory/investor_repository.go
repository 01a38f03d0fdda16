package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/proconnect-api/internal/domain/investor"
)

type InvestorRepository struct {
	mu    sync.RWMutex
	items map[int64]investor.Investor
}

func NewInvestorRepository(investors []investor.Investor) *InvestorRepository {
	items := make(map[int64]investor.Investor, len(investors))
	for _, item := range investors {
		items[item.ID] = item
	}

	return &InvestorRepository{items: items}
}

func (r *InvestorRepository) GetByID(_ context.Context, investorID int64) (investor.Investor, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[investorID]
	return item, ok, nil
}

func (r *InvestorRepository) ListByIDs(_ context.Context, investorIDs []int64) ([]investor.Investor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]investor.Investor, 0, len(investorIDs))
	for _, id := range investorIDs {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}
