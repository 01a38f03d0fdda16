package investor

import "context"

// Repository describes investor persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, investorID int64) (Investor, bool, error)
	ListByIDs(ctx context.Context, investorIDs []int64) ([]Investor, error)
}
