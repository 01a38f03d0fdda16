package unlock

import "context"

const MaxListLimit = 100

// Repository describes unlock persistence needs from use cases.
type Repository interface {
	Exists(ctx context.Context, userID, investorID int64) (bool, error)
	// Create is idempotent per (user, investor). created is false when the
	// pair already existed; the stored row is returned either way.
	Create(ctx context.Context, item Unlock) (Unlock, bool, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]Unlock, error)
}
