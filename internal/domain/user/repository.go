package user

import "context"

// Repository describes profile persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, userID int64) (Profile, bool, error)
	// GetByIDs returns the profiles that exist; missing ids are skipped.
	GetByIDs(ctx context.Context, userIDs []int64) ([]Profile, error)
}
