package rediscache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/proconnect-api/internal/domain/investor"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
)

type UserRepository struct {
	next  user.Repository
	cache tier[user.Profile]
}

func NewUserRepository(next user.Repository, client redis.Cmdable, opts Options) *UserRepository {
	return &UserRepository{next: next, cache: newTier[user.Profile](client, "user", opts)}
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (user.Profile, bool, error) {
	if cached, ok := r.cache.get(ctx, userID); ok {
		return cached.Value, cached.Exists, nil
	}

	item, exists, err := r.next.GetByID(ctx, userID)
	if err != nil {
		return user.Profile{}, false, err
	}
	r.cache.set(ctx, map[int64]entry[user.Profile]{userID: {Value: item, Exists: exists}})
	return item, exists, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []int64) ([]user.Profile, error) {
	hits, misses := r.cache.getMany(ctx, userIDs)
	if len(misses) > 0 {
		loaded, err := r.next.GetByIDs(ctx, misses)
		if err != nil {
			return nil, err
		}
		fresh := make(map[int64]entry[user.Profile], len(misses))
		for _, id := range misses {
			fresh[id] = entry[user.Profile]{}
		}
		for _, item := range loaded {
			fresh[item.ID] = entry[user.Profile]{Value: item, Exists: true}
		}
		r.cache.set(ctx, fresh)
		for id, item := range fresh {
			hits[id] = item
		}
	}

	return collect(userIDs, hits), nil
}

type InvestorRepository struct {
	next  investor.Repository
	cache tier[investor.Investor]
}

func NewInvestorRepository(next investor.Repository, client redis.Cmdable, opts Options) *InvestorRepository {
	return &InvestorRepository{next: next, cache: newTier[investor.Investor](client, "investor", opts)}
}

func (r *InvestorRepository) GetByID(ctx context.Context, investorID int64) (investor.Investor, bool, error) {
	if cached, ok := r.cache.get(ctx, investorID); ok {
		return cached.Value, cached.Exists, nil
	}

	item, exists, err := r.next.GetByID(ctx, investorID)
	if err != nil {
		return investor.Investor{}, false, err
	}
	r.cache.set(ctx, map[int64]entry[investor.Investor]{investorID: {Value: item, Exists: exists}})
	return item, exists, nil
}

func (r *InvestorRepository) ListByIDs(ctx context.Context, investorIDs []int64) ([]investor.Investor, error) {
	hits, misses := r.cache.getMany(ctx, investorIDs)
	if len(misses) > 0 {
		loaded, err := r.next.ListByIDs(ctx, misses)
		if err != nil {
			return nil, err
		}
		fresh := make(map[int64]entry[investor.Investor], len(misses))
		for _, id := range misses {
			fresh[id] = entry[investor.Investor]{}
		}
		for _, item := range loaded {
			fresh[item.ID] = entry[investor.Investor]{Value: item, Exists: true}
		}
		r.cache.set(ctx, fresh)
		for id, item := range fresh {
			hits[id] = item
		}
	}

	return collect(investorIDs, hits), nil
}

// collect returns existing entries in ids order, once per id.
func collect[T any](ids []int64, entries map[int64]entry[T]) []T {
	out := make([]T, 0, len(entries))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := entries[id]; ok && item.Exists {
			out = append(out, item.Value)
		}
	}
	return out
}
