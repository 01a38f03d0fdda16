// Package cache wraps repositories with read-through caching backed by
// platform/cache.
package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/proconnect-api/internal/domain/investor"
	"github.com/riskibarqy/proconnect-api/internal/domain/unlock"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
	basecache "github.com/riskibarqy/proconnect-api/internal/platform/cache"
)

type cachedLookup[T any] struct {
	value  T
	exists bool
}

type UserRepository struct {
	next  user.Repository
	cache *basecache.Store
}

func NewUserRepository(next user.Repository, cache *basecache.Store) *UserRepository {
	return &UserRepository{next: next, cache: cache}
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (user.Profile, bool, error) {
	cached, err := basecache.GetOrLoad(ctx, r.cache, userKey(userID), func(ctx context.Context) (cachedLookup[user.Profile], error) {
		item, exists, err := r.next.GetByID(ctx, userID)
		return cachedLookup[user.Profile]{value: item, exists: exists}, err
	})
	if err != nil {
		return user.Profile{}, false, err
	}
	return cached.value, cached.exists, nil
}

// GetByIDs serves cached profiles and fetches only the misses from the next
// repository in one call.
func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []int64) ([]user.Profile, error) {
	found := make(map[int64]user.Profile, len(userIDs))
	misses := make([]int64, 0, len(userIDs))
	for _, id := range userIDs {
		v, ok := r.cache.Get(ctx, userKey(id))
		if !ok {
			misses = append(misses, id)
			continue
		}
		cached, _ := v.(cachedLookup[user.Profile])
		if cached.exists {
			found[id] = cached.value
		}
	}

	if len(misses) > 0 {
		loaded, err := r.next.GetByIDs(ctx, misses)
		if err != nil {
			return nil, err
		}
		for _, item := range loaded {
			found[item.ID] = item
			r.cache.Set(ctx, userKey(item.ID), cachedLookup[user.Profile]{value: item, exists: true})
		}
	}

	out := make([]user.Profile, 0, len(found))
	for _, id := range userIDs {
		if item, ok := found[id]; ok {
			out = append(out, item)
			delete(found, id)
		}
	}
	return out, nil
}

type InvestorRepository struct {
	next  investor.Repository
	cache *basecache.Store
}

func NewInvestorRepository(next investor.Repository, cache *basecache.Store) *InvestorRepository {
	return &InvestorRepository{next: next, cache: cache}
}

func (r *InvestorRepository) GetByID(ctx context.Context, investorID int64) (investor.Investor, bool, error) {
	cached, err := basecache.GetOrLoad(ctx, r.cache, investorKey(investorID), func(ctx context.Context) (cachedLookup[investor.Investor], error) {
		item, exists, err := r.next.GetByID(ctx, investorID)
		return cachedLookup[investor.Investor]{value: item, exists: exists}, err
	})
	if err != nil {
		return investor.Investor{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *InvestorRepository) ListByIDs(ctx context.Context, investorIDs []int64) ([]investor.Investor, error) {
	return r.next.ListByIDs(ctx, investorIDs)
}

// UnlockRepository caches unlock status per pair. Create drops the member's
// cached lists and pins the pair's status to true, so a fresh unlock is
// visible immediately even if a status read was in flight.
type UnlockRepository struct {
	next  unlock.Repository
	cache *basecache.Store
}

func NewUnlockRepository(next unlock.Repository, cache *basecache.Store) *UnlockRepository {
	return &UnlockRepository{next: next, cache: cache}
}

func (r *UnlockRepository) Exists(ctx context.Context, userID, investorID int64) (bool, error) {
	return basecache.GetOrLoad(ctx, r.cache, unlockKey(userID, investorID), func(ctx context.Context) (bool, error) {
		return r.next.Exists(ctx, userID, investorID)
	})
}

func (r *UnlockRepository) Create(ctx context.Context, item unlock.Unlock) (unlock.Unlock, bool, error) {
	stored, created, err := r.next.Create(ctx, item)
	if err != nil {
		return unlock.Unlock{}, false, err
	}

	key := unlockKey(item.UserID, item.InvestorID)
	r.cache.Delete(ctx, key)
	r.cache.DeletePrefix(ctx, unlockListPrefix(item.UserID))
	r.cache.Set(ctx, key, true)
	return stored, created, nil
}

func (r *UnlockRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]unlock.Unlock, error) {
	key := unlockListPrefix(userID) + strconv.Itoa(limit)
	items, err := basecache.GetOrLoad(ctx, r.cache, key, func(ctx context.Context) ([]unlock.Unlock, error) {
		return r.next.ListByUser(ctx, userID, limit)
	})
	if err != nil {
		return nil, err
	}
	return append([]unlock.Unlock(nil), items...), nil
}

func userKey(id int64) string {
	return "user:id:" + strconv.FormatInt(id, 10)
}

func investorKey(id int64) string {
	return "investor:id:" + strconv.FormatInt(id, 10)
}

func unlockKey(userID, investorID int64) string {
	return "unlock:" + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(investorID, 10)
}

func unlockListPrefix(userID int64) string {
	return "unlock:list:" + strconv.FormatInt(userID, 10) + ":"
}
