package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/proconnect-api/internal/domain/investor"
	"github.com/riskibarqy/proconnect-api/internal/domain/unlock"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
	"github.com/riskibarqy/proconnect-api/internal/infrastructure/repository/memory"
	investormock "github.com/riskibarqy/proconnect-api/internal/mocks/domain/investor"
	unlockmock "github.com/riskibarqy/proconnect-api/internal/mocks/domain/unlock"
	usermock "github.com/riskibarqy/proconnect-api/internal/mocks/domain/user"
	basecache "github.com/riskibarqy/proconnect-api/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func newStore() *basecache.Store {
	return basecache.NewStore(basecache.Options{TTL: time.Minute})
}

func TestUserRepository_GetByIDCachesMisses(t *testing.T) {
	next := usermock.NewRepository(t)
	repo := NewUserRepository(next, newStore())

	next.On("GetByID", mock.Anything, int64(9)).Return(user.Profile{}, false, nil).Once()

	for i := 0; i < 3; i++ {
		_, ok, err := repo.GetByID(context.Background(), 9)
		if err != nil || ok {
			t.Fatalf("GetByID = ok:%v err:%v", ok, err)
		}
	}
}

func TestUserRepository_GetByIDDoesNotCacheErrors(t *testing.T) {
	next := usermock.NewRepository(t)
	repo := NewUserRepository(next, newStore())

	next.On("GetByID", mock.Anything, int64(2)).Return(user.Profile{}, false, errors.New("timeout")).Once()
	next.On("GetByID", mock.Anything, int64(2)).Return(user.Profile{ID: 2, FullName: "Budi"}, true, nil).Once()

	if _, _, err := repo.GetByID(context.Background(), 2); err == nil {
		t.Fatalf("expected first call to fail")
	}
	got, ok, err := repo.GetByID(context.Background(), 2)
	if err != nil || !ok || got.FullName != "Budi" {
		t.Fatalf("unexpected retry result: %+v ok=%v err=%v", got, ok, err)
	}
}

func TestUserRepository_GetByIDsFetchesOnlyMisses(t *testing.T) {
	next := usermock.NewRepository(t)
	repo := NewUserRepository(next, newStore())

	next.On("GetByID", mock.Anything, int64(1)).Return(user.Profile{ID: 1, FullName: "Ayu"}, true, nil).Once()
	next.On("GetByIDs", mock.Anything, []int64{3, 2}).Return([]user.Profile{{ID: 2, FullName: "Budi"}}, nil).Once()

	if _, _, err := repo.GetByID(context.Background(), 1); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	got, err := repo.GetByIDs(context.Background(), []int64{3, 1, 2})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected profiles: %+v", got)
	}

	// Both now cached.
	got, err = repo.GetByIDs(context.Background(), []int64{2, 1})
	if err != nil || len(got) != 2 {
		t.Fatalf("expected cached profiles, got %+v err=%v", got, err)
	}
}

func TestInvestorRepository_GetByIDCached(t *testing.T) {
	next := investormock.NewRepository(t)
	repo := NewInvestorRepository(next, newStore())

	next.On("GetByID", mock.Anything, int64(4)).Return(investor.Investor{ID: 4, FirmName: "Northwind"}, true, nil).Once()

	for i := 0; i < 2; i++ {
		got, ok, err := repo.GetByID(context.Background(), 4)
		if err != nil || !ok || got.FirmName != "Northwind" {
			t.Fatalf("unexpected investor: %+v ok=%v err=%v", got, ok, err)
		}
	}
}

func TestUnlockRepository_CreateInvalidatesStatus(t *testing.T) {
	next := unlockmock.NewRepository(t)
	repo := NewUnlockRepository(next, newStore())
	ctx := context.Background()
	item := unlock.Unlock{UserID: 1, InvestorID: 5}

	next.On("Exists", mock.Anything, int64(1), int64(5)).Return(false, nil).Once()
	next.On("ListByUser", mock.Anything, int64(1), 20).Return([]unlock.Unlock{}, nil).Once()
	next.On("Create", mock.Anything, item).Return(unlock.Unlock{ID: 8, UserID: 1, InvestorID: 5}, true, nil).Once()
	next.On("ListByUser", mock.Anything, int64(1), 20).Return([]unlock.Unlock{{ID: 8, UserID: 1, InvestorID: 5}}, nil).Once()

	if ok, _ := repo.Exists(ctx, 1, 5); ok {
		t.Fatalf("expected locked before create")
	}
	if ok, _ := repo.Exists(ctx, 1, 5); ok {
		t.Fatalf("expected cached locked status")
	}
	if items, _ := repo.ListByUser(ctx, 1, 20); len(items) != 0 {
		t.Fatalf("expected empty list before create")
	}

	if _, created, err := repo.Create(ctx, item); err != nil || !created {
		t.Fatalf("create: created=%v err=%v", created, err)
	}

	if ok, err := repo.Exists(ctx, 1, 5); err != nil || !ok {
		t.Fatalf("expected unlocked after create: ok=%v err=%v", ok, err)
	}
	if items, _ := repo.ListByUser(ctx, 1, 20); len(items) != 1 {
		t.Fatalf("expected list refreshed after create, got %+v", items)
	}
}

// stallingUnlocks holds the first Exists call after it has read storage,
// until release is closed.
type stallingUnlocks struct {
	unlock.Repository
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func (s *stallingUnlocks) Exists(ctx context.Context, userID, investorID int64) (bool, error) {
	ok, err := s.Repository.Exists(ctx, userID, investorID)
	s.once.Do(func() {
		close(s.read)
		<-s.release
	})
	return ok, err
}

func TestUnlockRepository_CreateDuringStatusRead(t *testing.T) {
	next := &stallingUnlocks{
		Repository: memory.NewUnlockRepository(nil),
		read:       make(chan struct{}),
		release:    make(chan struct{}),
	}
	repo := NewUnlockRepository(next, newStore())
	ctx := context.Background()

	before := make(chan bool, 1)
	go func() {
		ok, _ := repo.Exists(ctx, 1, 5)
		before <- ok
	}()

	<-next.read
	if _, created, err := repo.Create(ctx, unlock.Unlock{UserID: 1, InvestorID: 5}); err != nil || !created {
		t.Fatalf("create: created=%v err=%v", created, err)
	}
	close(next.release)

	if ok := <-before; ok {
		t.Fatalf("read that started before the unlock should report locked")
	}
	ok, err := repo.Exists(ctx, 1, 5)
	if err != nil || !ok {
		t.Fatalf("Exists after unlock = %v, %v", ok, err)
	}
}
