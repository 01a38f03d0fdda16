package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/proconnect-api/internal/domain/unlock"
)

func TestSeedIsValid(t *testing.T) {
	for _, item := range SeedUsers() {
		if err := item.Validate(); err != nil {
			t.Fatalf("seed user %d: %v", item.ID, err)
		}
	}
	for _, item := range SeedInvestors() {
		if err := item.Validate(); err != nil {
			t.Fatalf("seed investor %d: %v", item.ID, err)
		}
	}
	for _, item := range SeedUnlocks() {
		if err := item.Validate(); err != nil {
			t.Fatalf("seed unlock %d: %v", item.ID, err)
		}
	}
}

func TestUserRepository_GetByIDsSkipsMissing(t *testing.T) {
	repo := NewUserRepository(SeedUsers())

	got, err := repo.GetByIDs(context.Background(), []int64{3, 99, 1})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Fatalf("unexpected profiles: %+v", got)
	}

	if _, ok, _ := repo.GetByID(context.Background(), 99); ok {
		t.Fatalf("expected missing user 99")
	}
}

func TestInvestorRepository_ListByIDs(t *testing.T) {
	repo := NewInvestorRepository(SeedInvestors())

	got, err := repo.ListByIDs(context.Background(), []int64{2, 7})
	if err != nil {
		t.Fatalf("list by ids: %v", err)
	}
	if len(got) != 1 || got[0].FirmName != "Archipelago Capital" {
		t.Fatalf("unexpected investors: %+v", got)
	}
}

func TestUnlockRepository_CreateIsIdempotent(t *testing.T) {
	repo := NewUnlockRepository(SeedUnlocks())
	ctx := context.Background()
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	first, created, err := repo.Create(ctx, unlock.Unlock{UserID: 2, InvestorID: 1, CreatedAt: at})
	if err != nil || !created {
		t.Fatalf("first create: created=%v err=%v", created, err)
	}
	if first.ID != 2 {
		t.Fatalf("expected id after seed, got %d", first.ID)
	}

	second, created, err := repo.Create(ctx, unlock.Unlock{UserID: 2, InvestorID: 1, CreatedAt: at.Add(time.Hour)})
	if err != nil || created {
		t.Fatalf("second create: created=%v err=%v", created, err)
	}
	if second != first {
		t.Fatalf("expected stored unlock back, got %+v", second)
	}

	ok, err := repo.Exists(ctx, 2, 1)
	if err != nil || !ok {
		t.Fatalf("expected unlock to exist: ok=%v err=%v", ok, err)
	}
}

func TestUnlockRepository_ConcurrentCreateSingleRow(t *testing.T) {
	repo := NewUnlockRepository(nil)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := repo.Create(context.Background(), unlock.Unlock{UserID: 5, InvestorID: 6})
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("expected exactly one created unlock, got %d", created)
	}
}

func TestUnlockRepository_ListByUserNewestFirst(t *testing.T) {
	repo := NewUnlockRepository(nil)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	for i, investorID := range []int64{10, 11, 12} {
		if _, _, err := repo.Create(ctx, unlock.Unlock{UserID: 1, InvestorID: investorID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, _, err := repo.Create(ctx, unlock.Unlock{UserID: 2, InvestorID: 10, CreatedAt: base}); err != nil {
		t.Fatalf("create other user: %v", err)
	}

	got, err := repo.ListByUser(ctx, 1, 2)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(got) != 2 || got[0].InvestorID != 12 || got[1].InvestorID != 11 {
		t.Fatalf("unexpected unlocks: %+v", got)
	}
}
