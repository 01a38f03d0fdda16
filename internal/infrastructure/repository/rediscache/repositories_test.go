package rediscache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/proconnect-api/internal/domain/investor"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
	investormock "github.com/riskibarqy/proconnect-api/internal/mocks/domain/investor"
	usermock "github.com/riskibarqy/proconnect-api/internal/mocks/domain/user"
	"github.com/riskibarqy/proconnect-api/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

var testCreatedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func testOptions() Options {
	return Options{Prefix: "test:", TTL: time.Minute, Logger: logging.NewNop()}
}

func TestUserRepository_GetByIDReadThrough(t *testing.T) {
	mr, client := newRedis(t)
	next := usermock.NewRepository(t)
	repo := NewUserRepository(next, client, testOptions())

	profile := user.Profile{ID: 7, FullName: "Ayu Lestari", Headline: "Founder", CreatedAt: testCreatedAt}
	next.On("GetByID", mock.Anything, int64(7)).Return(profile, true, nil).Once()

	for i := 0; i < 2; i++ {
		got, ok, err := repo.GetByID(context.Background(), 7)
		if err != nil || !ok {
			t.Fatalf("GetByID: ok=%v err=%v", ok, err)
		}
		if got.FullName != "Ayu Lestari" || !got.CreatedAt.Equal(testCreatedAt) {
			t.Fatalf("unexpected profile: %+v", got)
		}
	}

	if !mr.Exists("test:user:7") {
		t.Fatalf("expected payload stored under prefixed key")
	}
	if ttl := mr.TTL("test:user:7"); ttl != time.Minute {
		t.Fatalf("unexpected ttl: %s", ttl)
	}
}

func TestUserRepository_CachesMissingRows(t *testing.T) {
	_, client := newRedis(t)
	next := usermock.NewRepository(t)
	repo := NewUserRepository(next, client, testOptions())

	next.On("GetByID", mock.Anything, int64(404)).Return(user.Profile{}, false, nil).Once()

	for i := 0; i < 2; i++ {
		if _, ok, err := repo.GetByID(context.Background(), 404); err != nil || ok {
			t.Fatalf("GetByID: ok=%v err=%v", ok, err)
		}
	}
}

func TestUserRepository_ExpiredEntryReloads(t *testing.T) {
	mr, client := newRedis(t)
	next := usermock.NewRepository(t)
	repo := NewUserRepository(next, client, testOptions())

	next.On("GetByID", mock.Anything, int64(3)).Return(user.Profile{ID: 3, FullName: "Citra"}, true, nil).Twice()

	if _, _, err := repo.GetByID(context.Background(), 3); err != nil {
		t.Fatalf("first load: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, _, err := repo.GetByID(context.Background(), 3); err != nil {
		t.Fatalf("reload: %v", err)
	}
}

func TestUserRepository_RedisDownFallsThrough(t *testing.T) {
	mr, client := newRedis(t)
	next := usermock.NewRepository(t)
	repo := NewUserRepository(next, client, testOptions())
	mr.SetError("LOADING redis is loading the dataset in memory")

	next.On("GetByID", mock.Anything, int64(1)).Return(user.Profile{ID: 1, FullName: "Ayu"}, true, nil).Once()
	next.On("GetByIDs", mock.Anything, []int64{1, 2}).Return([]user.Profile{{ID: 1, FullName: "Ayu"}}, nil).Once()

	got, ok, err := repo.GetByID(context.Background(), 1)
	if err != nil || !ok || got.FullName != "Ayu" {
		t.Fatalf("expected fallback read, got %+v ok=%v err=%v", got, ok, err)
	}
	items, err := repo.GetByIDs(context.Background(), []int64{1, 2})
	if err != nil || len(items) != 1 {
		t.Fatalf("expected fallback batch read, got %+v err=%v", items, err)
	}
}

func TestUserRepository_GetByIDsMixesHitsAndMisses(t *testing.T) {
	_, client := newRedis(t)
	next := usermock.NewRepository(t)
	repo := NewUserRepository(next, client, testOptions())

	next.On("GetByID", mock.Anything, int64(2)).Return(user.Profile{ID: 2, FullName: "Budi"}, true, nil).Once()
	next.On("GetByIDs", mock.Anything, []int64{5, 9}).Return([]user.Profile{{ID: 5, FullName: "Eko"}}, nil).Once()

	if _, _, err := repo.GetByID(context.Background(), 2); err != nil {
		t.Fatalf("warm: %v", err)
	}

	got, err := repo.GetByIDs(context.Background(), []int64{5, 2, 9, 5})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 2 || got[0].ID != 5 || got[1].ID != 2 {
		t.Fatalf("unexpected profiles: %+v", got)
	}

	// 9 is now cached as missing and 5 as present.
	got, err = repo.GetByIDs(context.Background(), []int64{9, 5})
	if err != nil || len(got) != 1 || got[0].ID != 5 {
		t.Fatalf("unexpected cached batch: %+v err=%v", got, err)
	}
}

func TestUserRepository_PropagatesRepositoryError(t *testing.T) {
	_, client := newRedis(t)
	next := usermock.NewRepository(t)
	repo := NewUserRepository(next, client, testOptions())

	next.On("GetByID", mock.Anything, int64(8)).Return(user.Profile{}, false, errors.New("db down")).Once()

	if _, _, err := repo.GetByID(context.Background(), 8); err == nil {
		t.Fatalf("expected repository error")
	}
}

func TestInvestorRepository_ListByIDs(t *testing.T) {
	_, client := newRedis(t)
	next := investormock.NewRepository(t)
	repo := NewInvestorRepository(next, client, testOptions())

	inv := investor.Investor{ID: 4, FirmName: "Northwind", Stage: investor.StageSeed, Contact: investor.Contact{Email: "deals@northwind.example"}}
	next.On("ListByIDs", mock.Anything, []int64{4}).Return([]investor.Investor{inv}, nil).Once()

	for i := 0; i < 2; i++ {
		got, err := repo.ListByIDs(context.Background(), []int64{4})
		if err != nil || len(got) != 1 {
			t.Fatalf("ListByIDs: %+v err=%v", got, err)
		}
		if got[0].Stage != investor.StageSeed || got[0].Contact.Email != "deals@northwind.example" {
			t.Fatalf("unexpected investor: %+v", got[0])
		}
	}

	got, ok, err := repo.GetByID(context.Background(), 4)
	if err != nil || !ok || got.FirmName != "Northwind" {
		t.Fatalf("expected GetByID served from cache, got %+v ok=%v err=%v", got, ok, err)
	}
}

func TestNewClient(t *testing.T) {
	mr, _ := newRedis(t)

	client, err := NewClient("redis://" + mr.Addr() + "/0")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if _, err := NewClient("http://not-redis"); err == nil {
		t.Fatalf("expected error for non-redis url")
	}
}
