package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
	usermock "github.com/riskibarqy/proconnect-api/internal/mocks/domain/user"
	"github.com/riskibarqy/proconnect-api/internal/platform/idcodec"
	"github.com/stretchr/testify/mock"
)

var testCreatedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func testCodecs() Codecs {
	return NewCodecs(idcodec.MustNew(idcodec.Config{Secret: "usecase-test"}))
}

func mustToken(t *testing.T, codec *idcodec.Codec, id int64) string {
	t.Helper()
	token, err := codec.Encode(id)
	if err != nil {
		t.Fatalf("encode %d: %v", id, err)
	}
	return token
}

func testProfile(id int64) user.Profile {
	return user.Profile{
		ID:        id,
		FullName:  fmt.Sprintf("Member %d", id),
		Headline:  "Founder",
		Company:   "Acme",
		Location:  "Jakarta",
		CreatedAt: testCreatedAt,
	}
}

func TestProfileService_GetProfile_Success(t *testing.T) {
	t.Parallel()

	codecs := testCodecs()
	repo := usermock.NewRepository(t)
	service := NewProfileService(repo, codecs, 4)

	token := mustToken(t, codecs.User(), 7)
	repo.On("GetByID", mock.Anything, int64(7)).Return(testProfile(7), true, nil).Once()

	got, err := service.GetProfile(context.Background(), token)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}

	want := ProfileView{
		ID:        token,
		FullName:  "Member 7",
		Headline:  "Founder",
		Company:   "Acme",
		Location:  "Jakarta",
		CreatedAt: testCreatedAt,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected profile view (-want +got):\n%s", diff)
	}
}

func TestProfileService_GetProfile_InvalidTokenLooksLikeMissingRow(t *testing.T) {
	t.Parallel()

	codecs := testCodecs()
	repo := usermock.NewRepository(t)
	service := NewProfileService(repo, codecs, 4)

	missingToken := mustToken(t, codecs.User(), 404)
	repo.On("GetByID", mock.Anything, int64(404)).Return(user.Profile{}, false, nil).Once()

	_, missingErr := service.GetProfile(context.Background(), missingToken)
	if !errors.Is(missingErr, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing row, got %v", missingErr)
	}

	validToken := mustToken(t, codecs.User(), 7)
	for _, token := range []string{"", "not-a-token!!", missingToken[:len(missingToken)-1], "............", " " + validToken, validToken + "\n"} {
		_, err := service.GetProfile(context.Background(), token)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for %q, got %v", token, err)
		}
		if err.Error() != missingErr.Error() {
			t.Fatalf("invalid token message %q differs from missing row message %q", err.Error(), missingErr.Error())
		}
	}
}

func TestProfileService_GetProfile_RepositoryError(t *testing.T) {
	t.Parallel()

	codecs := testCodecs()
	repo := usermock.NewRepository(t)
	service := NewProfileService(repo, codecs, 4)

	repo.On("GetByID", mock.Anything, int64(3)).Return(user.Profile{}, false, errors.New("connection reset")).Once()

	_, err := service.GetProfile(context.Background(), mustToken(t, codecs.User(), 3))
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected repository failure, got %v", err)
	}
}

func TestProfileService_GetOwnProfile(t *testing.T) {
	t.Parallel()

	codecs := testCodecs()
	repo := usermock.NewRepository(t)
	service := NewProfileService(repo, codecs, 4)

	if _, err := service.GetOwnProfile(context.Background(), user.Principal{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty principal, got %v", err)
	}

	repo.On("GetByID", mock.Anything, int64(11)).Return(testProfile(11), true, nil).Once()
	got, err := service.GetOwnProfile(context.Background(), user.Principal{UserID: 11, Email: "m11@example.com"})
	if err != nil {
		t.Fatalf("get own profile: %v", err)
	}
	if got.ID != mustToken(t, codecs.User(), 11) {
		t.Fatalf("expected opaque id in view, got %q", got.ID)
	}
}

func TestProfileService_LookupProfiles_OrderDedupAndMissing(t *testing.T) {
	t.Parallel()

	codecs := testCodecs()
	repo := usermock.NewRepository(t)
	service := NewProfileService(repo, codecs, 4)

	t5 := mustToken(t, codecs.User(), 5)
	t1 := mustToken(t, codecs.User(), 1)
	t2 := mustToken(t, codecs.User(), 2)
	t99 := mustToken(t, codecs.User(), 99)

	repo.
		On("GetByIDs", mock.Anything, []int64{5, 99, 1, 2}).
		Return([]user.Profile{testProfile(1), testProfile(2), testProfile(5)}, nil).
		Once()

	got, err := service.LookupProfiles(context.Background(), []string{t5, "bad", t99, t1, t5, t2})
	if err != nil {
		t.Fatalf("lookup profiles: %v", err)
	}

	gotIDs := make([]string, 0, len(got.Profiles))
	for _, item := range got.Profiles {
		gotIDs = append(gotIDs, item.ID)
	}
	if diff := cmp.Diff([]string{t5, t1, t2}, gotIDs); diff != "" {
		t.Fatalf("unexpected profile order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"bad", t99}, got.Missing); diff != "" {
		t.Fatalf("unexpected missing tokens (-want +got):\n%s", diff)
	}
}

func TestProfileService_LookupProfiles_ChunksAcrossWorkers(t *testing.T) {
	t.Parallel()

	codecs := testCodecs()
	repo := usermock.NewRepository(t)
	service := NewProfileService(repo, codecs, 2)

	tokens := make([]string, 0, 45)
	for id := int64(1); id <= 45; id++ {
		tokens = append(tokens, mustToken(t, codecs.User(), id))
	}

	repo.
		On("GetByIDs", mock.Anything, mock.AnythingOfType("[]int64")).
		Return(func(_ context.Context, ids []int64) ([]user.Profile, error) {
			if len(ids) > lookupChunkSize {
				return nil, fmt.Errorf("chunk too large: %d", len(ids))
			}
			out := make([]user.Profile, 0, len(ids))
			for _, id := range ids {
				out = append(out, testProfile(id))
			}
			return out, nil
		}).
		Times(3)

	got, err := service.LookupProfiles(context.Background(), tokens)
	if err != nil {
		t.Fatalf("lookup profiles: %v", err)
	}
	if len(got.Profiles) != 45 || len(got.Missing) != 0 {
		t.Fatalf("unexpected lookup result: profiles=%d missing=%d", len(got.Profiles), len(got.Missing))
	}
	for i, item := range got.Profiles {
		if item.ID != tokens[i] {
			t.Fatalf("profile %d out of request order", i)
		}
	}
}

func TestProfileService_LookupProfiles_Limits(t *testing.T) {
	t.Parallel()

	service := NewProfileService(usermock.NewRepository(t), testCodecs(), 4)

	if _, err := service.LookupProfiles(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty lookup, got %v", err)
	}
	tooMany := make([]string, MaxLookupTokens+1)
	if _, err := service.LookupProfiles(context.Background(), tooMany); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized lookup, got %v", err)
	}
}

func TestProfileService_LookupProfiles_AllInvalidSkipsRepository(t *testing.T) {
	t.Parallel()

	service := NewProfileService(usermock.NewRepository(t), testCodecs(), 4)

	padded := " " + mustToken(t, testCodecs().User(), 7)
	got, err := service.LookupProfiles(context.Background(), []string{"nope", "also-nope", "nope", padded})
	if err != nil {
		t.Fatalf("lookup profiles: %v", err)
	}
	if len(got.Profiles) != 0 {
		t.Fatalf("expected no profiles, got %d", len(got.Profiles))
	}
	if diff := cmp.Diff([]string{"nope", "also-nope", padded}, got.Missing); diff != "" {
		t.Fatalf("unexpected missing tokens (-want +got):\n%s", diff)
	}
}

func TestProfileService_LookupProfiles_RepositoryError(t *testing.T) {
	t.Parallel()

	codecs := testCodecs()
	repo := usermock.NewRepository(t)
	service := NewProfileService(repo, codecs, 4)

	repo.On("GetByIDs", mock.Anything, []int64{8}).Return(nil, errors.New("db down")).Once()

	if _, err := service.LookupProfiles(context.Background(), []string{mustToken(t, codecs.User(), 8)}); err == nil {
		t.Fatalf("expected repository error")
	}
}
