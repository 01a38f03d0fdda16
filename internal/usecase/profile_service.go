package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
	"github.com/riskibarqy/proconnect-api/internal/platform/idcodec"
	"go.opentelemetry.io/otel/attribute"
)

const (
	MaxLookupTokens = 100
	lookupChunkSize = 20
)

// ProfileView is a profile as clients see it: keyed by token, never by row id.
type ProfileView struct {
	ID        string
	FullName  string
	Headline  string
	Company   string
	Location  string
	AvatarURL string
	CreatedAt time.Time
}

type LookupResult struct {
	Profiles []ProfileView
	// Missing lists tokens that were malformed or matched no profile, in request order.
	Missing []string
}

type ProfileService struct {
	users   user.Repository
	codec   *idcodec.Codec
	workers int
}

func NewProfileService(users user.Repository, codecs Codecs, workers int) *ProfileService {
	if workers < 1 {
		workers = 1
	}
	return &ProfileService{
		users:   users,
		codec:   codecs.User(),
		workers: workers,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, token string) (ProfileView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetProfile")
	view, err := s.getProfile(ctx, token)
	finishSpan(span, err)
	return view, err
}

func (s *ProfileService) getProfile(ctx context.Context, token string) (ProfileView, error) {
	userID, err := decodeResourceID(s.codec, KindUser, token)
	if err != nil {
		return ProfileView{}, err
	}

	profile, exists, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("get user profile: %w", err)
	}
	if !exists {
		return ProfileView{}, notFound(KindUser)
	}

	return s.toView(profile)
}

func (s *ProfileService) GetOwnProfile(ctx context.Context, principal user.Principal) (ProfileView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetOwnProfile")
	view, err := s.getOwnProfile(ctx, principal)
	finishSpan(span, err)
	return view, err
}

func (s *ProfileService) getOwnProfile(ctx context.Context, principal user.Principal) (ProfileView, error) {
	if !principal.Valid() {
		return ProfileView{}, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}

	profile, exists, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("get own profile: %w", err)
	}
	if !exists {
		return ProfileView{}, notFound(KindUser)
	}

	return s.toView(profile)
}

// LookupProfiles resolves up to MaxLookupTokens tokens. Repeated tokens are
// collapsed; unresolvable ones are reported in Missing instead of failing the batch.
func (s *ProfileService) LookupProfiles(ctx context.Context, tokens []string) (LookupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.LookupProfiles", attribute.Int("lookup.tokens", len(tokens)))
	result, err := s.lookupProfiles(ctx, tokens)
	finishSpan(span, err)
	return result, err
}

func (s *ProfileService) lookupProfiles(ctx context.Context, tokens []string) (LookupResult, error) {
	if len(tokens) == 0 {
		return LookupResult{}, fmt.Errorf("%w: ids is required", ErrInvalidInput)
	}
	if len(tokens) > MaxLookupTokens {
		return LookupResult{}, fmt.Errorf("%w: at most %d ids per lookup, got %d", ErrInvalidInput, MaxLookupTokens, len(tokens))
	}

	ordered := make([]string, 0, len(tokens))
	idByToken := make(map[string]int64, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	missing := make([]string, 0)
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}

		id, err := s.codec.Decode(token)
		if err != nil {
			missing = append(missing, token)
			continue
		}
		ordered = append(ordered, token)
		idByToken[token] = id
	}

	profiles, err := s.fetchProfiles(ctx, ordered, idByToken)
	if err != nil {
		return LookupResult{}, err
	}

	result := LookupResult{
		Profiles: make([]ProfileView, 0, len(ordered)),
		Missing:  missing,
	}
	for _, token := range ordered {
		profile, ok := profiles[idByToken[token]]
		if !ok {
			result.Missing = append(result.Missing, token)
			continue
		}
		view, err := s.toView(profile)
		if err != nil {
			return LookupResult{}, err
		}
		result.Profiles = append(result.Profiles, view)
	}
	result.Missing = orderLike(tokens, result.Missing)

	return result, nil
}

// fetchProfiles splits the ids into chunks and runs one batch query per chunk
// on a bounded worker pool.
func (s *ProfileService) fetchProfiles(ctx context.Context, tokens []string, idByToken map[string]int64) (map[int64]user.Profile, error) {
	out := make(map[int64]user.Profile, len(tokens))
	if len(tokens) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(tokens))
	for _, token := range tokens {
		ids = append(ids, idByToken[token])
	}
	chunks := chunkIDs(ids, lookupChunkSize)

	workers := s.workers
	if workers > len(chunks) {
		workers = len(chunks)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create lookup worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	for _, chunk := range chunks {
		chunk := chunk
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}

			rows, err := s.users.GetByIDs(ctx, chunk)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("get user profiles: %w", err)
				}
				return
			}
			for _, row := range rows {
				out[row.ID] = row
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit lookup to worker pool: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProfileService) toView(profile user.Profile) (ProfileView, error) {
	token, err := encodeResourceID(s.codec, KindUser, profile.ID)
	if err != nil {
		return ProfileView{}, err
	}
	return ProfileView{
		ID:        token,
		FullName:  profile.FullName,
		Headline:  profile.Headline,
		Company:   profile.Company,
		Location:  profile.Location,
		AvatarURL: profile.AvatarURL,
		CreatedAt: profile.CreatedAt,
	}, nil
}

func chunkIDs(ids []int64, size int) [][]int64 {
	out := make([][]int64, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}

// orderLike sorts subset by first appearance in reference.
func orderLike(reference, subset []string) []string {
	if len(subset) < 2 {
		return subset
	}
	want := make(map[string]struct{}, len(subset))
	for _, item := range subset {
		want[item] = struct{}{}
	}
	out := make([]string, 0, len(subset))
	for _, item := range reference {
		if _, ok := want[item]; ok {
			out = append(out, item)
			delete(want, item)
		}
	}
	return out
}
