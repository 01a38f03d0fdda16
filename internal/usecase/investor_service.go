package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/proconnect-api/internal/domain/investor"
	"github.com/riskibarqy/proconnect-api/internal/domain/unlock"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
	"github.com/riskibarqy/proconnect-api/internal/platform/idcodec"
	"github.com/riskibarqy/proconnect-api/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const DefaultUnlockListLimit = 20

type ContactView struct {
	Email       string
	Phone       string
	LinkedInURL string
}

type InvestorView struct {
	ID        string
	FirmName  string
	Focus     string
	TicketMin int64
	TicketMax int64
	Stage     string
	Unlocked  bool
	// Contact is nil unless the caller unlocked this investor.
	Contact *ContactView
}

type UnlockView struct {
	InvestorID string
	UnlockedAt time.Time
	Created    bool
}

type UnlockedInvestor struct {
	Investor   InvestorView
	UnlockedAt time.Time
}

type InvestorService struct {
	investors investor.Repository
	unlocks   unlock.Repository
	codec     *idcodec.Codec
	logger    *logging.Logger
	now       func() time.Time
}

func NewInvestorService(investors investor.Repository, unlocks unlock.Repository, codecs Codecs, logger *logging.Logger) *InvestorService {
	if logger == nil {
		logger = logging.Default()
	}
	return &InvestorService{
		investors: investors,
		unlocks:   unlocks,
		codec:     codecs.Investor(),
		logger:    logger,
		now:       time.Now,
	}
}

// GetInvestor returns the investor behind token. Access to contact details is
// decided by the caller's own unlocks; the token only selects the record.
func (s *InvestorService) GetInvestor(ctx context.Context, principal user.Principal, token string) (InvestorView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InvestorService.GetInvestor")
	view, err := s.getInvestor(ctx, principal, token)
	finishSpan(span, err)
	return view, err
}

func (s *InvestorService) getInvestor(ctx context.Context, principal user.Principal, token string) (InvestorView, error) {
	if !principal.Valid() {
		return InvestorView{}, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	investorID, err := decodeResourceID(s.codec, KindInvestor, token)
	if err != nil {
		return InvestorView{}, err
	}

	var (
		item     investor.Investor
		exists   bool
		unlocked bool
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		item, exists, err = s.investors.GetByID(ctx, investorID)
		if err != nil {
			return fmt.Errorf("get investor: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		unlocked, err = s.unlocks.Exists(ctx, principal.UserID, investorID)
		if err != nil {
			return fmt.Errorf("check investor unlock: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return InvestorView{}, err
	}
	if !exists {
		return InvestorView{}, notFound(KindInvestor)
	}

	return s.toView(item, unlocked)
}

// UnlockInvestor is idempotent: unlocking twice returns the original unlock
// with Created=false.
func (s *InvestorService) UnlockInvestor(ctx context.Context, principal user.Principal, token string) (UnlockView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InvestorService.UnlockInvestor")
	view, err := s.unlockInvestor(ctx, principal, token)
	finishSpan(span, err)
	return view, err
}

func (s *InvestorService) unlockInvestor(ctx context.Context, principal user.Principal, token string) (UnlockView, error) {
	if !principal.Valid() {
		return UnlockView{}, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	investorID, err := decodeResourceID(s.codec, KindInvestor, token)
	if err != nil {
		return UnlockView{}, err
	}

	_, exists, err := s.investors.GetByID(ctx, investorID)
	if err != nil {
		return UnlockView{}, fmt.Errorf("get investor: %w", err)
	}
	if !exists {
		return UnlockView{}, notFound(KindInvestor)
	}

	item := unlock.Unlock{
		UserID:     principal.UserID,
		InvestorID: investorID,
		CreatedAt:  s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return UnlockView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored, created, err := s.unlocks.Create(ctx, item)
	if err != nil {
		return UnlockView{}, fmt.Errorf("create investor unlock: %w", err)
	}
	if created {
		s.logger.InfoContext(ctx, "investor unlocked", "user_id", principal.UserID, "investor_id", investorID)
	}

	publicID, err := encodeResourceID(s.codec, KindInvestor, stored.InvestorID)
	if err != nil {
		return UnlockView{}, err
	}
	return UnlockView{
		InvestorID: publicID,
		UnlockedAt: stored.CreatedAt,
		Created:    created,
	}, nil
}

// ListUnlocked returns the caller's unlocked investors, newest unlock first.
func (s *InvestorService) ListUnlocked(ctx context.Context, principal user.Principal, limit int) ([]UnlockedInvestor, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InvestorService.ListUnlocked")
	items, err := s.listUnlocked(ctx, principal, limit)
	finishSpan(span, err)
	return items, err
}

func (s *InvestorService) listUnlocked(ctx context.Context, principal user.Principal, limit int) ([]UnlockedInvestor, error) {
	if !principal.Valid() {
		return nil, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	switch {
	case limit == 0:
		limit = DefaultUnlockListLimit
	case limit < 0 || limit > unlock.MaxListLimit:
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, unlock.MaxListLimit)
	}

	unlocks, err := s.unlocks.ListByUser(ctx, principal.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("list investor unlocks: %w", err)
	}
	if len(unlocks) == 0 {
		return []UnlockedInvestor{}, nil
	}

	ids := make([]int64, 0, len(unlocks))
	for _, item := range unlocks {
		ids = append(ids, item.InvestorID)
	}
	investors, err := s.investors.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list unlocked investors: %w", err)
	}
	byID := make(map[int64]investor.Investor, len(investors))
	for _, item := range investors {
		byID[item.ID] = item
	}

	out := make([]UnlockedInvestor, 0, len(unlocks))
	for _, item := range unlocks {
		inv, ok := byID[item.InvestorID]
		if !ok {
			// Investor removed after the unlock; nothing to show.
			continue
		}
		view, err := s.toView(inv, true)
		if err != nil {
			return nil, err
		}
		out = append(out, UnlockedInvestor{Investor: view, UnlockedAt: item.CreatedAt})
	}

	return out, nil
}

func (s *InvestorService) toView(item investor.Investor, unlocked bool) (InvestorView, error) {
	token, err := encodeResourceID(s.codec, KindInvestor, item.ID)
	if err != nil {
		return InvestorView{}, err
	}

	view := InvestorView{
		ID:        token,
		FirmName:  item.FirmName,
		Focus:     item.Focus,
		TicketMin: item.TicketMin,
		TicketMax: item.TicketMax,
		Stage:     string(item.Stage),
		Unlocked:  unlocked,
	}
	if unlocked {
		view.Contact = &ContactView{
			Email:       item.Contact.Email,
			Phone:       item.Contact.Phone,
			LinkedInURL: item.Contact.LinkedInURL,
		}
	}
	return view, nil
}
