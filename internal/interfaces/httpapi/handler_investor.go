package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/proconnect-api/internal/usecase"
)

func (h *Handler) GetInvestor(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetInvestor")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	token := r.PathValue("investorID")
	investor, err := h.investorService.GetInvestor(ctx, principal, token)
	if err != nil {
		h.logFailure(ctx, "get investor failed", err, "user_id", principal.UserID, "investor_token", token)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, investorToDTO(investor))
}

func (h *Handler) UnlockInvestor(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnlockInvestor")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	token := r.PathValue("investorID")
	result, err := h.investorService.UnlockInvestor(ctx, principal, token)
	if err != nil {
		h.logFailure(ctx, "unlock investor failed", err, "user_id", principal.UserID, "investor_token", token)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, unlockDTO{
		InvestorID: result.InvestorID,
		UnlockedAt: result.UnlockedAt,
		Created:    result.Created,
	})
}

func (h *Handler) ListMyUnlocks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyUnlocks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.investorService.ListUnlocked(ctx, principal, limit)
	if err != nil {
		h.logFailure(ctx, "list unlocked investors failed", err, "user_id", principal.UserID, "limit", limit)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, unlockedInvestorsToDTO(items))
}
