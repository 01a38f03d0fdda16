package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/proconnect-api/internal/usecase"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfile")
	defer span.End()

	token := r.PathValue("userID")
	profile, err := h.profileService.GetProfile(ctx, token)
	if err != nil {
		h.logFailure(ctx, "get profile failed", err, "user_token", token)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}

func (h *Handler) LookupProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LookupProfiles")
	defer span.End()

	var req lookupProfilesRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.profileService.LookupProfiles(ctx, req.IDs)
	if err != nil {
		h.logFailure(ctx, "lookup profiles failed", err, "count", len(req.IDs))
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lookupToDTO(result))
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	profile, err := h.profileService.GetOwnProfile(ctx, principal)
	if err != nil {
		h.logFailure(ctx, "get own profile failed", err, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, meDTO{
		Profile: profileToDTO(profile),
		Email:   principal.Email,
	})
}
