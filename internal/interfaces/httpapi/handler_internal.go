package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) EncodeIDs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EncodeIDs")
	defer span.End()

	var req encodeIDsRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.tokenService.Encode(ctx, req.Kind, req.IDs)
	if err != nil {
		h.logFailure(ctx, "encode ids failed", err, "kind", req.Kind, "count", len(req.IDs))
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, idBatchDTO[encodedIDDTO]{
		Kind:  strings.ToLower(strings.TrimSpace(req.Kind)),
		Items: encodedIDsToDTO(items),
	})
}

func (h *Handler) DecodeIDs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DecodeIDs")
	defer span.End()

	var req decodeIDsRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.tokenService.Decode(ctx, req.Kind, req.Tokens)
	if err != nil {
		h.logFailure(ctx, "decode ids failed", err, "kind", req.Kind, "count", len(req.Tokens))
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, idBatchDTO[decodedTokenDTO]{
		Kind:  strings.ToLower(strings.TrimSpace(req.Kind)),
		Items: decodedTokensToDTO(items),
	})
}
