package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/users/{userID}", handler.GetProfile)
	mux.HandleFunc("POST /v1/users/lookup", handler.LookupProfiles)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMe)))
	mux.Handle("GET /v1/me/unlocks", RequireAuth(verifier, http.HandlerFunc(handler.ListMyUnlocks)))
	mux.Handle("GET /v1/investors/{investorID}", RequireAuth(verifier, http.HandlerFunc(handler.GetInvestor)))
	mux.Handle("POST /v1/investors/{investorID}/unlock", RequireAuth(verifier, http.HandlerFunc(handler.UnlockInvestor)))
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalToken string) {
	mux.Handle("POST /v1/internal/ids/encode", RequireInternalToken(internalToken, http.HandlerFunc(handler.EncodeIDs)))
	mux.Handle("POST /v1/internal/ids/decode", RequireInternalToken(internalToken, http.HandlerFunc(handler.DecodeIDs)))
}
