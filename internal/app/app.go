package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/proconnect-api/internal/config"
	"github.com/riskibarqy/proconnect-api/internal/infrastructure/account/introspect"
	"github.com/riskibarqy/proconnect-api/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/proconnect-api/internal/interfaces/httpapi"
	"github.com/riskibarqy/proconnect-api/internal/platform/idcodec"
	"github.com/riskibarqy/proconnect-api/internal/platform/logging"
	"github.com/riskibarqy/proconnect-api/internal/platform/resilience"
	"github.com/riskibarqy/proconnect-api/internal/usecase"
)

// CloseFunc releases resources acquired while building the server.
type CloseFunc func(context.Context) error

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, CloseFunc, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	codecs, err := buildCodecs(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	repos, closeRepos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	verifier, err := buildVerifier(cfg, codecs, logger)
	if err != nil {
		_ = closeRepos(ctx)
		return nil, nil, err
	}

	handler := httpapi.NewHandler(
		usecase.NewProfileService(repos.users, codecs, cfg.LookupWorkers),
		usecase.NewInvestorService(repos.investors, repos.unlocks, codecs, logger),
		usecase.NewTokenService(codecs),
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalAPIToken:   cfg.InternalAPIToken,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, closeRepos, nil
}

func buildCodecs(cfg config.Config, logger *logging.Logger) (usecase.Codecs, error) {
	if cfg.IDCodecSecret == "" {
		logger.Warn("IDCODEC_SECRET is empty, public ids use the built-in default key", "app_env", cfg.AppEnv)
	}

	root, err := idcodec.New(idcodec.Config{
		Alphabet: cfg.IDCodecAlphabet,
		Secret:   cfg.IDCodecSecret,
	})
	if err != nil {
		return usecase.Codecs{}, fmt.Errorf("build id codec: %w", err)
	}

	return usecase.NewCodecs(root), nil
}

func buildVerifier(cfg config.Config, codecs usecase.Codecs, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		verifier, err := jwtauth.NewVerifier(jwtauth.Config{
			Secret:   cfg.AuthJWTSecret,
			Issuer:   cfg.AuthJWTIssuer,
			Audience: cfg.AuthJWTAudience,
			Leeway:   cfg.AuthJWTLeeway,
		}, codecs.User())
		if err != nil {
			return nil, fmt.Errorf("build jwt verifier: %w", err)
		}
		return verifier, nil
	case config.AuthModeIntrospect:
		client, err := introspect.NewClient(nil, introspect.Config{
			BaseURL:        cfg.AuthIntrospectBaseURL,
			Path:           cfg.AuthIntrospectPath,
			AdminKey:       cfg.AuthIntrospectAdminKey,
			Timeout:        cfg.AuthIntrospectTimeout,
			CircuitEnabled: cfg.AuthCircuitEnabled,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				FailureThreshold: cfg.AuthCircuitFailureCount,
				OpenTimeout:      cfg.AuthCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AuthCircuitHalfOpenMaxReq,
			},
		}, codecs.User(), logger)
		if err != nil {
			return nil, fmt.Errorf("build introspection client: %w", err)
		}
		return client, nil
	default:
		return nil, errors.New("unsupported auth mode " + cfg.AuthMode)
	}
}
