// Package introspect resolves access tokens through the account service's
// introspection endpoint. The endpoint answers with the member's opaque user
// token, which is decoded locally with the user codec.
package introspect

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
	"github.com/riskibarqy/proconnect-api/internal/platform/cache"
	"github.com/riskibarqy/proconnect-api/internal/platform/idcodec"
	"github.com/riskibarqy/proconnect-api/internal/platform/logging"
	"github.com/riskibarqy/proconnect-api/internal/platform/resilience"
	"github.com/riskibarqy/proconnect-api/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultTimeout  = 3 * time.Second
	defaultCacheTTL = 30 * time.Second
	maxCacheEntries = 10_000
	maxResponseSize = 1 << 20
)

var errTransient = crerr.New("introspection transient failure")

type Config struct {
	BaseURL        string
	Path           string
	AdminKey       string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CircuitEnabled bool
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	introspectURL  string
	adminKey       string
	users          *idcodec.Codec
	principals     *cache.Store
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	logger         *logging.Logger
}

// NewClient expects users to be the user-kind codec. A nil httpClient gets
// one with cfg.Timeout.
func NewClient(httpClient *http.Client, cfg Config, users *idcodec.Codec, logger *logging.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" && !isAbsoluteURL(cfg.Path) {
		return nil, crerr.New("introspection base url is required")
	}
	if users == nil {
		return nil, crerr.New("user codec is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	logger = logger.With("component", "introspect")
	breakerCfg := cfg.CircuitBreaker
	breakerCfg.IsFailure = isCircuitFailure
	breakerCfg.OnStateChange = func(from, to resilience.CircuitState) {
		logger.Warn("introspection circuit state changed", "from", string(from), "to", string(to))
	}

	return &Client{
		httpClient:     httpClient,
		introspectURL:  buildURL(cfg.BaseURL, cfg.Path),
		adminKey:       strings.TrimSpace(cfg.AdminKey),
		users:          users,
		principals:     cache.NewStore(cache.Options{TTL: ttl, MaxEntries: maxCacheEntries}),
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: cfg.CircuitEnabled,
		logger:         logger,
	}, nil
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	// Keyed by digest so raw credentials never sit in memory longer than the call.
	return cache.GetOrLoad(ctx, c.principals, hashToken(token), func(ctx context.Context) (user.Principal, error) {
		return c.introspect(ctx, token)
	})
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	if !c.circuitEnabled {
		return c.call(ctx, token)
	}

	var principal user.Principal
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		principal, err = c.call(ctx, token)
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return user.Principal{}, fmt.Errorf("%w: introspection circuit open", usecase.ErrDependencyUnavailable)
	}
	return principal, err
}

func (c *Client) call(ctx context.Context, token string) (user.Principal, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(introspectRequest{Token: token}); err != nil {
		return user.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, strings.NewReader(buf.String()))
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return user.Principal{}, crerr.Wrap(ctxErr, "introspection request canceled")
		}
		return user.Principal{}, fmt.Errorf("%w: %w: %v", usecase.ErrDependencyUnavailable, errTransient, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %w: read introspect response: %v", usecase.ErrDependencyUnavailable, errTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		// The account service rejected our admin key, not the member.
		c.logger.ErrorContext(ctx, "introspection rejected admin key", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: introspection forbidden", usecase.ErrDependencyUnavailable)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "introspection unavailable", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: %w: status %d", usecase.ErrDependencyUnavailable, errTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return user.Principal{}, crerr.Newf("introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "unmarshal introspect response")
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}

	userID, err := c.users.Decode(decoded.UserID)
	if err != nil || userID == 0 {
		c.logger.WarnContext(ctx, "introspection returned undecodable user id")
		return user.Principal{}, fmt.Errorf("%w: invalid user id", usecase.ErrUnauthorized)
	}

	return user.Principal{UserID: userID, Email: decoded.Email}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func isCircuitFailure(err error) bool {
	return errors.Is(err, errTransient)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func isAbsoluteURL(path string) bool {
	path = strings.TrimSpace(path)
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if isAbsoluteURL(path) {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
