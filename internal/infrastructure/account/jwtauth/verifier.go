// Package jwtauth verifies HS256 access tokens issued by the account
// service. The subject claim carries the member's opaque user token, never
// the database key.
package jwtauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
	"github.com/riskibarqy/proconnect-api/internal/platform/idcodec"
	"github.com/riskibarqy/proconnect-api/internal/usecase"
)

const minSecretLength = 32

type Config struct {
	Secret   string
	Issuer   string
	Audience string
	Leeway   time.Duration
}

type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	key      []byte
	issuer   string
	audience string
	users    *idcodec.Codec
	parser   *jwt.Parser
	now      func() time.Time
}

// NewVerifier expects users to be the user-kind codec.
func NewVerifier(cfg Config, users *idcodec.Codec) (*Verifier, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minSecretLength)
	}
	if users == nil {
		return nil, fmt.Errorf("user codec is required")
	}

	v := &Verifier{
		key:      []byte(cfg.Secret),
		issuer:   strings.TrimSpace(cfg.Issuer),
		audience: strings.TrimSpace(cfg.Audience),
		users:    users,
		now:      time.Now,
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(cfg.Leeway),
		jwt.WithTimeFunc(func() time.Time { return v.now() }),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	v.parser = jwt.NewParser(opts...)

	return v, nil
}

func (v *Verifier) VerifyAccessToken(_ context.Context, raw string) (user.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	var claims Claims
	if _, err := v.parser.ParseWithClaims(raw, &claims, v.keyFunc); err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err)
	}

	userID, err := v.users.Decode(claims.Subject)
	if err != nil || userID == 0 {
		return user.Principal{}, fmt.Errorf("%w: invalid subject", usecase.ErrUnauthorized)
	}

	return user.Principal{UserID: userID, Email: claims.Email}, nil
}

// Issue signs an access token for principal. It backs local tooling and
// tests; production tokens come from the account service.
func (v *Verifier) Issue(principal user.Principal, ttl time.Duration) (string, error) {
	if !principal.Valid() {
		return "", fmt.Errorf("principal is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive")
	}

	subject, err := v.users.Encode(principal.UserID)
	if err != nil {
		return "", fmt.Errorf("encode subject: %w", err)
	}

	now := v.now()
	claims := Claims{
		Email: principal.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.key)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
	}
	return v.key, nil
}
