package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/proconnect-api/internal/platform/idcodec"
)

const MaxTokenBatch = 1000

type EncodedID struct {
	ID    int64
	Token string
	// Error is set instead of Token for ids outside the codec range.
	Error string
}

type DecodedToken struct {
	Token string
	ID    int64
	Valid bool
}

// TokenService converts between keys and tokens for support tooling on the
// internal API.
type TokenService struct {
	codecs Codecs
}

func NewTokenService(codecs Codecs) *TokenService {
	return &TokenService{codecs: codecs}
}

func (s *TokenService) Encode(ctx context.Context, kind string, ids []int64) ([]EncodedID, error) {
	_, span := startUsecaseSpan(ctx, "usecase.TokenService.Encode")
	out, err := s.encode(kind, ids)
	finishSpan(span, err)
	return out, err
}

func (s *TokenService) encode(kind string, ids []int64) ([]EncodedID, error) {
	codec, err := s.codecs.ForKind(kind)
	if err != nil {
		return nil, err
	}
	if err := checkBatchSize(len(ids)); err != nil {
		return nil, err
	}

	out := make([]EncodedID, 0, len(ids))
	for _, id := range ids {
		token, err := codec.Encode(id)
		switch {
		case err == nil:
			out = append(out, EncodedID{ID: id, Token: token})
		case errors.Is(err, idcodec.ErrOutOfRange):
			out = append(out, EncodedID{ID: id, Error: "id out of range"})
		default:
			return nil, fmt.Errorf("encode %s id: %w", kind, err)
		}
	}
	return out, nil
}

func (s *TokenService) Decode(ctx context.Context, kind string, tokens []string) ([]DecodedToken, error) {
	_, span := startUsecaseSpan(ctx, "usecase.TokenService.Decode")
	out, err := s.decode(kind, tokens)
	finishSpan(span, err)
	return out, err
}

func (s *TokenService) decode(kind string, tokens []string) ([]DecodedToken, error) {
	codec, err := s.codecs.ForKind(kind)
	if err != nil {
		return nil, err
	}
	if err := checkBatchSize(len(tokens)); err != nil {
		return nil, err
	}

	out := make([]DecodedToken, 0, len(tokens))
	for _, token := range tokens {
		id, err := codec.Decode(token)
		if err != nil {
			out = append(out, DecodedToken{Token: token})
			continue
		}
		out = append(out, DecodedToken{Token: token, ID: id, Valid: true})
	}
	return out, nil
}

func checkBatchSize(n int) error {
	if n == 0 {
		return fmt.Errorf("%w: at least one value is required", ErrInvalidInput)
	}
	if n > MaxTokenBatch {
		return fmt.Errorf("%w: at most %d values per request, got %d", ErrInvalidInput, MaxTokenBatch, n)
	}
	return nil
}
