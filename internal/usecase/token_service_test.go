package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestTokenService_EncodeDecode(t *testing.T) {
	t.Parallel()

	codecs := testCodecs()
	service := NewTokenService(codecs)

	encoded, err := service.Encode(context.Background(), "User", []int64{1, -5, 987654321})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(encoded) != 3 {
		t.Fatalf("expected 3 results, got %d", len(encoded))
	}
	if encoded[0].Token != mustToken(t, codecs.User(), 1) {
		t.Fatalf("unexpected token for 1: %q", encoded[0].Token)
	}
	if encoded[1].Token != "" || encoded[1].Error == "" {
		t.Fatalf("expected per-item error for negative id, got %+v", encoded[1])
	}

	padded := " " + encoded[2].Token
	decoded, err := service.Decode(context.Background(), KindUser, []string{encoded[2].Token, "not-a-token!!", padded})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !decoded[0].Valid || decoded[0].ID != 987654321 {
		t.Fatalf("unexpected decode result: %+v", decoded[0])
	}
	if decoded[1].Valid || decoded[1].ID != 0 || decoded[1].Token != "not-a-token!!" {
		t.Fatalf("expected invalid entry, got %+v", decoded[1])
	}
	if decoded[2].Valid || decoded[2].ID != 0 || decoded[2].Token != padded {
		t.Fatalf("expected padded token to be rejected and echoed as sent, got %+v", decoded[2])
	}
}

func TestTokenService_KindsDoNotShareTokens(t *testing.T) {
	t.Parallel()

	service := NewTokenService(testCodecs())

	users, err := service.Encode(context.Background(), KindUser, []int64{42})
	if err != nil {
		t.Fatalf("encode user: %v", err)
	}
	investors, err := service.Encode(context.Background(), KindInvestor, []int64{42})
	if err != nil {
		t.Fatalf("encode investor: %v", err)
	}
	if users[0].Token == investors[0].Token {
		t.Fatalf("expected kind-specific tokens")
	}
}

func TestTokenService_Validation(t *testing.T) {
	t.Parallel()

	service := NewTokenService(testCodecs())

	if _, err := service.Encode(context.Background(), "company", []int64{1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown kind, got %v", err)
	}
	if _, err := service.Decode(context.Background(), KindUser, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}
	if _, err := service.Encode(context.Background(), KindUser, make([]int64, MaxTokenBatch+1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized batch, got %v", err)
	}
}
