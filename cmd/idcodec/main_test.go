package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/proconnect-api/internal/platform/idcodec"
	"github.com/riskibarqy/proconnect-api/internal/usecase"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("IDCODEC_SECRET", "")
	t.Setenv("IDCODEC_ALPHABET", "")
	t.Setenv("AUTH_JWT_SECRET", "")

	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs(append([]string{"--secret", "cli-test"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestEncodeDecode(t *testing.T) {
	codecs := usecase.NewCodecs(idcodec.MustNew(idcodec.Config{Secret: "cli-test"}))
	want, err := codecs.Investor().Encode(42)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := execute(t, "encode", "--kind", "investor", "42")
	if err != nil {
		t.Fatalf("encode command: %v", err)
	}
	if strings.TrimSpace(out) != want {
		t.Fatalf("expected %q, got %q", want, out)
	}

	out, err = execute(t, "decode", "--kind", "investor", want)
	if err != nil {
		t.Fatalf("decode command: %v", err)
	}
	if strings.TrimSpace(out) != "42" {
		t.Fatalf("expected 42, got %q", out)
	}
}

func TestDecode_InvalidPrintsAndFails(t *testing.T) {
	codecs := usecase.NewCodecs(idcodec.MustNew(idcodec.Config{Secret: "cli-test"}))
	good, err := codecs.User().Encode(7)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := execute(t, "decode", good, "not-a-token!!", " "+good)
	if !errors.Is(err, errPartialFailure) {
		t.Fatalf("expected partial failure, got %v", err)
	}
	if out != "7\ninvalid\ninvalid\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEncode_RejectsBadInput(t *testing.T) {
	out, err := execute(t, "encode", "-1", "abc")
	if !errors.Is(err, errPartialFailure) {
		t.Fatalf("expected partial failure, got %v", err)
	}
	if out != "invalid\ninvalid\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestUnknownKind(t *testing.T) {
	if _, err := execute(t, "encode", "--kind", "company", "1"); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTokenCommand(t *testing.T) {
	out, err := execute(t, "token", "--user-id", "3", "--email", "citra@example.com")
	if err != nil {
		t.Fatalf("token command: %v", err)
	}
	if parts := strings.Split(strings.TrimSpace(out), "."); len(parts) != 3 {
		t.Fatalf("expected compact JWT, got %q", out)
	}
}
