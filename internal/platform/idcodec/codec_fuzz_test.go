package idcodec

import (
	"errors"
	"testing"
)

func FuzzCodec_Decode(f *testing.F) {
	c := MustNew(Config{}).For("user")
	for _, seed := range []string{"", "not-a-token!!", "j3SlSYxTLhyn", "XXXXXXXXXXXX", "============"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, token string) {
		id, err := c.Decode(token)
		if err != nil {
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("unexpected error class for %q: %v", token, err)
			}
			if id != 0 {
				t.Fatalf("non-zero id %d returned with error for %q", id, token)
			}
			return
		}
		if id < 0 {
			t.Fatalf("decoded negative id %d from %q", id, token)
		}
		again, err := c.Encode(id)
		if err != nil {
			t.Fatalf("re-encode %d: %v", id, err)
		}
		if again != token {
			t.Fatalf("decode accepted non-canonical token %q (canonical %q)", token, again)
		}
	})
}

func FuzzCodec_RoundTrip(f *testing.F) {
	c := MustNew(Config{Secret: "fuzz"})
	for _, seed := range []int64{0, 1, 42, 987654321, MaxID, -1} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, id int64) {
		token, err := c.Encode(id)
		if id < 0 {
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange for %d, got %v", id, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("encode %d: %v", id, err)
		}
		got, err := c.Decode(token)
		if err != nil || got != id {
			t.Fatalf("round trip %d -> %q -> %d (%v)", id, token, got, err)
		}
	})
}
