// Package idcodec converts internal integer primary keys into opaque, URL-safe
// tokens and back.
//
// The transform is a keyed bijection over [0, math.MaxInt64]: a reversible
// 63-bit mix followed by a fixed-width base-64 rendering and one check digit.
// It hides sequential database keys from API clients. It is obfuscation, not
// encryption: a decoded id still has to pass the caller's authorization checks.
package idcodec

import (
	"hash/fnv"
	"math"

	crerr "github.com/cockroachdb/errors"
)

const (
	// TokenLength is the length of every token produced by Encode.
	TokenLength = payloadLength + 1

	// MaxID is the largest id Encode accepts.
	MaxID int64 = math.MaxInt64

	// DefaultAlphabet is a fixed permutation of the base64url character set.
	DefaultAlphabet = "XYMuthjbwp7veqTJ6K_-BSUcFWr9CaAfGmsN0l82oIPz54LkQRnDO1Hyigd3ExVZ"

	payloadLength = 11
	alphabetSize  = 64
	digitBits     = 6
	digitMask     = alphabetSize - 1

	// The leading digit carries the top 3 of the 63 payload bits.
	maxLeadingDigit = 1<<(63-digitBits*(payloadLength-1)) - 1

	mask63     uint64 = 1<<63 - 1
	mixMulA    uint64 = 0x9E3779B97F4A7C15
	mixMulB    uint64 = 0xBF58476D1CE4E5B9
	mixShift          = 29
	checkPrime uint64 = 33
)

var (
	// ErrInvalidToken reports a token that was not produced by the codec.
	ErrInvalidToken = crerr.New("invalid token")
	// ErrOutOfRange reports an id outside [0, MaxID].
	ErrOutOfRange = crerr.New("id out of range")
	// ErrInvalidConfig reports an unusable alphabet.
	ErrInvalidConfig = crerr.New("invalid codec config")
)

var (
	mixMulAInv = inverseMod64(mixMulA)
	mixMulBInv = inverseMod64(mixMulB)
)

// Config selects the alphabet and key material. The zero value uses
// DefaultAlphabet and the built-in keys.
type Config struct {
	Alphabet string
	Secret   string
}

// Codec is immutable after construction and safe for concurrent use.
type Codec struct {
	alphabet  [alphabetSize]byte
	index     [256]int8
	secret    string
	kind      string
	keyA      uint64
	keyB      uint64
	checkSeed uint64
}

// New validates cfg and builds a Codec.
func New(cfg Config) (*Codec, error) {
	alphabet := cfg.Alphabet
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	if err := ValidateAlphabet(alphabet); err != nil {
		return nil, err
	}

	c := &Codec{secret: cfg.Secret}
	for i := range c.index {
		c.index[i] = -1
	}
	for i := 0; i < alphabetSize; i++ {
		c.alphabet[i] = alphabet[i]
		c.index[alphabet[i]] = int8(i)
	}
	c.deriveKeys()

	return c, nil
}

// MustNew is New for package-level defaults and tests.
func MustNew(cfg Config) *Codec {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// ValidateAlphabet checks that alphabet has exactly 64 distinct characters,
// each one safe inside a URL path segment without escaping.
func ValidateAlphabet(alphabet string) error {
	if len(alphabet) != alphabetSize {
		return crerr.Wrapf(ErrInvalidConfig, "alphabet must have %d characters, got %d", alphabetSize, len(alphabet))
	}

	var seen [256]bool
	for i := 0; i < len(alphabet); i++ {
		ch := alphabet[i]
		if !isURLSafe(ch) {
			return crerr.Wrapf(ErrInvalidConfig, "alphabet character %q is not URL-safe", ch)
		}
		if seen[ch] {
			return crerr.Wrapf(ErrInvalidConfig, "alphabet character %q is repeated", ch)
		}
		seen[ch] = true
	}

	return nil
}

// For returns a codec whose tokens live in a separate namespace, so a token
// issued for one kind of resource does not decode to the same id for another.
// The alphabet is shared.
func (c *Codec) For(kind string) *Codec {
	if kind == c.kind {
		return c
	}
	out := *c
	out.kind = kind
	out.deriveKeys()
	return &out
}

// Kind reports the namespace set by For; empty for the root codec.
func (c *Codec) Kind() string {
	return c.kind
}

// Alphabet returns the 64 characters tokens are drawn from.
func (c *Codec) Alphabet() string {
	return string(c.alphabet[:])
}

// Encode returns the token for id. Negative ids are rejected with
// ErrOutOfRange.
func (c *Codec) Encode(id int64) (string, error) {
	if id < 0 {
		return "", crerr.Wrapf(ErrOutOfRange, "id %d is negative", id)
	}

	x := c.mix(uint64(id))

	var digits [payloadLength]byte
	for i := payloadLength - 1; i >= 0; i-- {
		digits[i] = byte(x & digitMask)
		x >>= digitBits
	}

	var buf [TokenLength]byte
	for i, d := range digits {
		buf[i] = c.alphabet[d]
	}
	buf[payloadLength] = c.alphabet[c.checksum(digits)]

	return string(buf[:]), nil
}

// Decode returns the id encoded in token. Any input Encode could not have
// produced fails with an error wrapping ErrInvalidToken; the returned id is
// then zero and must not be used.
func (c *Codec) Decode(token string) (int64, error) {
	if len(token) != TokenLength {
		return 0, crerr.Wrapf(ErrInvalidToken, "expected %d characters, got %d", TokenLength, len(token))
	}

	var digits [payloadLength]byte
	for i := 0; i < payloadLength; i++ {
		d := c.index[token[i]]
		if d < 0 {
			return 0, crerr.Wrapf(ErrInvalidToken, "unexpected character at position %d", i)
		}
		digits[i] = byte(d)
	}
	if digits[0] > maxLeadingDigit {
		return 0, crerr.Wrap(ErrInvalidToken, "non-canonical leading character")
	}

	check := c.index[token[payloadLength]]
	if check < 0 || byte(check) != c.checksum(digits) {
		return 0, crerr.Wrap(ErrInvalidToken, "checksum mismatch")
	}

	var x uint64
	for _, d := range digits {
		x = x<<digitBits | uint64(d)
	}

	return int64(c.unmix(x)), nil
}

// Valid reports whether token decodes.
func (c *Codec) Valid(token string) bool {
	_, err := c.Decode(token)
	return err == nil
}

func (c *Codec) mix(x uint64) uint64 {
	x ^= c.keyA
	x = (x * mixMulA) & mask63
	x ^= x >> mixShift
	x = (x * mixMulB) & mask63
	x ^= c.keyB
	return x
}

func (c *Codec) unmix(x uint64) uint64 {
	x ^= c.keyB
	x = (x * mixMulBInv) & mask63
	x = unshift(x)
	x = (x * mixMulAInv) & mask63
	x ^= c.keyA
	return x
}

func (c *Codec) checksum(digits [payloadLength]byte) byte {
	sum := c.checkSeed
	for _, d := range digits {
		sum = sum*checkPrime + uint64(d)
	}
	return byte(sum & digitMask)
}

func (c *Codec) deriveKeys() {
	c.keyA = deriveKey(c.secret, c.kind, "mix-a") & mask63
	c.keyB = deriveKey(c.secret, c.kind, "mix-b") & mask63
	c.checkSeed = deriveKey(c.secret, c.kind, "check")
}

func deriveKey(secret, kind, label string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(secret))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(kind))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(label))
	return h.Sum64()
}

// unshift inverts x ^= x >> mixShift on 63-bit values.
func unshift(y uint64) uint64 {
	x := y
	for s := mixShift; s < 63; s += mixShift {
		x ^= y >> s
	}
	return x
}

// inverseMod64 returns the multiplicative inverse of an odd m modulo 2^64,
// which is also its inverse modulo 2^63.
func inverseMod64(m uint64) uint64 {
	inv := m
	for i := 0; i < 5; i++ {
		inv *= 2 - m*inv
	}
	return inv
}

func isURLSafe(ch byte) bool {
	switch {
	case ch >= 'A' && ch <= 'Z', ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
		return true
	case ch == '-' || ch == '_':
		return true
	default:
		return false
	}
}
