package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/proconnect-api/internal/platform/idcodec"
)

const (
	KindUser     = "user"
	KindInvestor = "investor"
)

// Codecs holds one namespaced codec per public resource kind.
type Codecs struct {
	byKind map[string]*idcodec.Codec
}

func NewCodecs(root *idcodec.Codec) Codecs {
	if root == nil {
		root = idcodec.MustNew(idcodec.Config{})
	}
	return Codecs{
		byKind: map[string]*idcodec.Codec{
			KindUser:     root.For(KindUser),
			KindInvestor: root.For(KindInvestor),
		},
	}
}

func (c Codecs) User() *idcodec.Codec {
	return c.byKind[KindUser]
}

func (c Codecs) Investor() *idcodec.Codec {
	return c.byKind[KindInvestor]
}

func (c Codecs) ForKind(kind string) (*idcodec.Codec, error) {
	codec, ok := c.byKind[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown id kind %q, valid kinds are %s", ErrInvalidInput, kind, strings.Join(c.Kinds(), ", "))
	}
	return codec, nil
}

func (c Codecs) Kinds() []string {
	out := make([]string, 0, len(c.byKind))
	for kind := range c.byKind {
		out = append(out, kind)
	}
	sort.Strings(out)
	return out
}

// decodeResourceID turns a client token into a key. A token the codec rejects
// yields exactly the error a missing row does, so callers cannot tell the two apart.
func decodeResourceID(codec *idcodec.Codec, resource, token string) (int64, error) {
	id, err := codec.Decode(token)
	if err != nil {
		if errors.Is(err, idcodec.ErrInvalidToken) {
			return 0, notFound(resource)
		}
		return 0, fmt.Errorf("decode %s id: %w", resource, err)
	}
	return id, nil
}

func notFound(resource string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}

func encodeResourceID(codec *idcodec.Codec, resource string, id int64) (string, error) {
	token, err := codec.Encode(id)
	if err != nil {
		return "", fmt.Errorf("encode %s id: %w", resource, err)
	}
	return token, nil
}
