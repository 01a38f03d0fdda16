// Package rediscache puts a shared redis tier in front of the profile and
// investor repositories. Redis failures never fail a read: the decorator logs
// and falls through to the wrapped repository.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/proconnect-api/internal/platform/logging"
)

const DefaultTTL = 5 * time.Minute

type Options struct {
	Prefix string
	TTL    time.Duration
	Logger *logging.Logger
}

// NewClient builds a client from a redis:// or rediss:// URL.
func NewClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// entry records negative lookups too, so missing rows are not re-queried
// until the TTL lapses.
type entry[T any] struct {
	Value  T    `json:"value"`
	Exists bool `json:"exists"`
}

type tier[T any] struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger *logging.Logger
}

func newTier[T any](client redis.Cmdable, namespace string, opts Options) tier[T] {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return tier[T]{
		client: client,
		prefix: opts.Prefix + namespace + ":",
		ttl:    ttl,
		logger: logger.With("component", "rediscache", "namespace", namespace),
	}
}

func (t tier[T]) key(id int64) string {
	return t.prefix + strconv.FormatInt(id, 10)
}

func (t tier[T]) get(ctx context.Context, id int64) (entry[T], bool) {
	raw, err := t.client.Get(ctx, t.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			t.logger.WarnContext(ctx, "redis get failed", "error", err)
		}
		return entry[T]{}, false
	}

	var out entry[T]
	if err := sonic.Unmarshal(raw, &out); err != nil {
		t.logger.WarnContext(ctx, "drop undecodable cache payload", "key", t.key(id), "error", err)
		return entry[T]{}, false
	}
	return out, true
}

// getMany returns the decoded entries by id and the ids that missed.
func (t tier[T]) getMany(ctx context.Context, ids []int64) (map[int64]entry[T], []int64) {
	hits := make(map[int64]entry[T], len(ids))
	if len(ids) == 0 {
		return hits, nil
	}

	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
		keys = append(keys, t.key(id))
	}
	values, err := t.client.MGet(ctx, keys...).Result()
	if err != nil {
		t.logger.WarnContext(ctx, "redis mget failed", "error", err)
		return hits, unique
	}

	misses := make([]int64, 0, len(unique))
	for i, id := range unique {
		raw, ok := values[i].(string)
		if !ok {
			misses = append(misses, id)
			continue
		}
		var item entry[T]
		if err := sonic.UnmarshalString(raw, &item); err != nil {
			misses = append(misses, id)
			continue
		}
		hits[id] = item
	}
	return hits, misses
}

func (t tier[T]) set(ctx context.Context, items map[int64]entry[T]) {
	if len(items) == 0 {
		return
	}

	pipe := t.client.Pipeline()
	for id, item := range items {
		payload, err := sonic.Marshal(item)
		if err != nil {
			t.logger.WarnContext(ctx, "encode cache payload failed", "error", err)
			continue
		}
		pipe.Set(ctx, t.key(id), payload, t.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		t.logger.WarnContext(ctx, "redis set failed", "error", err)
	}
}
