// Package cache is the process-local read-through cache placed in front of
// repositories. Entries expire after a TTL; concurrent misses for one key
// share a single load.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

type Options struct {
	TTL time.Duration
	// MaxEntries bounds the store. When full, expired entries are swept and,
	// if that frees nothing, the entry closest to expiry is dropped.
	MaxEntries int
	// SweepInterval starts a background sweeper when positive. Call Close to
	// stop it.
	SweepInterval time.Duration
	// LoadTimeout bounds a shared load. Defaults to DefaultLoadTimeout.
	LoadTimeout time.Duration
}

const DefaultLoadTimeout = 10 * time.Second

type Stats struct {
	Hits    uint64
	Misses  uint64
	Loads   uint64
	Entries int
}

type entry struct {
	value     any
	expiresAt time.Time
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	// gen moves on every invalidation. Loads that started under an older
	// generation return their value but do not store it.
	gen     uint64
	opts    Options
	flight  singleflight.Group
	now     func() time.Time

	hits   atomic.Uint64
	misses atomic.Uint64
	loads  atomic.Uint64

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func NewStore(opts Options) *Store {
	s := &Store{
		entries: make(map[string]entry),
		opts:    opts,
		now:     time.Now,
	}
	if opts.SweepInterval > 0 {
		s.stop = make(chan struct{})
		s.done = make(chan struct{})
		go s.sweepLoop(opts.SweepInterval)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || s.expired(e, s.now()) {
		s.misses.Add(1)
		return nil, false
	}

	s.hits.Add(1)
	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}
	s.put(key, value, 0, false)
}

func (s *Store) Delete(_ context.Context, keys ...string) {
	s.mu.Lock()
	s.gen++
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.mu.Unlock()

	for _, key := range keys {
		s.flight.Forget(key)
	}
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	s.gen++
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	n := len(s.entries)
	s.mu.RUnlock()

	return Stats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Loads:   s.loads.Load(),
		Entries: n,
	}
}

// Close stops the background sweeper. It is safe to call more than once.
func (s *Store) Close() {
	if s.stop == nil {
		return
	}
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
}

// GetOrLoad returns the cached value for key or runs load once for all
// concurrent callers and caches its result. Load errors are not cached.
// The shared load is detached from the caller's cancellation and bounded by
// LoadTimeout; a cancelled caller stops waiting without failing the others.
func GetOrLoad[T any](ctx context.Context, s *Store, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if load == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if s == nil || key == "" {
		return load(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		if typed, ok := value.(T); ok {
			return typed, nil
		}
	}

	ch := s.flight.DoChan(key, func() (any, error) {
		gen := s.generation()
		if cached, ok := s.Get(ctx, key); ok {
			if typed, ok := cached.(T); ok {
				return typed, nil
			}
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout())
		defer cancel()

		s.loads.Add(1)
		loaded, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		s.put(key, loaded, gen, true)
		return loaded, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return zero, res.Err
	}

	typed, ok := res.Val.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds %T", key, res.Val)
	}
	return typed, nil
}

func (s *Store) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// put stores value. When checkGen is set the write is dropped if an
// invalidation happened after gen was read.
func (s *Store) put(key string, value any, gen uint64, checkGen bool) {
	now := s.now()
	e := entry{value: value}
	if s.opts.TTL > 0 {
		e.expiresAt = now.Add(s.opts.TTL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if checkGen && s.gen != gen {
		return
	}
	if _, exists := s.entries[key]; !exists && s.opts.MaxEntries > 0 && len(s.entries) >= s.opts.MaxEntries {
		s.evictLocked(now)
	}
	s.entries[key] = e
}

func (s *Store) loadTimeout() time.Duration {
	if s.opts.LoadTimeout > 0 {
		return s.opts.LoadTimeout
	}
	return DefaultLoadTimeout
}

func (s *Store) expired(e entry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

func (s *Store) sweep() {
	now := s.now()
	s.mu.Lock()
	s.sweepLocked(now)
	s.mu.Unlock()
}

func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for key, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store) evictLocked(now time.Time) {
	if s.sweepLocked(now) > 0 {
		return
	}

	var (
		victim string
		oldest time.Time
	)
	for key, e := range s.entries {
		if victim == "" || e.expiresAt.Before(oldest) {
			victim, oldest = key, e.expiresAt
		}
	}
	delete(s.entries, victim)
}

func (s *Store) sweepLoop(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}
