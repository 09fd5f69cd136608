// Package dataset owns the process-wide tariff dataset: loaded once, shared
// read-only, and replaced wholesale on expiry or explicit invalidation.
package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/freight-quoter/internal/obs"
	"github.com/noah-isme/freight-quoter/internal/tariff"
)

// Loader produces a fresh dataset from the external source.
type Loader func(ctx context.Context) (*tariff.Dataset, error)

// Store caches a dataset with a TTL. Swaps are atomic: readers observe either
// the previous or the new dataset in its entirety, never a mix.
type Store struct {
	Load Loader
	TTL  time.Duration
	Log  zerolog.Logger

	mu      sync.Mutex
	current atomic.Pointer[tariff.Dataset]
	stale   atomic.Bool

	// nowFn is overridable in tests.
	nowFn func() time.Time
}

// Get returns the cached dataset, loading it on first use or after the TTL
// has elapsed. Concurrent expired readers trigger a single load. When a
// refresh fails and a previous dataset exists, the previous dataset is served
// and the failure is logged; the error is only returned when no dataset has
// ever loaded.
func (s *Store) Get(ctx context.Context) (*tariff.Dataset, error) {
	if ds := s.current.Load(); ds != nil && !s.stale.Load() && !s.expired(ds) {
		return ds, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ds := s.current.Load(); ds != nil && !s.stale.Load() && !s.expired(ds) {
		return ds, nil
	}

	ds, err := s.Load(ctx)
	if err != nil {
		s.observeReload("error")
		if prev := s.current.Load(); prev != nil {
			s.Log.Error().Err(err).Msg("dataset refresh failed, serving previous dataset")
			return prev, nil
		}
		return nil, err
	}
	s.swap(ds)
	s.observeReload("ok")
	return ds, nil
}

// Reload forces a load and surfaces any failure to the caller. The cached
// dataset is only replaced on success.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.Load(ctx)
	if err != nil {
		s.observeReload("error")
		return err
	}
	s.swap(ds)
	s.observeReload("ok")
	return nil
}

// Invalidate marks the cached dataset stale; the next Get reloads.
func (s *Store) Invalidate() {
	s.stale.Store(true)
}

// Info describes the cache state for the status endpoint.
type Info struct {
	Loaded    bool      `json:"loaded"`
	LoadedAt  time.Time `json:"loadedAt,omitzero"`
	Countries int       `json:"countries"`
	Rates     int       `json:"rates"`
	Brackets  int       `json:"brackets"`
	Stale     bool      `json:"stale"`
}

// Info reports on the currently cached dataset without triggering a load.
func (s *Store) Info() Info {
	ds := s.current.Load()
	if ds == nil {
		return Info{}
	}
	return Info{
		Loaded:    true,
		LoadedAt:  ds.LoadedAt,
		Countries: len(ds.Countries),
		Rates:     len(ds.Rates),
		Brackets:  len(ds.Prices.Brackets()),
		Stale:     s.stale.Load() || s.expired(ds),
	}
}

func (s *Store) swap(ds *tariff.Dataset) {
	s.current.Store(ds)
	s.stale.Store(false)
	if obs.DatasetLoadedTimestamp != nil {
		obs.DatasetLoadedTimestamp.Set(float64(ds.LoadedAt.Unix()))
	}
}

func (s *Store) expired(ds *tariff.Dataset) bool {
	if s.TTL <= 0 {
		return false
	}
	return s.now().Sub(ds.LoadedAt) > s.TTL
}

func (s *Store) now() time.Time {
	if s.nowFn != nil {
		return s.nowFn()
	}
	return time.Now()
}

func (s *Store) observeReload(result string) {
	if obs.DatasetReloadTotal != nil {
		obs.DatasetReloadTotal.WithLabelValues(result).Inc()
	}
}
