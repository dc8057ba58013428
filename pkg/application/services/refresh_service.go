package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/calderafoods/demandwatch/pkg/application/dto"
	"github.com/calderafoods/demandwatch/pkg/domain/repositories"
)

// DefaultTTL is how long a fetched shortage list is treated as fresh.
// It is a display-staleness tolerance, not a correctness invariant; changes
// to underlying orders or stock only show up after the next refresh.
const DefaultTTL = 60 * time.Second

const refreshKey = "unfulfilled_items"

// RefreshConfig holds configuration for the refresh service
type RefreshConfig struct {
	// TTL is the freshness window for cached results (DefaultTTL when zero).
	TTL time.Duration
}

// cacheEntry wraps a computed result with its fetch timestamp
type cacheEntry struct {
	result    *dto.UnfulfilledResult
	fetchedAt time.Time
}

func (e *cacheEntry) isStale(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.fetchedAt) >= ttl
}

// RefreshService serves the prioritized shortage list from a TTL cache and
// re-derives it from the demand view when stale. The whole list is replaced
// on every refresh; there is no incremental update.
type RefreshService struct {
	demandRepo repositories.UnfulfilledDemandRepository
	priority   *PriorityService
	ttl        time.Duration
	logger     *zap.Logger
	clock      func() time.Time

	mu     sync.RWMutex
	cached *cacheEntry

	group singleflight.Group
}

// NewRefreshService creates a refresh service with default configuration
func NewRefreshService(demandRepo repositories.UnfulfilledDemandRepository, logger *zap.Logger) *RefreshService {
	return NewRefreshServiceWithConfig(demandRepo, logger, RefreshConfig{})
}

// NewRefreshServiceWithConfig creates a refresh service with custom configuration
func NewRefreshServiceWithConfig(
	demandRepo repositories.UnfulfilledDemandRepository,
	logger *zap.Logger,
	config RefreshConfig,
) *RefreshService {
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RefreshService{
		demandRepo: demandRepo,
		priority:   NewPriorityService(),
		ttl:        config.TTL,
		logger:     logger,
		clock:      time.Now,
	}
}

// Items returns the prioritized shortage list, serving the cached result
// while it is fresh. Concurrent callers that miss the cache are collapsed
// into a single in-flight fetch. On fetch error the previous cached list is
// left in place and the error is returned to the caller.
func (s *RefreshService) Items(ctx context.Context) (*dto.UnfulfilledResult, error) {
	now := s.clock()

	s.mu.RLock()
	entry := s.cached
	s.mu.RUnlock()

	if entry != nil && !entry.isStale(now, s.ttl) {
		return entry.result, nil
	}

	result, err, _ := s.group.Do(refreshKey, func() (interface{}, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.UnfulfilledResult), nil
}

// Refresh discards any cached result and re-derives the list immediately.
func (s *RefreshService) Refresh(ctx context.Context) (*dto.UnfulfilledResult, error) {
	result, err, _ := s.group.Do(refreshKey, func() (interface{}, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.UnfulfilledResult), nil
}

func (s *RefreshService) refresh(ctx context.Context) (*dto.UnfulfilledResult, error) {
	rows, err := s.demandRepo.GetUnfulfilledItems(ctx)
	if err != nil {
		s.logger.Warn("Unfulfilled demand fetch failed", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch unfulfilled items: %w", err)
	}

	now := s.clock()
	result := s.priority.Prioritize(rows, now)

	s.mu.Lock()
	s.cached = &cacheEntry{result: result, fetchedAt: now}
	s.mu.Unlock()

	s.logger.Debug("Unfulfilled list refreshed",
		zap.Int("items", result.TotalCount),
		zap.Int("total_open_sos", result.TotalOpenSOs))

	return result, nil
}

// Run polls on a fixed interval, refetching and recomputing unconditionally
// until ctx is cancelled. Fetch errors are logged and the loop keeps going;
// the previously cached list stays visible to readers.
func (s *RefreshService) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = s.ttl
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Starting unfulfilled demand poller", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping unfulfilled demand poller")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil {
				s.logger.Warn("Scheduled refresh failed", zap.Error(err))
			}
		}
	}
}
