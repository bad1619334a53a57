package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/arceusss10/sports-news-dashboard/internal/contracts"
	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

type RateStoreConfig struct {
	ServiceName string
	Scope       string
	SeedMode    string
	SeedRates   domain.RateTable
}

type RateStoreDependencies struct {
	Config     RateStoreConfig
	Repository ports.RateRepository
	Cache      ports.RateCache
	Outbox     ports.OutboxRepository
	RandFn     func() float64
	NowFn      func() time.Time
}

// RateStore owns the current rate table for one scope. Reads are served from
// memory; writes go to memory first and are then persisted under the
// payoutRates key. Only admins may write.
type RateStore struct {
	cfg    RateStoreConfig
	repo   ports.RateRepository
	cache  ports.RateCache
	outbox ports.OutboxRepository
	randFn func() float64
	nowFn  func() time.Time

	mu    sync.RWMutex
	rates domain.RateTable
}

func NewRateStore(deps RateStoreDependencies) *RateStore {
	cfg := deps.Config
	if cfg.SeedRates.Validate() != nil {
		cfg.SeedRates = domain.DefaultRateTable()
	}
	nowFn := deps.NowFn
	if nowFn == nil {
		nowFn = func() time.Time { return time.Now().UTC() }
	}
	return &RateStore{
		cfg:    cfg,
		repo:   deps.Repository,
		cache:  deps.Cache,
		outbox: deps.Outbox,
		randFn: deps.RandFn,
		nowFn:  nowFn,
		rates:  cfg.SeedRates,
	}
}

// Load initializes the in-memory table from the last persisted snapshot. When
// nothing was ever saved the table is seeded and the seed is persisted.
func (s *RateStore) Load(ctx context.Context) error {
	snapshot, err := s.loadSnapshot(ctx)
	switch {
	case err == nil:
		s.mu.Lock()
		s.rates = snapshot.Rates
		s.mu.Unlock()
		rateStoreLogger().InfoContext(ctx, "rate table loaded",
			"operation", "load_rates",
			"outcome", "success",
			"scope", s.cfg.Scope,
			"updated_at", snapshot.UpdatedAt,
		)
		return nil
	case errors.Is(err, domain.ErrNotFound):
	default:
		return err
	}

	seed := s.cfg.SeedRates
	if s.cfg.SeedMode == SeedModeRandom && s.randFn != nil {
		seed = domain.RandomRateTable(s.randFn)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates = seed
	s.persist(ctx, domain.Actor{ID: "system"}, seed, contracts.RateChangeSeed)
	rateStoreLogger().InfoContext(ctx, "rate table seeded",
		"operation", "load_rates",
		"outcome", "seeded",
		"scope", s.cfg.Scope,
		"seed_mode", s.cfg.SeedMode,
	)
	return nil
}

// GetRates returns the current in-memory table. It never fails.
func (s *RateStore) GetRates() domain.RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rates
}

func (s *RateStore) Scope() string {
	return s.cfg.Scope
}

func (s *RateStore) SetRates(ctx context.Context, actor domain.Actor, rates domain.RateTable) error {
	if !domain.CanEditRates(actor) {
		logRejectedMutation(ctx, "set_rates", actor)
		return domain.ErrRejected
	}
	if err := rates.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates = rates
	s.persist(ctx, actor, rates, contracts.RateChangeSet)
	return nil
}

// RatePatch changes only the rates it carries.
type RatePatch struct {
	ArticleRate *float64
	BlogRate    *float64
}

func (p RatePatch) Empty() bool {
	return p.ArticleRate == nil && p.BlogRate == nil
}

// PatchRates merges the patch into the current table under the write lock,
// so concurrent patches of different rates both survive.
func (s *RateStore) PatchRates(ctx context.Context, actor domain.Actor, patch RatePatch) (domain.RateTable, error) {
	if !domain.CanEditRates(actor) {
		logRejectedMutation(ctx, "patch_rates", actor)
		return domain.RateTable{}, domain.ErrRejected
	}
	if patch.Empty() {
		return domain.RateTable{}, fmt.Errorf("%w: articleRate or blogRate is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.rates
	if patch.ArticleRate != nil {
		next.ArticleRate = *patch.ArticleRate
	}
	if patch.BlogRate != nil {
		next.BlogRate = *patch.BlogRate
	}
	if err := next.Validate(); err != nil {
		return domain.RateTable{}, err
	}
	s.rates = next
	s.persist(ctx, actor, next, contracts.RateChangeSet)
	return next, nil
}

func (s *RateStore) RandomizeRates(ctx context.Context, actor domain.Actor) (domain.RateTable, error) {
	if !domain.CanEditRates(actor) {
		logRejectedMutation(ctx, "randomize_rates", actor)
		return domain.RateTable{}, domain.ErrRejected
	}
	if s.randFn == nil {
		return domain.RateTable{}, errors.New("rate store has no random source")
	}
	rates := domain.RandomRateTable(s.randFn)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates = rates
	s.persist(ctx, actor, rates, contracts.RateChangeRandomize)
	return rates, nil
}

// loadSnapshot reads the durable store first. The cache only answers when
// there is no repository or the repository is unreachable.
func (s *RateStore) loadSnapshot(ctx context.Context) (ports.RateSnapshot, error) {
	if s.repo == nil {
		if cached, ok := s.cachedSnapshot(ctx); ok {
			return cached, nil
		}
		return ports.RateSnapshot{}, domain.ErrNotFound
	}

	snapshot, err := s.repo.Load(ctx, s.cfg.Scope)
	switch {
	case err == nil:
		if snapshot.Rates.Validate() != nil {
			return ports.RateSnapshot{}, domain.ErrNotFound
		}
		return snapshot, nil
	case errors.Is(err, domain.ErrNotFound):
		return ports.RateSnapshot{}, err
	}

	rateStoreLogger().WarnContext(ctx, "rate repository unavailable",
		"operation", "load_rates",
		"outcome", "degraded",
		"scope", s.cfg.Scope,
		"error", err,
	)
	if cached, ok := s.cachedSnapshot(ctx); ok {
		return cached, nil
	}
	return ports.RateSnapshot{}, err
}

func (s *RateStore) cachedSnapshot(ctx context.Context) (ports.RateSnapshot, bool) {
	if s.cache == nil {
		return ports.RateSnapshot{}, false
	}
	cached, err := s.cache.Get(ctx, s.cfg.Scope)
	if err != nil {
		rateStoreLogger().WarnContext(ctx, "rate cache unavailable",
			"operation", "load_rates",
			"outcome", "degraded",
			"scope", s.cfg.Scope,
			"error", err,
		)
		return ports.RateSnapshot{}, false
	}
	if cached == nil || cached.Rates.Validate() != nil {
		return ports.RateSnapshot{}, false
	}
	return *cached, true
}

// persist saves the new table. Failures are logged, never returned: the
// in-memory table stays authoritative and the last successful write wins.
// Callers hold s.mu so writes reach storage in mutation order.
func (s *RateStore) persist(ctx context.Context, actor domain.Actor, rates domain.RateTable, change string) {
	snapshot := ports.RateSnapshot{
		Scope:     s.cfg.Scope,
		Rates:     rates,
		UpdatedBy: actor.ID,
		UpdatedAt: s.nowFn(),
	}
	if s.repo != nil {
		if err := s.repo.Save(ctx, snapshot); err != nil {
			rateStoreLogger().ErrorContext(ctx, "rate table persist failed",
				"operation", "persist_rates",
				"outcome", "failure",
				"scope", s.cfg.Scope,
				"change", change,
				"error", err,
			)
			return
		}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, snapshot); err != nil {
			// A stale entry must not outlive a newer durable write.
			delErr := s.cache.Delete(ctx, s.cfg.Scope)
			rateStoreLogger().WarnContext(ctx, "rate cache refresh failed",
				"operation", "persist_rates",
				"outcome", "degraded",
				"scope", s.cfg.Scope,
				"error", err,
				"invalidate_error", delErr,
			)
		}
	}
	if err := s.enqueueRatesUpdated(ctx, snapshot, change); err != nil {
		rateStoreLogger().WarnContext(ctx, "rates updated event not enqueued",
			"operation", "enqueue_rates_updated",
			"outcome", "failure",
			"scope", s.cfg.Scope,
			"error", err,
		)
	}
	rateStoreLogger().InfoContext(ctx, "rate table persisted",
		"operation", "persist_rates",
		"outcome", "success",
		"scope", s.cfg.Scope,
		"change", change,
		"actor_id", actor.ID,
	)
}

func logRejectedMutation(ctx context.Context, operation string, actor domain.Actor) {
	rateStoreLogger().WarnContext(ctx, "rate mutation rejected",
		"operation", operation,
		"outcome", "rejected",
		"actor_id", actor.ID,
		"role", actor.Role,
	)
}

func rateStoreLogger() *slog.Logger {
	return slog.Default().With(
		"module", "rate_store",
		"layer", "application",
	)
}
