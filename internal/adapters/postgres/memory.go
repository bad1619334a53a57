package postgres

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

// NewMemoryRepositories returns process-local repositories for tests and
// runs without a database.
func NewMemoryRepositories() Repositories {
	return Repositories{
		Rates:  NewMemoryRateRepository(),
		Outbox: NewMemoryOutboxRepository(),
	}
}

type MemoryRateRepository struct {
	mu        sync.RWMutex
	snapshots map[string]ports.RateSnapshot
	saves     int
}

func NewMemoryRateRepository() *MemoryRateRepository {
	return &MemoryRateRepository{snapshots: make(map[string]ports.RateSnapshot)}
}

func (r *MemoryRateRepository) Load(_ context.Context, scope string) (ports.RateSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot, ok := r.snapshots[memoryKey(scope)]
	if !ok {
		return ports.RateSnapshot{}, domain.ErrNotFound
	}
	return snapshot, nil
}

func (r *MemoryRateRepository) Save(_ context.Context, snapshot ports.RateSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[memoryKey(snapshot.Scope)] = snapshot
	r.saves++
	return nil
}

// Saves reports how many writes reached the repository.
func (r *MemoryRateRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

func memoryKey(scope string) string {
	return domain.RatesStorageKey + ":" + scope
}

type MemoryOutboxRepository struct {
	mu      sync.Mutex
	records map[uuid.UUID]ports.OutboxRecord
	order   []uuid.UUID
}

func NewMemoryOutboxRepository() *MemoryOutboxRepository {
	return &MemoryOutboxRepository{records: make(map[uuid.UUID]ports.OutboxRecord)}
}

func (r *MemoryOutboxRepository) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[event.EventID] = ports.OutboxRecord{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      slices.Clone(event.Payload),
		CreatedAt:    event.OccurredAt,
	}
	r.order = append(r.order, event.EventID)
	return nil
}

func (r *MemoryOutboxRepository) Claim(_ context.Context, claim ports.OutboxClaim) ([]ports.OutboxRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	at := claim.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	out := make([]ports.OutboxRecord, 0, claim.Limit)
	for _, id := range r.order {
		if len(out) >= claim.Limit {
			break
		}
		rec := r.records[id]
		if rec.PublishedAt != nil || rec.DeadLetteredAt != nil {
			continue
		}
		if rec.ClaimUntil != nil && !rec.ClaimUntil.Before(at) {
			continue
		}
		if !matches(claim.EventTypes, rec.EventType) || !matches(claim.Scopes, rec.PartitionKey) {
			continue
		}
		token, until := claim.Token, claim.Until
		rec.ClaimToken = &token
		rec.ClaimUntil = &until
		r.records[id] = rec
		out = append(out, rec)
	}
	return out, nil
}

func (r *MemoryOutboxRepository) Settle(_ context.Context, s ports.OutboxSettlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[s.OutboxID]
	if !ok {
		return domain.ErrNotFound
	}
	if rec.ClaimToken == nil || *rec.ClaimToken != s.ClaimToken {
		return nil
	}
	at, msg := s.At, s.Error
	switch s.Outcome {
	case ports.OutboxPublished:
		rec.PublishedAt = &at
	case ports.OutboxRetry:
		rec.RetryCount++
		rec.LastError = &msg
	case ports.OutboxDeadLettered:
		rec.RetryCount++
		rec.LastError = &msg
		rec.DeadLetteredAt = &at
	default:
		return fmt.Errorf("unknown outbox outcome %q", s.Outcome)
	}
	rec.ClaimToken = nil
	rec.ClaimUntil = nil
	r.records[s.OutboxID] = rec
	return nil
}

func matches(allowed []string, v string) bool {
	return len(allowed) == 0 || slices.Contains(allowed, v)
}

// Records returns a copy of every record in enqueue order.
func (r *MemoryOutboxRepository) Records() []ports.OutboxRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.OutboxRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out
}
