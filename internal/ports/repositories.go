package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

// RateSnapshot is the persisted form of a rate table under one scope.
type RateSnapshot struct {
	Scope     string
	Rates     domain.RateTable
	UpdatedBy string
	UpdatedAt time.Time
}

// RateRepository is the durable key-value store behind the rate store.
// Load returns domain.ErrNotFound when nothing was ever saved for the scope.
type RateRepository interface {
	Load(ctx context.Context, scope string) (RateSnapshot, error)
	Save(ctx context.Context, snapshot RateSnapshot) error
}

// OutboxEvent is the write-side event payload prior to storage.
type OutboxEvent struct {
	EventID      uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
}

// OutboxRecord represents durable outbox state, including retry metadata.
type OutboxRecord struct {
	OutboxID       uuid.UUID
	EventType      string
	PartitionKey   string
	Payload        []byte
	RetryCount     int
	LastError      *string
	CreatedAt      time.Time
	PublishedAt    *time.Time
	ClaimToken     *string
	ClaimUntil     *time.Time
	DeadLetteredAt *time.Time
}

// OutboxClaim selects the pending rate events one worker pass will relay.
// Empty EventTypes or Scopes match every value. Claims that expired before At
// can be taken over.
type OutboxClaim struct {
	EventTypes []string
	Scopes     []string
	Limit      int
	Token      string
	At         time.Time
	Until      time.Time
}

type OutboxOutcome string

const (
	OutboxPublished    OutboxOutcome = "published"
	OutboxRetry        OutboxOutcome = "retry"
	OutboxDeadLettered OutboxOutcome = "dead_lettered"
)

// OutboxSettlement closes a claim. It is ignored when the claim token no
// longer owns the record.
type OutboxSettlement struct {
	OutboxID   uuid.UUID
	ClaimToken string
	Outcome    OutboxOutcome
	Error      string
	At         time.Time
}

// OutboxRepository stores rate-change events until the worker relays them.
// The partition key of every record is the rate scope.
type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	Claim(ctx context.Context, claim OutboxClaim) ([]OutboxRecord, error)
	Settle(ctx context.Context, settlement OutboxSettlement) error
}
