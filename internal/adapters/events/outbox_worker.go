package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/arceusss10/sports-news-dashboard/internal/contracts"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

type WorkerConfig struct {
	Interval   time.Duration
	BatchSize  int
	ClaimTTL   time.Duration
	MaxRetries int
	// EventTypes defaults to the rate-change event. Scopes limits the worker
	// to the rate scopes it owns; empty relays every scope.
	EventTypes []string
	Scopes     []string
}

// OutboxWorker relays rate-change events from the outbox to the publisher.
// A record that keeps failing is dead-lettered after MaxRetries attempts.
type OutboxWorker struct {
	logger    *slog.Logger
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	cfg       WorkerConfig
	nowFn     func() time.Time
}

func NewOutboxWorker(logger *slog.Logger, outbox ports.OutboxRepository, publisher ports.EventPublisher, cfg WorkerConfig) *OutboxWorker {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.ClaimTTL <= 0 {
		cfg.ClaimTTL = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	if len(cfg.EventTypes) == 0 {
		cfg.EventTypes = []string{contracts.EventRatesUpdated}
	}
	return &OutboxWorker{
		logger: logger.With(
			"module", "events.outbox_worker",
			"layer", "adapter",
		),
		outbox:    outbox,
		publisher: publisher,
		cfg:       cfg,
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

// Run drains the outbox every interval until ctx is cancelled.
func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := w.ProcessOnce(ctx); err != nil {
			w.logger.ErrorContext(ctx, "outbox iteration failed",
				"operation", "outbox_process_once",
				"outcome", "failure",
				"error", err,
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

type BatchResult struct {
	Claimed      int
	Published    int
	Failed       int
	DeadLettered int
}

// ProcessOnce claims one batch and tries to publish every record in it.
func (w *OutboxWorker) ProcessOnce(ctx context.Context) (BatchResult, error) {
	claimToken := uuid.NewString()
	now := w.nowFn()
	records, err := w.outbox.Claim(ctx, ports.OutboxClaim{
		EventTypes: w.cfg.EventTypes,
		Scopes:     w.cfg.Scopes,
		Limit:      w.cfg.BatchSize,
		Token:      claimToken,
		At:         now,
		Until:      now.Add(w.cfg.ClaimTTL),
	})
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Claimed: len(records)}
	for _, rec := range records {
		switch w.deliver(ctx, rec, claimToken) {
		case deliveryPublished:
			result.Published++
		case deliveryRetry:
			result.Failed++
		case deliveryDeadLettered:
			result.Failed++
			result.DeadLettered++
		}
	}
	if result.Claimed > 0 {
		w.logger.InfoContext(ctx, "outbox batch processed",
			"operation", "outbox_process_once",
			"outcome", "success",
			"batch_size", result.Claimed,
			"published_count", result.Published,
			"failed_count", result.Failed,
			"dead_lettered_count", result.DeadLettered,
		)
	}
	return result, nil
}

type delivery int

const (
	deliveryPublished delivery = iota
	deliveryRetry
	deliveryDeadLettered
)

func (w *OutboxWorker) deliver(ctx context.Context, rec ports.OutboxRecord, claimToken string) delivery {
	now := w.nowFn()
	if rec.RetryCount >= w.cfg.MaxRetries {
		w.markDeadLettered(ctx, rec, claimToken, "retry threshold reached before publish", now)
		return deliveryDeadLettered
	}

	err := w.publisher.Publish(ctx, rec.EventType, rec.PartitionKey, rec.Payload)
	if err == nil {
		if markErr := w.settle(ctx, rec, claimToken, ports.OutboxPublished, "", now); markErr != nil {
			w.logger.WarnContext(ctx, "outbox record published but not marked",
				"operation", "mark_published",
				"outcome", "failure",
				"outbox_id", rec.OutboxID,
				"error", markErr,
			)
		}
		return deliveryPublished
	}

	attempts := rec.RetryCount + 1
	if attempts >= w.cfg.MaxRetries {
		w.markDeadLettered(ctx, rec, claimToken, err.Error(), now)
		return deliveryDeadLettered
	}
	w.logger.WarnContext(ctx, "outbox publish failed; retry scheduled",
		"operation", "publish_event",
		"outcome", "failure",
		"outbox_id", rec.OutboxID,
		"event_type", rec.EventType,
		"retry_count", attempts,
		"error", err,
	)
	_ = w.settle(ctx, rec, claimToken, ports.OutboxRetry, err.Error(), now)
	return deliveryRetry
}

func (w *OutboxWorker) markDeadLettered(ctx context.Context, rec ports.OutboxRecord, claimToken, reason string, at time.Time) {
	w.logger.ErrorContext(ctx, "outbox message moved to dlq",
		"operation", "publish_event",
		"outcome", "dead_lettered",
		"outbox_id", rec.OutboxID,
		"event_type", rec.EventType,
		"payload_bytes", len(rec.Payload),
		"reason", reason,
	)
	_ = w.settle(ctx, rec, claimToken, ports.OutboxDeadLettered, reason, at)
}

func (w *OutboxWorker) settle(ctx context.Context, rec ports.OutboxRecord, claimToken string, outcome ports.OutboxOutcome, reason string, at time.Time) error {
	return w.outbox.Settle(ctx, ports.OutboxSettlement{
		OutboxID:   rec.OutboxID,
		ClaimToken: claimToken,
		Outcome:    outcome,
		Error:      reason,
		At:         at,
	})
}
