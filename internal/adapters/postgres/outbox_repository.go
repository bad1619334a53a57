package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

type outboxRepository struct {
	db *gorm.DB
}

func (r *outboxRepository) Enqueue(ctx context.Context, event ports.OutboxEvent) error {
	return r.db.WithContext(ctx).Create(&outboxModel{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      string(event.Payload),
		CreatedAt:    event.OccurredAt,
	}).Error
}

// Claim picks the oldest pending rate events matching the claim filters and
// stamps them with the claim token. Rows held by another worker's unexpired
// claim are skipped.
func (r *outboxRepository) Claim(ctx context.Context, claim ports.OutboxClaim) ([]ports.OutboxRecord, error) {
	if claim.Limit <= 0 {
		return nil, nil
	}
	if claim.Token == "" {
		return nil, fmt.Errorf("claim token is required")
	}

	var rows []outboxModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		pending := claimable(tx.Model(&outboxModel{}), claim).
			Order("created_at ASC").
			Limit(claim.Limit).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		if err := pending.Pluck("outbox_id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Model(&outboxModel{}).
			Where("outbox_id IN ?", ids).
			Updates(map[string]any{"claim_token": claim.Token, "claim_until": claim.Until}).Error; err != nil {
			return err
		}
		return tx.Where("outbox_id IN ?", ids).Order("created_at ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("claim rate events: %w", err)
	}

	records := make([]ports.OutboxRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.record())
	}
	return records, nil
}

// Settle applies the relay outcome and releases the claim in one update.
func (r *outboxRepository) Settle(ctx context.Context, s ports.OutboxSettlement) error {
	columns, err := settlementColumns(s)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ? AND claim_token = ?", s.OutboxID, s.ClaimToken).
		Updates(columns).Error
}

func claimable(q *gorm.DB, claim ports.OutboxClaim) *gorm.DB {
	q = q.Where("published_at IS NULL AND dead_lettered_at IS NULL").
		Where("claim_until IS NULL OR claim_until < ?", claim.At)
	if len(claim.EventTypes) > 0 {
		q = q.Where("event_type IN ?", claim.EventTypes)
	}
	if len(claim.Scopes) > 0 {
		q = q.Where("partition_key IN ?", claim.Scopes)
	}
	return q
}

func settlementColumns(s ports.OutboxSettlement) (map[string]any, error) {
	columns := map[string]any{"claim_token": nil, "claim_until": nil}
	switch s.Outcome {
	case ports.OutboxPublished:
		columns["published_at"] = s.At
	case ports.OutboxRetry, ports.OutboxDeadLettered:
		columns["retry_count"] = gorm.Expr("retry_count + 1")
		columns["last_error"] = s.Error
		columns["last_error_at"] = s.At
		if s.Outcome == ports.OutboxDeadLettered {
			columns["dead_lettered_at"] = s.At
		}
	default:
		return nil, fmt.Errorf("unknown outbox outcome %q", s.Outcome)
	}
	return columns, nil
}

func (m outboxModel) record() ports.OutboxRecord {
	return ports.OutboxRecord{
		OutboxID:       m.OutboxID,
		EventType:      m.EventType,
		PartitionKey:   m.PartitionKey,
		Payload:        []byte(m.Payload),
		RetryCount:     m.RetryCount,
		LastError:      m.LastError,
		CreatedAt:      m.CreatedAt,
		PublishedAt:    m.PublishedAt,
		ClaimToken:     m.ClaimToken,
		ClaimUntil:     m.ClaimUntil,
		DeadLetteredAt: m.DeadLetteredAt,
	}
}
