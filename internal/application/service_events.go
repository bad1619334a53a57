package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/arceusss10/sports-news-dashboard/internal/contracts"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

func (s *RateStore) enqueueRatesUpdated(ctx context.Context, snapshot ports.RateSnapshot, change string) error {
	if s.outbox == nil {
		return nil
	}
	payload, err := json.Marshal(contracts.RatesUpdatedPayload{
		Scope:       snapshot.Scope,
		ArticleRate: snapshot.Rates.ArticleRate,
		BlogRate:    snapshot.Rates.BlogRate,
		Change:      change,
		ActorID:     snapshot.UpdatedBy,
		UpdatedAt:   snapshot.UpdatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	eventID := uuid.New()
	envelope, err := json.Marshal(contracts.EventEnvelope{
		EventID:          eventID.String(),
		EventType:        contracts.EventRatesUpdated,
		OccurredAt:       snapshot.UpdatedAt,
		PartitionKeyPath: "data.scope",
		PartitionKey:     snapshot.Scope,
		SourceService:    s.cfg.ServiceName,
		TraceID:          uuid.NewString(),
		SchemaVersion:    "v1",
		Data:             payload,
	})
	if err != nil {
		return err
	}
	return s.outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:      eventID,
		EventType:    contracts.EventRatesUpdated,
		PartitionKey: snapshot.Scope,
		Payload:      envelope,
		OccurredAt:   snapshot.UpdatedAt,
	})
}
