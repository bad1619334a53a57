package contracts

import (
	"encoding/json"
	"time"
)

const (
	EventRatesUpdated = "payout.rates.updated"

	RateChangeSet       = "set"
	RateChangeRandomize = "randomize"
	RateChangeSeed      = "seed"
)

type EventEnvelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    string          `json:"schema_version"`
	Data             json.RawMessage `json:"data"`
}

type RatesUpdatedPayload struct {
	Scope       string  `json:"scope"`
	ArticleRate float64 `json:"article_rate"`
	BlogRate    float64 `json:"blog_rate"`
	Change      string  `json:"change"`
	ActorID     string  `json:"actor_id,omitempty"`
	UpdatedAt   string  `json:"updated_at"`
}
