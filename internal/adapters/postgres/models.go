package postgres

import (
	"time"

	"github.com/google/uuid"
)

type rateSnapshotModel struct {
	StorageKey  string    `gorm:"column:storage_key;primaryKey"`
	Scope       string    `gorm:"column:scope;primaryKey"`
	ArticleRate float64   `gorm:"column:article_rate;not null"`
	BlogRate    float64   `gorm:"column:blog_rate;not null"`
	UpdatedBy   string    `gorm:"column:updated_by;not null;default:''"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
}

func (rateSnapshotModel) TableName() string { return "payout_rate_snapshots" }

type outboxModel struct {
	OutboxID       uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType      string     `gorm:"column:event_type;not null"`
	PartitionKey   string     `gorm:"column:partition_key;not null"`
	Payload        string     `gorm:"column:payload;not null"`
	RetryCount     int        `gorm:"column:retry_count;not null;default:0"`
	LastError      *string    `gorm:"column:last_error"`
	LastErrorAt    *time.Time `gorm:"column:last_error_at"`
	ClaimToken     *string    `gorm:"column:claim_token"`
	ClaimUntil     *time.Time `gorm:"column:claim_until"`
	CreatedAt      time.Time  `gorm:"column:created_at;not null"`
	PublishedAt    *time.Time `gorm:"column:published_at"`
	DeadLetteredAt *time.Time `gorm:"column:dead_lettered_at"`
}

func (outboxModel) TableName() string { return "payout_outbox" }
