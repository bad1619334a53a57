package postgres

import (
	"gorm.io/gorm"

	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

type Repositories struct {
	Rates  ports.RateRepository
	Outbox ports.OutboxRepository
}

// NewRepositories binds the GORM-backed repositories to an open pool.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Rates:  &rateRepository{db: db},
		Outbox: &outboxRepository{db: db},
	}
}
