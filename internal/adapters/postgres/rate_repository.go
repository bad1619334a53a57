package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

type rateRepository struct {
	db *gorm.DB
}

func (r *rateRepository) Load(ctx context.Context, scope string) (ports.RateSnapshot, error) {
	var row rateSnapshotModel
	err := r.db.WithContext(ctx).
		Where("storage_key = ? AND scope = ?", domain.RatesStorageKey, scope).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.RateSnapshot{}, domain.ErrNotFound
	}
	if err != nil {
		return ports.RateSnapshot{}, err
	}
	return ports.RateSnapshot{
		Scope: row.Scope,
		Rates: domain.RateTable{
			ArticleRate: row.ArticleRate,
			BlogRate:    row.BlogRate,
		},
		UpdatedBy: row.UpdatedBy,
		UpdatedAt: row.UpdatedAt.UTC(),
	}, nil
}

func (r *rateRepository) Save(ctx context.Context, snapshot ports.RateSnapshot) error {
	row := rateSnapshotModel{
		StorageKey:  domain.RatesStorageKey,
		Scope:       snapshot.Scope,
		ArticleRate: snapshot.Rates.ArticleRate,
		BlogRate:    snapshot.Rates.BlogRate,
		UpdatedBy:   snapshot.UpdatedBy,
		UpdatedAt:   snapshot.UpdatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}, {Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{"article_rate", "blog_rate", "updated_by", "updated_at"}),
	}).Create(&row).Error
}
