package ports

import (
	"context"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

type NewsQuery struct {
	Query    string
	Page     int
	PageSize int
}

type NewsPage struct {
	Articles     []domain.Article
	TotalResults int
}

// ContentSource fetches a batch snapshot from an external listing. Every
// failure is reported wrapped in domain.ErrUpstreamUnavailable.
type ContentSource interface {
	Fetch(ctx context.Context, query NewsQuery) (NewsPage, error)
}
