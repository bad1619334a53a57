package news

import (
	"context"
	"slices"
	"time"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

// FixtureSource serves a fixed catalogue. It backs local runs without an
// API key and the CLI.
type FixtureSource struct {
	articles []domain.Article
}

func NewFixtureSource(articles []domain.Article) *FixtureSource {
	if articles == nil {
		articles = SampleArticles()
	}
	return &FixtureSource{articles: slices.Clone(articles)}
}

func (s *FixtureSource) Fetch(_ context.Context, query ports.NewsQuery) (ports.NewsPage, error) {
	matched := filterByQuery(s.articles, query.Query)
	return ports.NewsPage{
		Articles:     slices.Clone(paginate(matched, query.Page, query.PageSize)),
		TotalResults: len(matched),
	}, nil
}

// SampleArticles is the demo catalogue: two authors with mixed kinds and one
// news-only author.
func SampleArticles() []domain.Article {
	day := func(d int) time.Time { return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC) }
	return []domain.Article{
		{
			ID:          "1",
			Title:       "The Future of Cricket: T20 Leagues vs International Cricket",
			Author:      "John Smith",
			Kind:        domain.ContentKindArticle,
			Content:     "An analysis of the growing influence of T20 leagues on international cricket...",
			SourceName:  "Dashboard Desk",
			PublishedAt: day(12),
		},
		{
			ID:          "2",
			Title:       "Top 10 Football Transfers of 2024",
			Author:      "Sarah Johnson",
			Kind:        domain.ContentKindBlog,
			Content:     "A comprehensive look at the biggest football transfers this year...",
			SourceName:  "Dashboard Desk",
			PublishedAt: day(11),
		},
		{
			ID:          "3",
			Title:       "NBA Playoff Race Heats Up",
			Author:      "Mike Brown",
			Kind:        domain.ContentKindArticle,
			Content:     "Latest updates on the NBA playoff race and team standings...",
			SourceName:  "Dashboard Desk",
			PublishedAt: day(10),
		},
		{
			ID:          "4",
			Title:       "The Evolution of Tennis Equipment",
			Author:      "Sarah Johnson",
			Kind:        domain.ContentKindBlog,
			Content:     "How tennis equipment has evolved over the decades...",
			SourceName:  "Dashboard Desk",
			PublishedAt: day(9),
		},
		{
			ID:          "5",
			Title:       "Formula 1: New Season Preview",
			Author:      "John Smith",
			Kind:        domain.ContentKindArticle,
			Content:     "What to expect from the upcoming Formula 1 season...",
			SourceName:  "Dashboard Desk",
			PublishedAt: day(8),
		},
	}
}
