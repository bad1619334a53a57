package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

// SearchNews is open to every actor, anonymous visitors included.
func (s *Service) SearchNews(ctx context.Context, _ domain.Actor, input NewsInput) (NewsOutput, error) {
	return s.fetchNews(ctx, input)
}

// NewsByCategory narrows the listing to "<category> sports".
func (s *Service) NewsByCategory(ctx context.Context, actor domain.Actor, category string, input NewsInput) (NewsOutput, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return NewsOutput{}, domain.ErrInvalidInput
	}
	input.Query = category + " sports"
	return s.SearchNews(ctx, actor, input)
}

func (s *Service) fetchNews(ctx context.Context, input NewsInput) (NewsOutput, error) {
	if s.content == nil {
		return NewsOutput{}, fmt.Errorf("%w: no content source configured", domain.ErrUpstreamUnavailable)
	}
	query := ports.NewsQuery{
		Query:    strings.TrimSpace(input.Query),
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if query.Query == "" {
		query.Query = s.cfg.DefaultNewsQuery
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = s.cfg.DefaultPageSize
	}
	if query.PageSize > s.cfg.MaxPageSize {
		query.PageSize = s.cfg.MaxPageSize
	}

	page, err := s.content.Fetch(ctx, query)
	if err != nil {
		slog.Default().WarnContext(ctx, "content source fetch failed",
			"module", "application",
			"layer", "application",
			"operation", "fetch_news",
			"outcome", "failure",
			"query", query.Query,
			"page", query.Page,
			"error", err,
		)
		if !errors.Is(err, domain.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
		}
		return NewsOutput{}, err
	}
	return NewsOutput{
		Articles:     input.Filter.Apply(page.Articles),
		TotalResults: page.TotalResults,
		Page:         query.Page,
		PageSize:     query.PageSize,
	}, nil
}
