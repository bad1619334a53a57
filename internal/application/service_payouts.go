package application

import (
	"context"
	"fmt"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

func (s *Service) ComputeTotal(_ context.Context, actor domain.Actor, counts domain.Counts) (domain.Breakdown, error) {
	if !domain.CanViewCalculator(actor) {
		return domain.Breakdown{}, domain.ErrUnauthorized
	}
	return domain.ComputeBreakdown(counts, s.rates.GetRates())
}

func (s *Service) ComputePerAuthor(_ context.Context, actor domain.Actor, items []domain.ContentItem) ([]domain.PayoutLine, error) {
	if !domain.CanViewCalculator(actor) {
		return nil, domain.ErrUnauthorized
	}
	return domain.ComputePerAuthor(items, s.rates.GetRates())
}

// ComputeLedger pulls one page of content from the source and prices it per author.
func (s *Service) ComputeLedger(ctx context.Context, actor domain.Actor, input NewsInput) (LedgerOutput, error) {
	if !domain.CanViewCalculator(actor) {
		return LedgerOutput{}, domain.ErrUnauthorized
	}
	news, err := s.fetchNews(ctx, input)
	if err != nil {
		return LedgerOutput{}, err
	}
	rates := s.rates.GetRates()
	lines, err := domain.ComputePerAuthor(domain.ContentItems(news.Articles), rates)
	if err != nil {
		return LedgerOutput{}, fmt.Errorf("price ledger: %w", err)
	}
	out := LedgerOutput{
		Lines:     lines,
		Rates:     rates,
		ItemCount: len(news.Articles),
	}
	for _, line := range lines {
		out.TotalPayout += line.TotalPayout
	}
	return out, nil
}
