package application

import (
	"context"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

func (s *Service) GetRates(_ context.Context, actor domain.Actor) (RatesView, error) {
	if !domain.CanViewCalculator(actor) {
		return RatesView{}, domain.ErrUnauthorized
	}
	return RatesView{
		Rates:   s.rates.GetRates(),
		Scope:   s.rates.Scope(),
		CanEdit: domain.CanEditRates(actor),
	}, nil
}

func (s *Service) SetRates(ctx context.Context, actor domain.Actor, rates domain.RateTable) (RatesView, error) {
	if err := s.rates.SetRates(ctx, actor, rates); err != nil {
		return RatesView{}, err
	}
	return RatesView{Rates: s.rates.GetRates(), Scope: s.rates.Scope(), CanEdit: true}, nil
}

// PatchRates updates only the rates present in the patch.
func (s *Service) PatchRates(ctx context.Context, actor domain.Actor, patch RatePatch) (RatesView, error) {
	rates, err := s.rates.PatchRates(ctx, actor, patch)
	if err != nil {
		return RatesView{}, err
	}
	return RatesView{Rates: rates, Scope: s.rates.Scope(), CanEdit: true}, nil
}

func (s *Service) RandomizeRates(ctx context.Context, actor domain.Actor) (RatesView, error) {
	rates, err := s.rates.RandomizeRates(ctx, actor)
	if err != nil {
		return RatesView{}, err
	}
	return RatesView{Rates: rates, Scope: s.rates.Scope(), CanEdit: true}, nil
}
