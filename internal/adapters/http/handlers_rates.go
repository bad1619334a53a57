package http

import (
	"errors"
	"net/http"

	"github.com/arceusss10/sports-news-dashboard/internal/application"
	"github.com/arceusss10/sports-news-dashboard/internal/contracts"
)

func (h *Handler) getRates(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetRates(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeMappedError(r.Context(), w, "get_rates", err)
		return
	}
	writeSuccess(w, http.StatusOK, ratesResponse(view))
}

// setRates accepts a partial table; an omitted rate keeps its current value.
func (h *Handler) setRates(w http.ResponseWriter, r *http.Request) {
	var req contracts.RatesRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "set_rates", err)
		return
	}
	if req.ArticleRate == nil && req.BlogRate == nil {
		writeValidationError(r.Context(), w, "set_rates", errors.New("articleRate or blogRate is required"))
		return
	}
	view, err := h.service.PatchRates(r.Context(), actorFromContext(r.Context()), application.RatePatch{
		ArticleRate: req.ArticleRate,
		BlogRate:    req.BlogRate,
	})
	if err != nil {
		writeMappedError(r.Context(), w, "set_rates", err)
		return
	}
	h.obs.RateChanged("set")
	writeSuccess(w, http.StatusOK, ratesResponse(view))
}

func (h *Handler) randomizeRates(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RandomizeRates(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeMappedError(r.Context(), w, "randomize_rates", err)
		return
	}
	h.obs.RateChanged("randomize")
	writeSuccess(w, http.StatusOK, ratesResponse(view))
}

func ratesResponse(view application.RatesView) contracts.RatesResponse {
	return contracts.RatesResponse{
		ArticleRate: view.Rates.ArticleRate,
		BlogRate:    view.Rates.BlogRate,
		Scope:       view.Scope,
		CanEdit:     view.CanEdit,
	}
}
