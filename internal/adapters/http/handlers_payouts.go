package http

import (
	"fmt"
	"net/http"

	"github.com/arceusss10/sports-news-dashboard/internal/application"
	"github.com/arceusss10/sports-news-dashboard/internal/contracts"
	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

func (h *Handler) computeTotal(w http.ResponseWriter, r *http.Request) {
	var req contracts.TotalRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "compute_total", err)
		return
	}
	breakdown, err := h.service.ComputeTotal(r.Context(), actorFromContext(r.Context()), countsFromRequest(req))
	if err != nil {
		writeMappedError(r.Context(), w, "compute_total", err)
		return
	}
	writeSuccess(w, http.StatusOK, contracts.TotalResponse{
		Articles:     breakdown.Articles,
		ArticleRate:  breakdown.ArticleRate,
		ArticleTotal: domain.FormatAmount(breakdown.ArticleTotal),
		Blogs:        breakdown.Blogs,
		BlogRate:     breakdown.BlogRate,
		BlogTotal:    domain.FormatAmount(breakdown.BlogTotal),
		TotalPayout:  domain.FormatAmount(breakdown.TotalPayout),
		Display:      domain.FormatCurrency(breakdown.TotalPayout),
	})
}

func (h *Handler) computePerAuthor(w http.ResponseWriter, r *http.Request) {
	var req contracts.AuthorsRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "compute_per_author", err)
		return
	}
	items, err := contentItemsFromRequest(req)
	if err != nil {
		writeMappedError(r.Context(), w, "compute_per_author", err)
		return
	}
	lines, err := h.service.ComputePerAuthor(r.Context(), actorFromContext(r.Context()), items)
	if err != nil {
		writeMappedError(r.Context(), w, "compute_per_author", err)
		return
	}
	writeSuccess(w, http.StatusOK, payoutLineResponses(lines))
}

func (h *Handler) computeLedger(w http.ResponseWriter, r *http.Request) {
	var req contracts.LedgerRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "compute_ledger", err)
		return
	}
	out, err := h.service.ComputeLedger(r.Context(), actorFromContext(r.Context()), application.NewsInput{
		Query:    req.Query,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		writeMappedError(r.Context(), w, "compute_ledger", err)
		return
	}
	writeSuccess(w, http.StatusOK, contracts.LedgerResponse{
		Lines:       payoutLineResponses(out.Lines),
		ArticleRate: out.Rates.ArticleRate,
		BlogRate:    out.Rates.BlogRate,
		ItemCount:   out.ItemCount,
		TotalPayout: domain.FormatAmount(out.TotalPayout),
		Display:     domain.FormatCurrency(out.TotalPayout),
	})
}

func contentItemsFromRequest(req contracts.AuthorsRequest) ([]domain.ContentItem, error) {
	items := make([]domain.ContentItem, 0, len(req.Items))
	for i, raw := range req.Items {
		kind, err := domain.ParseContentKind(raw.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: items[%d].kind must be article or blog", domain.ErrInvalidInput, i)
		}
		items = append(items, domain.ContentItem{
			ID:        raw.ID,
			AuthorID:  raw.AuthorID,
			Kind:      kind,
			CreatedAt: raw.CreatedAt,
		})
	}
	return items, nil
}

func payoutLineResponses(lines []domain.PayoutLine) []contracts.PayoutLineResponse {
	out := make([]contracts.PayoutLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, contracts.PayoutLineResponse{
			AuthorID:     line.AuthorID,
			ArticleCount: line.ArticleCount,
			BlogCount:    line.BlogCount,
			TotalPayout:  domain.FormatAmount(line.TotalPayout),
			Display:      domain.FormatCurrency(line.TotalPayout),
		})
	}
	return out
}

func countsFromRequest(req contracts.TotalRequest) domain.Counts {
	return domain.Counts{
		Articles: coerceCount(req.Articles),
		Blogs:    coerceCount(req.Blogs),
	}
}
