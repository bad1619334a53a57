package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arceusss10/sports-news-dashboard/internal/application"
	"github.com/arceusss10/sports-news-dashboard/internal/contracts"
	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

func (h *Handler) listNews(w http.ResponseWriter, r *http.Request) {
	input, err := newsInputFromQuery(r)
	if err != nil {
		writeMappedError(r.Context(), w, "list_news", err)
		return
	}
	out, err := h.service.SearchNews(r.Context(), actorFromContext(r.Context()), input)
	if err != nil {
		writeMappedError(r.Context(), w, "list_news", err)
		return
	}
	writeSuccess(w, http.StatusOK, newsPageResponse(out))
}

func (h *Handler) listNewsByCategory(w http.ResponseWriter, r *http.Request) {
	input, err := newsInputFromQuery(r)
	if err != nil {
		writeMappedError(r.Context(), w, "list_news_by_category", err)
		return
	}
	out, err := h.service.NewsByCategory(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "category"), input)
	if err != nil {
		writeMappedError(r.Context(), w, "list_news_by_category", err)
		return
	}
	writeSuccess(w, http.StatusOK, newsPageResponse(out))
}

func newsInputFromQuery(r *http.Request) (application.NewsInput, error) {
	q := r.URL.Query()
	input := application.NewsInput{
		Query:    q.Get("q"),
		Page:     parseIntDefault(q.Get("page"), 1),
		PageSize: parseIntDefault(q.Get("pageSize"), 0),
		Filter: domain.ArticleFilter{
			Author: strings.TrimSpace(q.Get("author")),
			Search: q.Get("search"),
		},
	}
	if kind := strings.TrimSpace(q.Get("type")); kind != "" && !strings.EqualFold(kind, "all") {
		parsed, err := domain.ParseContentKind(kind)
		if err != nil {
			return application.NewsInput{}, err
		}
		input.Filter.Kind = parsed
	}
	from, err := parseDay(q.Get("from"), false)
	if err != nil {
		return application.NewsInput{}, err
	}
	to, err := parseDay(q.Get("to"), true)
	if err != nil {
		return application.NewsInput{}, err
	}
	input.Filter.From, input.Filter.To = from, to
	return input, nil
}

func newsPageResponse(out application.NewsOutput) contracts.NewsPageResponse {
	return contracts.NewsPageResponse{
		Articles:     out.Articles,
		TotalResults: out.TotalResults,
		Page:         out.Page,
		PageSize:     out.PageSize,
	}
}
