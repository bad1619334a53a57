package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arceusss10/sports-news-dashboard/internal/contracts"
	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

func (h *Handler) exportTotal(w http.ResponseWriter, r *http.Request) {
	format, err := domain.ParseExportFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeMappedError(r.Context(), w, "export_total", err)
		return
	}
	var req contracts.TotalRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "export_total", err)
		return
	}
	artifact, err := h.service.ExportTotal(r.Context(), actorFromContext(r.Context()), format, countsFromRequest(req))
	if err != nil {
		writeMappedError(r.Context(), w, "export_total", err)
		return
	}
	h.obs.Exported(format, domain.ReportVariantSingleTotal)
	writeArtifact(w, artifact)
}

func (h *Handler) exportPerAuthor(w http.ResponseWriter, r *http.Request) {
	format, err := domain.ParseExportFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeMappedError(r.Context(), w, "export_per_author", err)
		return
	}
	var req contracts.AuthorsRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "export_per_author", err)
		return
	}
	items, err := contentItemsFromRequest(req)
	if err != nil {
		writeMappedError(r.Context(), w, "export_per_author", err)
		return
	}
	artifact, err := h.service.ExportPerAuthor(r.Context(), actorFromContext(r.Context()), format, items)
	if err != nil {
		writeMappedError(r.Context(), w, "export_per_author", err)
		return
	}
	h.obs.Exported(format, domain.ReportVariantPerAuthor)
	writeArtifact(w, artifact)
}
