package http

import (
	"net/http"

	"github.com/arceusss10/sports-news-dashboard/internal/contracts"
)

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req contracts.SessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_session", err)
		return
	}
	session, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeMappedError(r.Context(), w, "create_session", err)
		return
	}
	writeSuccess(w, http.StatusCreated, contracts.SessionResponse{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   session.ExpiresAt,
		Role:        string(session.Role),
	})
}
