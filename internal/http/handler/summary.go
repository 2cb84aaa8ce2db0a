package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaekwang-park/todo-summary/internal/middleware"
	"github.com/jaekwang-park/todo-summary/internal/service"
)

type SummaryHandler struct {
	svc *service.SummaryService
}

func NewSummaryHandler(svc *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

func (h *SummaryHandler) SummarizeOne(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.SummarizeOne(r.Context(), middleware.GetIdentity(r), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (h *SummaryHandler) SummarizeAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.SummarizeAll(r.Context(), middleware.GetIdentity(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
