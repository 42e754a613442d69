package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/handler/http/views"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
)

type SummaryHandler struct {
	log     *zap.Logger
	service ports.SummaryService
}

func NewSummaryHandler(log *zap.Logger, service ports.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		log:     log,
		service: service,
	}
}

// Page renders the HTML summary.
func (h *SummaryHandler) Page(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summarize(r.Context())
	if err != nil {
		h.log.Error("failed to summarize votes", zap.Error(err))
		http.Error(w, "Failed to load votes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Summary(summary).Render(r.Context(), w); err != nil {
		h.log.Error("failed to render summary", zap.Error(err))
	}
}

func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summarize(r.Context())
	if err != nil {
		h.log.Error("failed to summarize votes", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: "Failed to load votes"})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
