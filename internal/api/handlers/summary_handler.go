package handlers

import (
	"net/http"

	"github.com/St1cky1/pomodoro-service/internal/usecase"
	"github.com/sirupsen/logrus"
)

type SummaryHandler struct {
	summaryService *usecase.SummaryService
	log            logrus.FieldLogger
}

func NewSummaryHandler(summaryService *usecase.SummaryService, log logrus.FieldLogger) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
		log:            log,
	}
}

// GetSummary - GET /api/summary?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	summary, err := h.summaryService.GetSummary(r.Context(), query.Get("from"), query.Get("to"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
