package handlers

import (
	"net/http"

	"github.com/St1cky1/pomodoro-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type AuditHandler struct {
	auditService *usecase.AuditService
	log          logrus.FieldLogger
}

func NewAuditHandler(auditService *usecase.AuditService, log logrus.FieldLogger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		log:          log,
	}
}

func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	entityId, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid entity ID", http.StatusBadRequest)
		return
	}

	records, err := h.auditService.ListAudit(r.Context(), chi.URLParam(r, "entityType"), entityId)
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
