package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/St1cky1/pomodoro-service/internal/usecase"
	"github.com/sirupsen/logrus"
)

type SessionHandler struct {
	sessionService *usecase.SessionService
	log            logrus.FieldLogger
}

func NewSessionHandler(sessionService *usecase.SessionService, log logrus.FieldLogger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		log:            log,
	}
}

func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req entity.StartSessionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	session, err := h.sessionService.StartSession(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrTaskNotFound):
			http.Error(w, fmt.Sprintf("Task with ID %d not found.", *req.TaskID), http.StatusNotFound)
		case errors.Is(err, entity.ErrActiveSessionExists):
			http.Error(w, fmt.Sprintf("There is already an active session for Task ID %d.", *req.TaskID), http.StatusConflict)
		default:
			writeError(w, h.log, r, err)
		}
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/sessions/%d", session.ID))
	writeJSON(w, http.StatusCreated, session)
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionId, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	session, err := h.sessionService.GetSession(r.Context(), sessionId)
	if err != nil {
		if errors.Is(err, entity.ErrSessionNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	sessionId, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return
	}

	var req entity.CompleteSessionRequest
	if err := decodeJSON(r, &req, true); err != nil {
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	session, err := h.sessionService.CompleteSession(r.Context(), sessionId, &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrSessionNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, entity.ErrSessionAlreadyCompleted):
			http.Error(w, fmt.Sprintf("Session with ID %d is already completed.", sessionId), http.StatusConflict)
		default:
			writeError(w, h.log, r, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionService.ListSessions(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, h.log, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}
