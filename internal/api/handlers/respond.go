package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const (
	msgInvalidJSON       = "Invalid JSON"
	msgInternal          = "Internal server error"
	msgInvalidDate       = "Invalid date format. Use YYYY-MM-DD format."
	msgInvalidSummary    = "Invalid date format. Use YYYY-MM-DD."
	msgInvalidDateRange  = "'to' must be greater than or equal to 'from'."
	msgInvalidStatus     = "Invalid status parameter. Use 'active' or 'archived'."
	msgInvalidEntityType = "Invalid entity type. Use 'task' or 'session'."
)

// ValidationProblem - тело ответа 400 при ошибках валидации полей
type ValidationProblem struct {
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON: allowEmpty - пустое тело допустимо (все поля опциональны)
func decodeJSON(r *http.Request, v any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	return err
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// writeError отвечает на ошибки, общие для всех ресурсов; остальное - 500
func writeError(w http.ResponseWriter, log logrus.FieldLogger, r *http.Request, err error) {
	var verrs entity.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ValidationProblem{
			Title:  "One or more validation errors occurred.",
			Status: http.StatusBadRequest,
			Errors: verrs.ByField(),
		})
	case errors.Is(err, entity.ErrInvalidDate):
		http.Error(w, msgInvalidDate, http.StatusBadRequest)
	case errors.Is(err, entity.ErrInvalidSummaryDate):
		http.Error(w, msgInvalidSummary, http.StatusBadRequest)
	case errors.Is(err, entity.ErrInvalidDateRange):
		http.Error(w, msgInvalidDateRange, http.StatusBadRequest)
	case errors.Is(err, entity.ErrInvalidTaskStatus):
		http.Error(w, msgInvalidStatus, http.StatusBadRequest)
	case errors.Is(err, entity.ErrInvalidEntityType):
		http.Error(w, msgInvalidEntityType, http.StatusBadRequest)
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("❌ Ошибка обработки запроса")
		http.Error(w, msgInternal, http.StatusInternalServerError)
	}
}
