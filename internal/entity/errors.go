package entity

import (
	"errors"
	"strings"
)

var (
	ErrTaskNotFound            = errors.New("task not found")
	ErrSessionNotFound         = errors.New("session not found")
	ErrActiveSessionExists     = errors.New("active session already exists for task")
	ErrSessionAlreadyCompleted = errors.New("session already completed")
	ErrInvalidDate             = errors.New("invalid date format")
	ErrInvalidSummaryDate      = errors.New("invalid summary date format")
	ErrInvalidDateRange        = errors.New("'to' is earlier than 'from'")
	ErrInvalidTaskStatus       = errors.New("invalid task status filter")
	ErrInvalidEntityType       = errors.New("invalid audit entity type")
)

// FieldError - ошибка валидации одного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors собирает ошибки валидации в порядке проверки полей
type ValidationErrors []FieldError

func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// OrNil возвращает nil, если ошибок нет (чтобы не получить typed nil в error)
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ByField группирует сообщения по полю
func (e ValidationErrors) ByField() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}
