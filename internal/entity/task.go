package entity

import (
	"strings"
	"time"
)

// TaskStatusFilter - фильтр списка задач по признаку архивности
type TaskStatusFilter string

const (
	TaskStatusAll      TaskStatusFilter = ""
	TaskStatusActive   TaskStatusFilter = "active"
	TaskStatusArchived TaskStatusFilter = "archived"
)

// ParseTaskStatusFilter разбирает значение query-параметра status без учета регистра
func ParseTaskStatusFilter(raw string) (TaskStatusFilter, error) {
	switch strings.ToLower(raw) {
	case string(TaskStatusActive):
		return TaskStatusActive, nil
	case string(TaskStatusArchived):
		return TaskStatusArchived, nil
	default:
		return TaskStatusAll, ErrInvalidTaskStatus
	}
}

type Task struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Note           *string   `json:"note"`
	EstimatedPomos *int      `json:"estimatedPomos"`
	IsArchived     bool      `json:"isArchived"`
	CreatedAt      time.Time `json:"createdAt"`
}

// валидация
type CreateTaskRequest struct {
	Title          string  `json:"title"`
	Note           *string `json:"note"`
	EstimatedPomos *int    `json:"estimatedPomos"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs ValidationErrors
	validateTaskFields(&errs, r.Title, r.Note, r.EstimatedPomos)
	return errs.OrNil()
}

// UpdateTaskRequest - полная замена изменяемых полей задачи
type UpdateTaskRequest struct {
	Title          string  `json:"title"`
	Note           *string `json:"note"`
	EstimatedPomos *int    `json:"estimatedPomos"`
	IsArchived     bool    `json:"isArchived"`
}

func (r *UpdateTaskRequest) Validate() error {
	var errs ValidationErrors
	validateTaskFields(&errs, r.Title, r.Note, r.EstimatedPomos)
	return errs.OrNil()
}

// Apply переносит поля запроса в задачу, ID и CreatedAt не меняются
func (r *UpdateTaskRequest) Apply(task *Task) {
	task.Title = r.Title
	task.Note = r.Note
	task.EstimatedPomos = r.EstimatedPomos
	task.IsArchived = r.IsArchived
}

func validateTaskFields(errs *ValidationErrors, title string, note *string, pomos *int) {
	switch {
	case strings.TrimSpace(title) == "":
		errs.Add("Title", "Title is required")
	case len([]rune(title)) > TitleMaxLength:
		errs.Add("Title", "Title must be less than 100 characters")
	}

	if note != nil && len([]rune(*note)) > NoteMaxLength {
		errs.Add("Note", "Note must be less than 1000 characters")
	}

	if pomos != nil && (*pomos < EstimatedPomosMinValue || *pomos > EstimatedPomosMaxValue) {
		errs.Add("EstimatedPomos", "EstimatedPomos must be between 1 and 100")
	}
}
