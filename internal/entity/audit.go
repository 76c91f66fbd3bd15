package entity

import (
	"time"
)

type ActionType string

const (
	ActionCreate   ActionType = "Create"
	ActionUpdate   ActionType = "Update"
	ActionDelete   ActionType = "Delete"
	ActionStart    ActionType = "Start"
	ActionComplete ActionType = "Complete"
)

const (
	EntityTypeTask    = "task"
	EntityTypeSession = "session"
)

// ParseEntityType проверяет тип сущности для чтения аудита
func ParseEntityType(raw string) (string, error) {
	switch raw {
	case EntityTypeTask, EntityTypeSession:
		return raw, nil
	default:
		return "", ErrInvalidEntityType
	}
}

// AuditRecord - строка таблицы audit_log
type AuditRecord struct {
	ID         int        `json:"id"`
	EventID    string     `json:"eventId"`
	Action     ActionType `json:"action"`
	EntityType string     `json:"entityType"`
	EntityID   int        `json:"entityId"`
	OldValues  *string    `json:"oldValues"`
	NewValues  *string    `json:"newValues"`
	Changes    *string    `json:"changes"`
	ChangedAt  time.Time  `json:"changedAt"`
}

// AuditMessage - сообщение, которое уходит в RabbitMQ
type AuditMessage struct {
	EventID    string         `json:"event_id"`
	Action     ActionType     `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   int            `json:"entity_id"`
	OldValues  map[string]any `json:"old_values"`
	NewValues  map[string]any `json:"new_values"`
	Changes    map[string]any `json:"changes"`
	Timestamp  time.Time      `json:"timestamp"`
}
