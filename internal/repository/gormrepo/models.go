package gormrepo

import (
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
)

type taskModel struct {
	ID             int     `gorm:"primaryKey"`
	Title          string  `gorm:"size:100;not null"`
	Note           *string `gorm:"size:1000"`
	EstimatedPomos *int
	IsArchived     bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (taskModel) TableName() string { return "task" }

func taskFromEntity(t *entity.Task) *taskModel {
	return &taskModel{
		ID:             t.ID,
		Title:          t.Title,
		Note:           t.Note,
		EstimatedPomos: t.EstimatedPomos,
		IsArchived:     t.IsArchived,
		CreatedAt:      t.CreatedAt.UTC(),
	}
}

func (m *taskModel) toEntity() *entity.Task {
	return &entity.Task{
		ID:             m.ID,
		Title:          m.Title,
		Note:           m.Note,
		EstimatedPomos: m.EstimatedPomos,
		IsArchived:     m.IsArchived,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

type sessionModel struct {
	ID             int    `gorm:"primaryKey"`
	TaskID         int    `gorm:"not null;index"`
	Kind           string `gorm:"size:16;not null"`
	PlannedMinutes int    `gorm:"not null"`
	ActualMinutes  *int
	StartedAt      time.Time `gorm:"not null;index"`
	EndedAt        *time.Time
}

func (sessionModel) TableName() string { return "session" }

func sessionFromEntity(s *entity.Session) *sessionModel {
	m := &sessionModel{
		ID:             s.ID,
		TaskID:         s.TaskID,
		Kind:           s.Kind.String(),
		PlannedMinutes: s.PlannedMinutes,
		ActualMinutes:  s.ActualMinutes,
		StartedAt:      s.StartedAt.UTC(),
	}
	if s.EndedAt != nil {
		ended := s.EndedAt.UTC()
		m.EndedAt = &ended
	}
	return m
}

func (m *sessionModel) toEntity() (*entity.Session, error) {
	kind, err := entity.ParseSessionKind(m.Kind)
	if err != nil {
		return nil, err
	}
	s := &entity.Session{
		ID:             m.ID,
		TaskID:         m.TaskID,
		Kind:           kind,
		PlannedMinutes: m.PlannedMinutes,
		ActualMinutes:  m.ActualMinutes,
		StartedAt:      m.StartedAt.UTC(),
	}
	if m.EndedAt != nil {
		ended := m.EndedAt.UTC()
		s.EndedAt = &ended
	}
	return s, nil
}

type auditModel struct {
	ID         int    `gorm:"primaryKey"`
	EventID    string `gorm:"size:36;not null;uniqueIndex"`
	Action     string `gorm:"size:16;not null"`
	EntityType string `gorm:"size:16;not null;index:audit_log_entity_idx"`
	EntityID   int    `gorm:"not null;index:audit_log_entity_idx"`
	OldValues  *string
	NewValues  *string
	Changes    *string
	ChangedAt  time.Time `gorm:"not null"`
}

func (auditModel) TableName() string { return "audit_log" }
