package repository

import (
	"context"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
)

// Get-методы возвращают (nil, nil), если запись не найдена

// ITaskRepository - интерфейс для TaskRepository
type ITaskRepository interface {
	Create(ctx context.Context, task *entity.Task) (*entity.Task, error)
	GetByTaskId(ctx context.Context, taskId int) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) (*entity.Task, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, status entity.TaskStatusFilter) ([]entity.Task, error)
}

// ISessionRepository - интерфейс для SessionRepository
type ISessionRepository interface {
	// Create возвращает entity.ErrActiveSessionExists при нарушении уникального индекса активных сессий
	Create(ctx context.Context, session *entity.Session) (*entity.Session, error)
	GetBySessionId(ctx context.Context, sessionId int) (*entity.Session, error)
	GetActiveByTaskId(ctx context.Context, taskId int) (*entity.Session, error)
	// Complete обновляет только незавершенную сессию; (nil, nil) если ended_at уже выставлен
	Complete(ctx context.Context, id int, endedAt time.Time, actualMinutes *int) (*entity.Session, error)
	List(ctx context.Context, filter entity.SessionFilter) ([]entity.Session, error)
}

// IAuditRepository - интерфейс для AuditRepository
type IAuditRepository interface {
	Create(ctx context.Context, record *entity.AuditRecord) error
	ListByEntity(ctx context.Context, entityType string, entityId int) ([]entity.AuditRecord, error)
}
