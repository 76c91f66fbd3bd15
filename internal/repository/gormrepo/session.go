package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	m := sessionFromEntity(session)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrActiveSessionExists
		}
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return m.toEntity()
}

func (r *SessionRepository) GetBySessionId(ctx context.Context, sessionId int) (*entity.Session, error) {
	var m sessionModel
	err := r.db.WithContext(ctx).First(&m, sessionId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session %d: %w", sessionId, err)
	}
	return m.toEntity()
}

func (r *SessionRepository) GetActiveByTaskId(ctx context.Context, taskId int) (*entity.Session, error) {
	var m sessionModel
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND ended_at IS NULL", taskId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("select active session for task %d: %w", taskId, err)
	}
	return m.toEntity()
}

// Complete - compare-and-swap по ended_at IS NULL
func (r *SessionRepository) Complete(ctx context.Context, id int, endedAt time.Time, actualMinutes *int) (*entity.Session, error) {
	res := r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("id = ? AND ended_at IS NULL", id).
		Updates(map[string]interface{}{
			"ended_at":       endedAt.UTC(),
			"actual_minutes": actualMinutes,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("complete session %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetBySessionId(ctx, id)
}

func (r *SessionRepository) List(ctx context.Context, filter entity.SessionFilter) ([]entity.Session, error) {
	q := r.db.WithContext(ctx)
	if filter.From != nil {
		q = q.Where("started_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("started_at < ?", filter.To.UTC())
	}

	var models []sessionModel
	if err := q.Order("started_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sessions := make([]entity.Session, 0, len(models))
	for i := range models {
		s, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, nil
}
