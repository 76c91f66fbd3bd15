package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/St1cky1/pomodoro-service/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditPublisher интерфейс для публикации аудита (RabbitMQ или заглушка)
type AuditPublisher interface {
	PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error
}

// auditor собирает сообщения аудита и отправляет их асинхронно
type auditor struct {
	publisher AuditPublisher
	log       logrus.FieldLogger
	// незавершенные отправки, ждем их перед закрытием соединения с брокером
	pending sync.WaitGroup
}

// flush ждет завершения всех начатых отправок или отмены ctx
func (a *auditor) flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *auditor) send(action entity.ActionType, entityType string, entityID int, oldValues, newValues map[string]any, at time.Time) {
	if a.publisher == nil {
		return
	}

	msg := &entity.AuditMessage{
		EventID:    uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		Changes:    diffValues(oldValues, newValues),
		Timestamp:  at.UTC(),
	}

	// Асинхронная отправка, ошибка не должна ломать запрос
	a.pending.Add(1)
	go func() {
		defer a.pending.Done()
		if err := a.publisher.PublishAuditMessage(context.Background(), msg); err != nil {
			a.log.WithError(err).WithFields(logrus.Fields{
				"action":    action,
				"entity":    entityType,
				"entity_id": entityID,
			}).Error("❌ Ошибка отправки аудита")
			return
		}
		a.log.WithFields(logrus.Fields{
			"action":    action,
			"entity":    entityType,
			"entity_id": entityID,
		}).Debug("Аудит отправлен")
	}()
}

// diffValues - только изменившиеся поля в виде {"old": ..., "new": ...}
func diffValues(oldValues, newValues map[string]any) map[string]any {
	if oldValues == nil || newValues == nil {
		return nil
	}
	changes := make(map[string]any)
	for key, newVal := range newValues {
		oldVal := oldValues[key]
		if oldVal != newVal {
			changes[key] = map[string]any{"old": oldVal, "new": newVal}
		}
	}
	return changes
}

func derefString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func derefInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func taskValues(t *entity.Task) map[string]any {
	if t == nil {
		return nil
	}
	return map[string]any{
		"title":           t.Title,
		"note":            derefString(t.Note),
		"estimated_pomos": derefInt(t.EstimatedPomos),
		"is_archived":     t.IsArchived,
	}
}

func sessionValues(s *entity.Session) map[string]any {
	if s == nil {
		return nil
	}
	values := map[string]any{
		"task_id":         s.TaskID,
		"kind":            s.Kind.String(),
		"planned_minutes": s.PlannedMinutes,
		"actual_minutes":  derefInt(s.ActualMinutes),
		"started_at":      s.StartedAt.Format(time.RFC3339),
		"ended_at":        nil,
	}
	if s.EndedAt != nil {
		values["ended_at"] = s.EndedAt.Format(time.RFC3339)
	}
	return values
}

// AuditService - чтение журнала аудита
type AuditService struct {
	auditRepo repository.IAuditRepository
}

func NewAuditService(auditRepo repository.IAuditRepository) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
	}
}

func (s *AuditService) ListAudit(ctx context.Context, entityType string, entityID int) ([]entity.AuditRecord, error) {
	entityType, err := entity.ParseEntityType(entityType)
	if err != nil {
		return nil, err
	}
	return s.auditRepo.ListByEntity(ctx, entityType, entityID)
}
