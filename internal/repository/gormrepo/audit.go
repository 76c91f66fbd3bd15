package gormrepo

import (
	"context"
	"fmt"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{
		db: db,
	}
}

// Create - повторная доставка того же event_id игнорируется
func (r *AuditRepository) Create(ctx context.Context, record *entity.AuditRecord) error {
	m := &auditModel{
		EventID:    record.EventID,
		Action:     string(record.Action),
		EntityType: record.EntityType,
		EntityID:   record.EntityID,
		OldValues:  record.OldValues,
		NewValues:  record.NewValues,
		Changes:    record.Changes,
		ChangedAt:  record.ChangedAt.UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(m).Error
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType string, entityId int) ([]entity.AuditRecord, error) {
	var models []auditModel
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityId).
		Order("changed_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}

	records := make([]entity.AuditRecord, 0, len(models))
	for _, m := range models {
		records = append(records, entity.AuditRecord{
			ID:         m.ID,
			EventID:    m.EventID,
			Action:     entity.ActionType(m.Action),
			EntityType: m.EntityType,
			EntityID:   m.EntityID,
			OldValues:  m.OldValues,
			NewValues:  m.NewValues,
			Changes:    m.Changes,
			ChangedAt:  m.ChangedAt.UTC(),
		})
	}
	return records, nil
}
