package repository

import (
	"context"
	"fmt"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{
		db: db,
	}
}

// Create - повторная доставка того же event_id игнорируется
func (r *AuditRepository) Create(ctx context.Context, record *entity.AuditRecord) error {
	query := `
	INSERT INTO audit_log (event_id, action, entity_type, entity_id, old_values, new_values, changes, changed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (event_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		record.EventID,
		string(record.Action),
		record.EntityType,
		record.EntityID,
		record.OldValues,
		record.NewValues,
		record.Changes,
		record.ChangedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType string, entityId int) ([]entity.AuditRecord, error) {
	query := `
	SELECT id, event_id, action, entity_type, entity_id, old_values, new_values, changes, changed_at
	FROM audit_log
	WHERE entity_type = $1 AND entity_id = $2
	ORDER BY changed_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, entityType, entityId)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	records := make([]entity.AuditRecord, 0)
	for rows.Next() {
		var rec entity.AuditRecord
		var action string
		if err := rows.Scan(
			&rec.ID,
			&rec.EventID,
			&action,
			&rec.EntityType,
			&rec.EntityID,
			&rec.OldValues,
			&rec.NewValues,
			&rec.Changes,
			&rec.ChangedAt,
		); err != nil {
			return nil, err
		}
		rec.Action = entity.ActionType(action)
		rec.ChangedAt = rec.ChangedAt.UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}
