package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	m := taskFromEntity(task)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return m.toEntity(), nil
}

func (r *TaskRepository) GetByTaskId(ctx context.Context, taskId int) (*entity.Task, error) {
	var m taskModel
	err := r.db.WithContext(ctx).First(&m, taskId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("select task %d: %w", taskId, err)
	}
	return m.toEntity(), nil
}

// Update - полная замена изменяемых полей (Select нужен, чтобы записать nil и false)
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	res := r.db.WithContext(ctx).
		Model(&taskModel{ID: task.ID}).
		Select("title", "note", "estimated_pomos", "is_archived").
		Updates(taskFromEntity(task))
	if res.Error != nil {
		return nil, fmt.Errorf("update task %d: %w", task.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByTaskId(ctx, task.ID)
}

// Delete - сессии задачи удаляются в той же транзакции
func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&sessionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&taskModel{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context, status entity.TaskStatusFilter) ([]entity.Task, error) {
	q := r.db.WithContext(ctx).Order("id ASC")
	switch status {
	case entity.TaskStatusActive:
		q = q.Where("is_archived = ?", false)
	case entity.TaskStatusArchived:
		q = q.Where("is_archived = ?", true)
	}

	var models []taskModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]entity.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, *models[i].toEntity())
	}
	return tasks, nil
}
