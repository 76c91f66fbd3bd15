package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, title, note, estimated_pomos, is_archived, created_at`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var task entity.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Note,
		&task.EstimatedPomos,
		&task.IsArchived,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.CreatedAt = task.CreatedAt.UTC()
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	query := `
	INSERT INTO task (title, note, estimated_pomos, is_archived, created_at)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + taskColumns

	created, err := scanTask(r.db.QueryRow(ctx, query,
		task.Title,
		task.Note,
		task.EstimatedPomos,
		task.IsArchived,
		task.CreatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return created, nil
}

func (r *TaskRepository) GetByTaskId(ctx context.Context, taskId int) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, query, taskId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select task %d: %w", taskId, err)
	}
	return task, nil
}

// Update - полная замена изменяемых полей, created_at не трогаем
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	query := `
	UPDATE task
	SET title = $1, note = $2, estimated_pomos = $3, is_archived = $4
	WHERE id = $5
	RETURNING ` + taskColumns

	updated, err := scanTask(r.db.QueryRow(ctx, query,
		task.Title,
		task.Note,
		task.EstimatedPomos,
		task.IsArchived,
		task.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update task %d: %w", task.ID, err)
	}
	return updated, nil
}

// Delete - удаление задачи, сессии удаляются каскадно (ON DELETE CASCADE)
func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM task WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// List - список задач с фильтрацией по архивности
func (r *TaskRepository) List(ctx context.Context, status entity.TaskStatusFilter) ([]entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task`
	args := []interface{}{}

	switch status {
	case entity.TaskStatusActive:
		query += " WHERE is_archived = $1"
		args = append(args, false)
	case entity.TaskStatusArchived:
		query += " WHERE is_archived = $1"
		args = append(args, true)
	}

	query += " ORDER BY id ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}
