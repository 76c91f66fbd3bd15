package usecase

import (
	"context"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/St1cky1/pomodoro-service/internal/repository"
	"github.com/sirupsen/logrus"
)

type TaskService struct {
	taskRepo repository.ITaskRepository
	audit    *auditor
	now      func() time.Time
}

func NewTaskService(
	taskRepo repository.ITaskRepository,
	publisher AuditPublisher,
	log logrus.FieldLogger,
) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		audit:    &auditor{publisher: publisher, log: log},
		now:      time.Now,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, req *entity.CreateTaskRequest) (*entity.Task, error) {
	// 1. Валидация до любых изменений
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. Создаем задачу, новая задача всегда не в архиве
	task, err := s.taskRepo.Create(ctx, &entity.Task{
		Title:          req.Title,
		Note:           req.Note,
		EstimatedPomos: req.EstimatedPomos,
		IsArchived:     false,
		CreatedAt:      s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	// 3. Асинхронно отправляем аудит
	s.audit.send(entity.ActionCreate, entity.EntityTypeTask, task.ID, nil, taskValues(task), s.now())

	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID int) (*entity.Task, error) {
	task, err := s.taskRepo.GetByTaskId(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, taskID int, req *entity.UpdateTaskRequest) (*entity.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 1. Получаем текущую задачу
	oldTask, err := s.taskRepo.GetByTaskId(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if oldTask == nil {
		return nil, entity.ErrTaskNotFound
	}

	// 2. Полная замена полей
	next := *oldTask
	req.Apply(&next)

	updatedTask, err := s.taskRepo.Update(ctx, &next)
	if err != nil {
		return nil, err
	}
	if updatedTask == nil {
		// удалили между чтением и записью
		return nil, entity.ErrTaskNotFound
	}

	s.audit.send(entity.ActionUpdate, entity.EntityTypeTask, taskID, taskValues(oldTask), taskValues(updatedTask), s.now())

	return updatedTask, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID int) error {
	task, err := s.taskRepo.GetByTaskId(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return entity.ErrTaskNotFound
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}

	s.audit.send(entity.ActionDelete, entity.EntityTypeTask, taskID, taskValues(task), nil, s.now())

	return nil
}

// ListTasks: status == nil - все задачи, иначе "active" или "archived"
func (s *TaskService) ListTasks(ctx context.Context, status *string) ([]entity.Task, error) {
	filter := entity.TaskStatusAll
	if status != nil {
		parsed, err := entity.ParseTaskStatusFilter(*status)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}
	return s.taskRepo.List(ctx, filter)
}

// FlushAudit ждет отправки всех событий аудита, начатых сервисом
func (s *TaskService) FlushAudit(ctx context.Context) error {
	return s.audit.flush(ctx)
}
