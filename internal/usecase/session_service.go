package usecase

import (
	"context"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/St1cky1/pomodoro-service/internal/repository"
	"github.com/sirupsen/logrus"
)

type SessionService struct {
	sessionRepo repository.ISessionRepository
	taskRepo    repository.ITaskRepository
	audit       *auditor
	log         logrus.FieldLogger
	now         func() time.Time
}

// SessionOption настраивает SessionService
type SessionOption func(*SessionService)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionService) {
		s.now = now
	}
}

func NewSessionService(
	sessionRepo repository.ISessionRepository,
	taskRepo repository.ITaskRepository,
	publisher AuditPublisher,
	log logrus.FieldLogger,
	opts ...SessionOption,
) *SessionService {
	s := &SessionService{
		sessionRepo: sessionRepo,
		taskRepo:    taskRepo,
		audit:       &auditor{publisher: publisher, log: log},
		log:         log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionService) StartSession(ctx context.Context, req *entity.StartSessionRequest) (*entity.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 1. Задача должна существовать (архивная тоже подходит)
	task, err := s.taskRepo.GetByTaskId(ctx, *req.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	// 2. Быстрая проверка активной сессии; гонку закрывает уникальный индекс в БД
	active, err := s.sessionRepo.GetActiveByTaskId(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, entity.ErrActiveSessionExists
	}

	session, err := s.sessionRepo.Create(ctx, &entity.Session{
		TaskID:         task.ID,
		Kind:           *req.Kind,
		PlannedMinutes: *req.PlannedMinutes,
		StartedAt:      req.StartedAt.UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"task_id":    session.TaskID,
		"kind":       session.Kind.String(),
	}).Info("Сессия начата")

	s.audit.send(entity.ActionStart, entity.EntityTypeSession, session.ID, nil, sessionValues(session), s.now())

	return session, nil
}

func (s *SessionService) CompleteSession(ctx context.Context, sessionID int, req *entity.CompleteSessionRequest) (*entity.Session, error) {
	if req == nil {
		req = &entity.CompleteSessionRequest{}
	}

	// завершенная сессия - всегда 409, тело запроса не проверяем
	session, err := s.sessionRepo.GetBySessionId(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, entity.ErrSessionNotFound
	}
	if !session.Active() {
		return nil, entity.ErrSessionAlreadyCompleted
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	endedAt := s.now().UTC()
	if req.EndedAt != nil {
		endedAt = req.EndedAt.UTC()
	}
	if endedAt.Before(session.StartedAt) {
		if req.EndedAt != nil {
			var errs entity.ValidationErrors
			errs.Add("EndedAt", "EndedAt must not be earlier than StartedAt")
			return nil, errs
		}
		// часы сервера отстают от переданного клиентом StartedAt
		endedAt = session.StartedAt
	}

	before := *session
	next := *session
	if req.ActualMinutes != nil {
		next.ActualMinutes = req.ActualMinutes
	}
	next.Complete(endedAt)

	completed, err := s.sessionRepo.Complete(ctx, sessionID, *next.EndedAt, next.ActualMinutes)
	if err != nil {
		return nil, err
	}
	if completed == nil {
		// параллельный запрос успел завершить сессию раньше
		return nil, entity.ErrSessionAlreadyCompleted
	}

	s.log.WithFields(logrus.Fields{
		"session_id":     completed.ID,
		"actual_minutes": derefInt(completed.ActualMinutes),
	}).Info("Сессия завершена")

	s.audit.send(entity.ActionComplete, entity.EntityTypeSession, completed.ID, sessionValues(&before), sessionValues(completed), s.now())

	return completed, nil
}

func (s *SessionService) GetSession(ctx context.Context, sessionID int) (*entity.Session, error) {
	session, err := s.sessionRepo.GetBySessionId(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, entity.ErrSessionNotFound
	}
	return session, nil
}

// ListSessions: date - YYYY-MM-DD (UTC), пустая строка - все сессии
func (s *SessionService) ListSessions(ctx context.Context, date string) ([]entity.Session, error) {
	var filter entity.SessionFilter

	if date != "" {
		day, err := entity.ParseDate(date)
		if err != nil {
			return nil, entity.ErrInvalidDate
		}
		start, end := day.Start(), day.End()
		filter.From = &start
		filter.To = &end
	}

	return s.sessionRepo.List(ctx, filter)
}

// FlushAudit ждет отправки всех событий аудита, начатых сервисом
func (s *SessionService) FlushAudit(ctx context.Context) error {
	return s.audit.flush(ctx)
}
