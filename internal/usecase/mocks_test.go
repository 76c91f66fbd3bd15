package usecase

import (
	"context"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/St1cky1/pomodoro-service/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// MockTaskRepository - мок для ITaskRepository
type MockTaskRepository struct {
	CreateFunc      func(ctx context.Context, task *entity.Task) (*entity.Task, error)
	GetByTaskIdFunc func(ctx context.Context, taskId int) (*entity.Task, error)
	UpdateFunc      func(ctx context.Context, task *entity.Task) (*entity.Task, error)
	DeleteFunc      func(ctx context.Context, id int) error
	ListFunc        func(ctx context.Context, status entity.TaskStatusFilter) ([]entity.Task, error)
}

var _ repository.ITaskRepository = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil, nil
}

func (m *MockTaskRepository) GetByTaskId(ctx context.Context, taskId int) (*entity.Task, error) {
	if m.GetByTaskIdFunc != nil {
		return m.GetByTaskIdFunc(ctx, taskId)
	}
	return nil, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil, nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTaskRepository) List(ctx context.Context, status entity.TaskStatusFilter) ([]entity.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status)
	}
	return nil, nil
}

// MockSessionRepository - мок для ISessionRepository
type MockSessionRepository struct {
	CreateFunc            func(ctx context.Context, session *entity.Session) (*entity.Session, error)
	GetBySessionIdFunc    func(ctx context.Context, sessionId int) (*entity.Session, error)
	GetActiveByTaskIdFunc func(ctx context.Context, taskId int) (*entity.Session, error)
	CompleteFunc          func(ctx context.Context, id int, endedAt time.Time, actualMinutes *int) (*entity.Session, error)
	ListFunc              func(ctx context.Context, filter entity.SessionFilter) ([]entity.Session, error)
}

var _ repository.ISessionRepository = (*MockSessionRepository)(nil)

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil, nil
}

func (m *MockSessionRepository) GetBySessionId(ctx context.Context, sessionId int) (*entity.Session, error) {
	if m.GetBySessionIdFunc != nil {
		return m.GetBySessionIdFunc(ctx, sessionId)
	}
	return nil, nil
}

func (m *MockSessionRepository) GetActiveByTaskId(ctx context.Context, taskId int) (*entity.Session, error) {
	if m.GetActiveByTaskIdFunc != nil {
		return m.GetActiveByTaskIdFunc(ctx, taskId)
	}
	return nil, nil
}

func (m *MockSessionRepository) Complete(ctx context.Context, id int, endedAt time.Time, actualMinutes *int) (*entity.Session, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, id, endedAt, actualMinutes)
	}
	return nil, nil
}

func (m *MockSessionRepository) List(ctx context.Context, filter entity.SessionFilter) ([]entity.Session, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

// MockAuditRepository - мок для IAuditRepository
type MockAuditRepository struct {
	CreateFunc       func(ctx context.Context, record *entity.AuditRecord) error
	ListByEntityFunc func(ctx context.Context, entityType string, entityId int) ([]entity.AuditRecord, error)
}

var _ repository.IAuditRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) Create(ctx context.Context, record *entity.AuditRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return nil
}

func (m *MockAuditRepository) ListByEntity(ctx context.Context, entityType string, entityId int) ([]entity.AuditRecord, error) {
	if m.ListByEntityFunc != nil {
		return m.ListByEntityFunc(ctx, entityType, entityId)
	}
	return nil, nil
}

// MockRabbitMQPublisher - мок для AuditPublisher, отправленные сообщения попадают в канал
type MockRabbitMQPublisher struct {
	Published chan *entity.AuditMessage
}

var _ AuditPublisher = (*MockRabbitMQPublisher)(nil)

func newMockPublisher() *MockRabbitMQPublisher {
	return &MockRabbitMQPublisher{Published: make(chan *entity.AuditMessage, 16)}
}

func (m *MockRabbitMQPublisher) PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error {
	m.Published <- message
	return nil
}

// waitMessage ждет асинхронную отправку аудита
func (m *MockRabbitMQPublisher) waitMessage() *entity.AuditMessage {
	select {
	case msg := <-m.Published:
		return msg
	case <-time.After(2 * time.Second):
		return nil
	}
}

func nullLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func kindPtr(k entity.SessionKind) *entity.SessionKind { return &k }

func timePtr(t time.Time) *time.Time { return &t }
