package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	"github.com/St1cky1/pomodoro-service/internal/infrastructure/client"
	"github.com/St1cky1/pomodoro-service/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const consumerTag = "pomodoro_audit_worker"

type AuditWorker struct {
	url        string
	queue      string
	auditRepo  repository.IAuditRepository
	log        logrus.FieldLogger
	retryDelay time.Duration
}

func NewAuditWorker(url, queue string, auditRepo repository.IAuditRepository, log logrus.FieldLogger) *AuditWorker {
	return &AuditWorker{
		url:        url,
		queue:      queue,
		auditRepo:  auditRepo,
		log:        log,
		retryDelay: 5 * time.Second,
	}
}

// Start читает очередь до отмены ctx, при обрыве соединения переподключается
func (w *AuditWorker) Start(ctx context.Context) {
	w.log.Info("🔄 Audit Worker: подключение к RabbitMQ...")

	for {
		err := w.runWorker(ctx)
		if ctx.Err() != nil {
			w.log.Info("🛑 Audit Worker остановлен")
			return
		}

		w.log.WithError(err).Warnf("❌ Audit Worker ошибка, переподключение через %s", w.retryDelay)
		select {
		case <-ctx.Done():
			w.log.Info("🛑 Audit Worker остановлен")
			return
		case <-time.After(w.retryDelay):
		}
	}
}

func (w *AuditWorker) runWorker(ctx context.Context) error {
	// Отдельное соединение для consumer'а
	conn, err := amqp.Dial(w.url)
	if err != nil {
		return fmt.Errorf("ошибка подключения: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("ошибка создания канала: %w", err)
	}
	defer channel.Close()

	if _, err := client.DeclareAuditQueue(channel, w.queue); err != nil {
		return fmt.Errorf("ошибка объявления очереди: %w", err)
	}

	msgs, err := channel.Consume(
		w.queue,     // queue
		consumerTag, // consumer tag
		false,       // auto-ack (false - подтверждаем вручную)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("ошибка создания consumer: %w", err)
	}

	w.log.WithField("queue", w.queue).Info("✅ Audit Worker запущен. Ожидаем сообщения...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("канал сообщений закрыт")
			}
			w.processMessage(ctx, msg)
		}
	}
}

func (w *AuditWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	// 1. Парсим сообщение
	var auditMsg entity.AuditMessage
	if err := json.Unmarshal(msg.Body, &auditMsg); err != nil {
		w.log.WithError(err).Error("❌ Ошибка парсинга сообщения")
		msg.Nack(false, false) // Не возвращаем в очередь
		return
	}

	// старые сообщения без event_id - берем message id из свойств
	if auditMsg.EventID == "" {
		auditMsg.EventID = msg.MessageId
	}

	// 2. Конвертируем в AuditRecord
	record, err := ToAuditRecord(&auditMsg)
	if err != nil {
		w.log.WithError(err).Error("❌ Ошибка конвертации")
		msg.Nack(false, false)
		return
	}

	// 3. Сохраняем в БД
	if err := w.auditRepo.Create(ctx, record); err != nil {
		w.log.WithError(err).Error("❌ Ошибка сохранения аудита")
		msg.Nack(false, true) // Возвращаем в очередь для повторной обработки
		return
	}

	// 4. Подтверждаем обработку
	msg.Ack(false)
	w.log.WithFields(logrus.Fields{
		"action":    record.Action,
		"entity":    record.EntityType,
		"entity_id": record.EntityID,
	}).Debug("✅ Аудит сохранен")
}

// ToAuditRecord переводит сообщение из очереди в строку audit_log
func ToAuditRecord(msg *entity.AuditMessage) (*entity.AuditRecord, error) {
	if msg.EventID == "" {
		return nil, fmt.Errorf("event id is empty")
	}
	if _, err := entity.ParseEntityType(msg.EntityType); err != nil {
		return nil, err
	}

	oldValues, err := marshalValues(msg.OldValues)
	if err != nil {
		return nil, err
	}
	newValues, err := marshalValues(msg.NewValues)
	if err != nil {
		return nil, err
	}
	changes, err := marshalValues(msg.Changes)
	if err != nil {
		return nil, err
	}

	changedAt := msg.Timestamp.UTC()
	if msg.Timestamp.IsZero() {
		changedAt = time.Now().UTC()
	}

	return &entity.AuditRecord{
		EventID:    msg.EventID,
		Action:     msg.Action,
		EntityType: msg.EntityType,
		EntityID:   msg.EntityID,
		OldValues:  oldValues,
		NewValues:  newValues,
		Changes:    changes,
		ChangedAt:  changedAt,
	}, nil
}

// marshalValues: map[string]any в JSON строку, nil для пустых значений
func marshalValues(values map[string]any) (*string, error) {
	if values == nil {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}
