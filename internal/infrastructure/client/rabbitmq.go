package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/St1cky1/pomodoro-service/internal/entity"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	log     logrus.FieldLogger
}

// DeclareAuditQueue объявляет durable-очередь аудита (идемпотентно)
func DeclareAuditQueue(channel *amqp.Channel, name string) (amqp.Queue, error) {
	return channel.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}

func NewRabbitMQClient(url, queueName string, log logrus.FieldLogger) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Объявляем очередь для аудита
	queue, err := DeclareAuditQueue(channel, queueName)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: channel,
		queue:   queue,
		log:     log,
	}, nil
}

// QueueName возвращает имя очереди
func (c *RabbitMQClient) QueueName() string {
	return c.queue.Name
}

// AuditPublishing - JSON-тело и свойства сообщения аудита
func AuditPublishing(message *entity.AuditMessage) (amqp.Publishing, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    message.EventID,
		Timestamp:    message.Timestamp,
		Type:         string(message.Action),
		Body:         body,
		DeliveryMode: amqp.Persistent, // Сообщения сохраняются на диск
	}, nil
}

func (c *RabbitMQClient) PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error {
	publishing, err := AuditPublishing(message)
	if err != nil {
		return err
	}

	err = c.channel.PublishWithContext(
		ctx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		publishing,
	)
	if err != nil {
		return err
	}

	c.log.WithFields(logrus.Fields{
		"action":    message.Action,
		"entity":    message.EntityType,
		"entity_id": message.EntityID,
		"event_id":  message.EventID,
	}).Debug("Отправлено сообщение в RabbitMQ")
	return nil
}

func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// LogPublisher - публикатор без брокера: только пишет событие в лог
type LogPublisher struct {
	log logrus.FieldLogger
}

func NewLogPublisher(log logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error {
	p.log.WithFields(logrus.Fields{
		"action":    message.Action,
		"entity":    message.EntityType,
		"entity_id": message.EntityID,
		"event_id":  message.EventID,
		"changes":   message.Changes,
	}).Info("Аудит")
	return nil
}
