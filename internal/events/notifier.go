package events

import (
	"context"
	"time"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
)

// RoutingKeyPrefix префикс routing key событий изменения доступности
const RoutingKeyPrefix = "availability.changed."

// Notifier уведомляет потребителей об изменении доступности слотов на дату.
// Контракт: чтение доступности после получения уведомления отражает
// зафиксированное состояние. Любой транспорт (AMQP, short-poll) подходит.
type Notifier interface {
	AvailabilityChanged(ctx context.Context, date time.Time)
}

// AvailabilityChangedEvent тело события изменения доступности
type AvailabilityChangedEvent struct {
	Date       string    `json:"date"` // YYYY-MM-DD
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher интерфейс публикации JSON-сообщений (pkg/mq.Publisher)
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// AMQPNotifier публикует события в topic exchange RabbitMQ.
// Ошибки публикации только логируются: уведомление не должно
// ронять уже зафиксированную операцию бронирования.
type AMQPNotifier struct {
	publisher Publisher
	logger    Logger
}

// NewAMQPNotifier создает notifier поверх AMQP publisher
func NewAMQPNotifier(publisher Publisher, logger Logger) *AMQPNotifier {
	return &AMQPNotifier{publisher: publisher, logger: logger}
}

// AvailabilityChanged публикует событие с routing key availability.changed.<date>
func (n *AMQPNotifier) AvailabilityChanged(ctx context.Context, date time.Time) {
	dateKey := date.Format(domain.DateFormat)
	event := AvailabilityChangedEvent{
		Date:       dateKey,
		OccurredAt: time.Now().UTC(),
	}

	if err := n.publisher.PublishJSON(ctx, RoutingKeyPrefix+dateKey, event); err != nil {
		n.logger.Warn("events: failed to publish availability change for date=%s: %v", dateKey, err)
	}
}

// Noop notifier для конфигураций без брокера событий
type Noop struct{}

// NewNoop создает notifier, который ничего не делает
func NewNoop() *Noop {
	return &Noop{}
}

// AvailabilityChanged ничего не делает
func (n *Noop) AvailabilityChanged(ctx context.Context, date time.Time) {}
