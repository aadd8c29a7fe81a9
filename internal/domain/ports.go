package domain

import "time"

// Типы событий жизненного цикла заказа, публикуемых во внешний брокер.
const (
	EventTypeOrderCreated = "order.created"
	EventTypeOrderUpdated = "order.updated"
	EventTypeOrderDeleted = "order.deleted"
)

// OrderEvent — уведомление о произошедшем с заказом изменении.
type OrderEvent struct {
	ID         string    `json:"id"`
	EventType  string    `json:"event_type"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventPublisher публикует события заказов наружу. Публикация выполняется
// по принципу best effort: ошибка логируется и не прерывает запрос.
type EventPublisher interface {
	PublishOrderEvent(event OrderEvent) error
	Close() error
}
