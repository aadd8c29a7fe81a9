package kafka

import "github.com/vladislavdragonenkov/backoffice/internal/domain"

// noopPublisher используется, когда брокер не настроен: события
// молча отбрасываются.
type noopPublisher struct{}

// NewNoopPublisher возвращает publisher-заглушку.
func NewNoopPublisher() domain.EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishOrderEvent(domain.OrderEvent) error { return nil }

func (noopPublisher) Close() error { return nil }

var _ domain.EventPublisher = noopPublisher{}
