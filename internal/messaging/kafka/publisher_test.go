package kafka_test

import (
	"testing"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/messaging/kafka"
)

func TestNoopPublisher(t *testing.T) {
	publisher := kafka.NewNoopPublisher()

	if err := publisher.PublishOrderEvent(domain.OrderEvent{
		ID:        "event-1",
		EventType: domain.EventTypeOrderCreated,
		OrderID:   1,
	}); err != nil {
		t.Fatalf("noop publish must not fail: %v", err)
	}
	if err := publisher.Close(); err != nil {
		t.Fatalf("noop close must not fail: %v", err)
	}
}

func TestNewPublisherNoBrokers(t *testing.T) {
	if _, err := kafka.NewPublisher(nil, ""); err == nil {
		t.Fatal("expected error without brokers")
	}
}
