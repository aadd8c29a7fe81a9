// Package kafka публикует события заказов во внешний брокер.
package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// DefaultTopic — топик событий заказов по умолчанию.
const DefaultTopic = "backoffice.order.events"

// Publisher публикует события заказов в Kafka. Ключом сообщения служит
// идентификатор заказа, чтобы события одного заказа попадали в одну партицию.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *log.Entry
}

// NewPublisher создаёт синхронный Kafka producer.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if topic == "" {
		topic = DefaultTopic
	}

	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1 // требование идемпотентного producer

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   log.WithField("component", "kafka-publisher"),
	}, nil
}

// PublishOrderEvent сериализует событие и отправляет его в топик.
func (p *Publisher) PublishOrderEvent(event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(strconv.FormatInt(event.OrderID, 10)),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).WithFields(log.Fields{
			"topic":    p.topic,
			"order_id": event.OrderID,
		}).Error("не удалось отправить событие в kafka")
		return fmt.Errorf("send order event: %w", err)
	}

	p.logger.WithFields(log.Fields{
		"topic":     p.topic,
		"order_id":  event.OrderID,
		"partition": partition,
		"offset":    offset,
	}).Debug("событие заказа отправлено в kafka")

	return nil
}

// Close закрывает producer.
func (p *Publisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("close kafka producer: %w", err)
	}
	return nil
}

var _ domain.EventPublisher = (*Publisher)(nil)
