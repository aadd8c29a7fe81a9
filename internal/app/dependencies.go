package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/storage/memory"
)

// Dependencies содержит репозитории и издателя событий приложения.
type Dependencies struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository
	Items     domain.OrderItemRepository
	Events    domain.EventPublisher
	Logger    *log.Entry
}

// NewDependencies создаёт зависимости поверх хранилища в памяти.
// Используется без настроенного Postgres и в тестах.
func NewDependencies(logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	items := memory.NewOrderItemRepository()
	return &Dependencies{
		Customers: memory.NewCustomerRepository(),
		Products:  memory.NewProductRepository(),
		Orders:    memory.NewOrderRepository(items),
		Items:     items,
		Logger:    logger,
	}
}
