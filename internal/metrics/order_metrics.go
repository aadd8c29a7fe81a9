// Package metrics содержит бизнес-метрики back office.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит счётчики операций над заказами.
type OrderMetrics struct {
	ordersCreated prometheus.Counter
	ordersUpdated prometheus.Counter
	ordersDeleted prometheus.Counter
}

// NewOrderMetrics создаёт и регистрирует метрики заказов в default registerer.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "backoffice_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersUpdated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "backoffice_orders_updated_total",
			Help: "Total number of orders updated",
		}),
		ordersDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "backoffice_orders_deleted_total",
			Help: "Total number of orders deleted",
		}),
	}
}

// OrderCreated инкрементирует счётчик созданных заказов.
func (m *OrderMetrics) OrderCreated() { m.ordersCreated.Inc() }

// OrderUpdated инкрементирует счётчик обновлённых заказов.
func (m *OrderMetrics) OrderUpdated() { m.ordersUpdated.Inc() }

// OrderDeleted инкрементирует счётчик удалённых заказов.
func (m *OrderMetrics) OrderDeleted() { m.ordersDeleted.Inc() }

// registerCounter регистрирует счётчик, переиспользуя уже зарегистрированный
// коллектор при повторной инициализации.
func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}
