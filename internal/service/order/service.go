// Package order реализует агрегат заказа: создание, чтение, обновление
// со слиянием позиций, удаление и постраничный список.
package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/metrics"
)

// DefaultPerPage — размер страницы списка по умолчанию.
const DefaultPerPage = 3

// Service — агрегирующий сервис заказов. Держит ссылки на репозитории,
// полученные при конструировании; ничего не создаёт на каждый вызов.
type Service struct {
	orders    domain.OrderRepository
	items     domain.OrderItemRepository
	customers domain.CustomerRepository
	products  domain.ProductRepository
	events    domain.EventPublisher
	metrics   *metrics.OrderMetrics
	logger    *log.Entry
}

// NewService конструирует сервис с зависимостями.
func NewService(
	orders domain.OrderRepository,
	items domain.OrderItemRepository,
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	events domain.EventPublisher,
	orderMetrics *metrics.OrderMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &Service{
		orders:    orders,
		items:     items,
		customers: customers,
		products:  products,
		events:    events,
		metrics:   orderMetrics,
		logger:    logger,
	}
}

// ItemInput — одна позиция из тела запроса. Price задаётся опционально:
// при отсутствии цена берётся из каталога на момент вставки.
type ItemInput struct {
	ProductID int64
	Quantity  int32
	Price     *decimal.Decimal
}

// CreateInput — параметры создания заказа. Items == nil означает,
// что список позиций не был передан вовсе.
type CreateInput struct {
	CustomerID int64
	Items      []ItemInput
}

// UpdateInput — параметры обновления. Оба поля опциональны; nil-значение
// означает "не менять".
type UpdateInput struct {
	Status *string
	Items  []ItemInput
}

// ItemView — обогащённая позиция для ответа API.
type ItemView struct {
	ProductID    int64
	ProductName  string
	Quantity     int32
	ProductPrice decimal.Decimal
	TotalPrice   decimal.Decimal
}

// View — заказ вместе с позициями и вычисленной суммой.
type View struct {
	Order      domain.Order
	Items      []ItemView
	TotalPrice decimal.Decimal
}

// ListParams — параметры списка заказов.
type ListParams struct {
	PerPage int
	Page    int
	Filter  domain.OrderFilter
}

// Page — страница заказов с метаданными пагинации.
type Page struct {
	Orders      []domain.Order
	CurrentPage int
	PerPage     int
	TotalOrders int64
}

// Create валидирует запрос, проверяет ссылки на клиента и товары и только
// после этого сохраняет заголовок и позиции одной логической операцией.
func (s *Service) Create(in CreateInput) (View, error) {
	if in.CustomerID <= 0 {
		return View{}, domain.ErrCustomerRequired
	}
	if in.Items == nil {
		return View{}, domain.ErrItemsRequired
	}
	if err := validateItems(in.Items); err != nil {
		return View{}, err
	}

	if _, err := s.customers.Get(in.CustomerID); err != nil {
		return View{}, err
	}

	products, err := s.resolveProducts(in.Items)
	if err != nil {
		return View{}, err
	}

	// Валидация завершена; дальше только записи. Повторы одного товара
	// в теле запроса сливаются в одну позицию (как при обновлении):
	// количества складываются, явная цена последней записи побеждает.
	// На одну пару (заказ, товар) хранится ровно одна строка.
	items := make([]domain.OrderItem, 0, len(in.Items))
	index := make(map[int64]int, len(in.Items))
	for _, entry := range in.Items {
		if pos, ok := index[entry.ProductID]; ok {
			items[pos].Quantity += entry.Quantity
			if entry.Price != nil {
				items[pos].Price = *entry.Price
			}
			continue
		}
		price := products[entry.ProductID].Price
		if entry.Price != nil {
			price = *entry.Price
		}
		index[entry.ProductID] = len(items)
		items = append(items, domain.OrderItem{
			ProductID: entry.ProductID,
			Quantity:  entry.Quantity,
			Price:     price,
		})
	}

	order, stored, err := s.orders.CreateWithItems(domain.Order{
		CustomerID: in.CustomerID,
		Status:     domain.OrderStatusPending,
	}, items)
	if err != nil {
		return View{}, fmt.Errorf("create order: %w", err)
	}

	if s.metrics != nil {
		s.metrics.OrderCreated()
	}
	s.publish(domain.EventTypeOrderCreated, order)

	views := make([]ItemView, 0, len(stored))
	for _, item := range stored {
		views = append(views, ItemView{
			ProductID:    item.ProductID,
			ProductName:  products[item.ProductID].Name,
			Quantity:     item.Quantity,
			ProductPrice: item.Price,
			TotalPrice:   item.Total(),
		})
	}

	return View{
		Order:      order,
		Items:      views,
		TotalPrice: domain.ItemsTotal(stored),
	}, nil
}

// Get возвращает заказ с позициями. Название товара подтягивается из
// каталога; сохранённая цена позиции при этом остаётся авторитетной.
// Позиции, чей товар уже удалён из каталога, молча опускаются.
func (s *Service) Get(id int64) (View, error) {
	order, err := s.orders.Get(id)
	if err != nil {
		return View{}, err
	}

	items, err := s.items.ListByOrder(id)
	if err != nil {
		return View{}, fmt.Errorf("load order items: %w", err)
	}

	return s.assembleView(order, items)
}

// Update применяет новый статус и/или сливает переданный список позиций
// с уже сохранёнными. Вся валидация выполняется до первой записи.
func (s *Service) Update(id int64, in UpdateInput) (View, error) {
	if in.Status == nil && in.Items == nil {
		return View{}, domain.ErrNoUpdateData
	}

	if _, err := s.orders.Get(id); err != nil {
		return View{}, err
	}

	var status *domain.OrderStatus
	if in.Status != nil {
		parsed, err := domain.ParseOrderStatus(*in.Status)
		if err != nil {
			return View{}, err
		}
		status = &parsed
	}

	var products map[int64]domain.Product
	if in.Items != nil {
		if err := validateItems(in.Items); err != nil {
			return View{}, err
		}
		var err error
		products, err = s.resolveProducts(in.Items)
		if err != nil {
			return View{}, err
		}
	}

	order, err := s.orders.Update(id, status)
	if err != nil {
		return View{}, fmt.Errorf("update order: %w", err)
	}

	if in.Items != nil {
		if err := s.reconcileItems(order.ID, in.Items, products); err != nil {
			return View{}, err
		}
	}

	current, err := s.items.ListByOrder(id)
	if err != nil {
		return View{}, fmt.Errorf("load order items: %w", err)
	}

	if s.metrics != nil {
		s.metrics.OrderUpdated()
	}
	s.publish(domain.EventTypeOrderUpdated, order)

	return s.assembleView(order, current)
}

// Delete удаляет заказ вместе с позициями; позиции не переживают заказ.
func (s *Service) Delete(id int64) error {
	if _, err := s.orders.Get(id); err != nil {
		return err
	}
	if err := s.orders.Delete(id); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.OrderDeleted()
	}
	s.publish(domain.EventTypeOrderDeleted, domain.Order{ID: id})

	return nil
}

// List возвращает страницу заказов. Запрос страницы за пределами
// диапазона — не ошибка: возвращается пустой список с честным total.
func (s *Service) List(params ListParams) (Page, error) {
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}

	total, err := s.orders.Count(params.Filter)
	if err != nil {
		return Page{}, fmt.Errorf("count orders: %w", err)
	}

	result := Page{
		Orders:      []domain.Order{},
		CurrentPage: page,
		PerPage:     perPage,
		TotalOrders: total,
	}

	totalPages := (total + int64(perPage) - 1) / int64(perPage)
	if total == 0 || int64(page) > totalPages {
		return result, nil
	}

	orders, err := s.orders.List(params.Filter, perPage, page)
	if err != nil {
		return Page{}, fmt.Errorf("list orders: %w", err)
	}
	result.Orders = orders

	return result, nil
}

// assembleView обогащает позиции названиями товаров и считает сумму
// по сохранённым ценам.
func (s *Service) assembleView(order domain.Order, items []domain.OrderItem) (View, error) {
	views := make([]ItemView, 0, len(items))
	visible := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		product, err := s.products.Get(item.ProductID)
		if err != nil {
			if domain.IsNotFound(err) {
				s.logger.WithFields(log.Fields{
					"order_id":   order.ID,
					"product_id": item.ProductID,
				}).Warn("товар позиции отсутствует в каталоге, позиция скрыта из ответа")
				continue
			}
			return View{}, fmt.Errorf("resolve product %d: %w", item.ProductID, err)
		}
		visible = append(visible, item)
		views = append(views, ItemView{
			ProductID:    item.ProductID,
			ProductName:  product.Name,
			Quantity:     item.Quantity,
			ProductPrice: item.Price,
			TotalPrice:   item.Total(),
		})
	}

	return View{
		Order:      order,
		Items:      views,
		TotalPrice: domain.ItemsTotal(visible),
	}, nil
}

// resolveProducts загружает товары всех позиций, накапливая отсутствующие
// идентификаторы, чтобы вернуть их одной ошибкой.
func (s *Service) resolveProducts(items []ItemInput) (map[int64]domain.Product, error) {
	products := make(map[int64]domain.Product, len(items))
	missing := make([]int64, 0)
	seenMissing := make(map[int64]bool)

	for _, entry := range items {
		if _, ok := products[entry.ProductID]; ok {
			continue
		}
		if seenMissing[entry.ProductID] {
			continue
		}
		product, err := s.products.Get(entry.ProductID)
		if err != nil {
			if domain.IsNotFound(err) {
				missing = append(missing, entry.ProductID)
				seenMissing[entry.ProductID] = true
				continue
			}
			return nil, fmt.Errorf("resolve product %d: %w", entry.ProductID, err)
		}
		products[entry.ProductID] = product
	}

	if len(missing) > 0 {
		return nil, domain.NewProductsNotFoundError(missing)
	}
	return products, nil
}

// validateItems проверяет каждую позицию запроса до каких-либо записей.
func validateItems(items []ItemInput) error {
	for _, entry := range items {
		if entry.ProductID <= 0 {
			return domain.ErrItemProductRequired
		}
		if entry.Quantity <= 0 {
			return domain.ErrItemQuantityInvalid
		}
		if entry.Price != nil && !entry.Price.IsPositive() {
			return domain.ErrItemPriceInvalid
		}
	}
	return nil
}

// publish отправляет событие best effort: ошибка логируется, запрос
// не прерывается.
func (s *Service) publish(eventType string, order domain.Order) {
	if s.events == nil {
		return
	}
	event := domain.OrderEvent{
		ID:         uuid.NewString(),
		EventType:  eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		Timestamp:  time.Now().UTC(),
	}
	if err := s.events.PublishOrderEvent(event); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("не удалось опубликовать событие заказа")
	}
}
