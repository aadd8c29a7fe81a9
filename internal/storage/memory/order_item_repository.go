package memory

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// orderItemRepositoryInMemory — простая in-memory реализация OrderItemRepository.
type orderItemRepositoryInMemory struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]domain.OrderItem
}

// NewOrderItemRepository возвращает in-memory репозиторий позиций заказа.
func NewOrderItemRepository() domain.OrderItemRepository {
	return &orderItemRepositoryInMemory{
		items: make(map[int64]domain.OrderItem),
	}
}

// Insert добавляет позицию, присваивая ID.
func (r *orderItemRepositoryInMemory) Insert(item domain.OrderItem) (domain.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	item.ID = r.seq
	r.items[item.ID] = item
	return item, nil
}

// ListByOrder возвращает позиции заказа в порядке добавления.
func (r *orderItemRepositoryInMemory) ListByOrder(orderID int64) ([]domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.OrderItem, 0)
	for _, item := range r.items {
		if item.OrderID == orderID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// FindByOrderAndProduct ищет позицию по паре (заказ, товар).
func (r *orderItemRepositoryInMemory) FindByOrderAndProduct(orderID, productID int64) (domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.OrderID == orderID && item.ProductID == productID {
			return item, nil
		}
	}
	return domain.OrderItem{}, domain.ErrOrderItemNotFound
}

// UpdateByID заменяет количество и цену позиции.
func (r *orderItemRepositoryInMemory) UpdateByID(id int64, quantity int32, price decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return domain.ErrOrderItemNotFound
	}
	item.Quantity = quantity
	item.Price = price
	r.items[id] = item
	return nil
}

// DeleteByOrder удаляет все позиции заказа; отсутствие позиций — не ошибка.
func (r *orderItemRepositoryInMemory) DeleteByOrder(orderID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.OrderID == orderID {
			delete(r.items, id)
		}
	}
	return nil
}

var _ domain.OrderItemRepository = (*orderItemRepositoryInMemory)(nil)
