package memory

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
// Каскадные операции делегируются репозиторию позиций, чтобы позиции
// не переживали заказ.
type orderRepositoryInMemory struct {
	mu        sync.RWMutex
	seq       int64
	items     map[int64]domain.Order
	lineItems domain.OrderItemRepository
}

// NewOrderRepository возвращает in-memory репозиторий заказов,
// связанный с репозиторием позиций.
func NewOrderRepository(lineItems domain.OrderItemRepository) domain.OrderRepository {
	return &orderRepositoryInMemory{
		items:     make(map[int64]domain.Order),
		lineItems: lineItems,
	}
}

// CreateWithItems сохраняет заголовок и позиции как одну логическую операцию.
func (r *orderRepositoryInMemory) CreateWithItems(order domain.Order, items []domain.OrderItem) (domain.Order, []domain.OrderItem, error) {
	r.mu.Lock()
	r.seq++
	now := time.Now().UTC()
	order.ID = r.seq
	order.CreatedAt = now
	order.UpdatedAt = now
	r.items[order.ID] = order
	r.mu.Unlock()

	inserted := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		item.OrderID = order.ID
		stored, err := r.lineItems.Insert(item)
		if err != nil {
			// Откатываем частично сохранённое состояние.
			_ = r.lineItems.DeleteByOrder(order.ID)
			r.mu.Lock()
			delete(r.items, order.ID)
			r.mu.Unlock()
			return domain.Order{}, nil, err
		}
		inserted = append(inserted, stored)
	}

	return order, inserted, nil
}

// Get возвращает заголовок заказа или ErrOrderNotFound.
func (r *orderRepositoryInMemory) Get(id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

// Update применяет новый статус (если задан) и освежает updated_at.
func (r *orderRepositoryInMemory) Update(id int64, status *domain.OrderStatus) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if status != nil {
		order.Status = *status
	}
	order.UpdatedAt = time.Now().UTC()
	r.items[id] = order
	return order, nil
}

// Delete удаляет позиции заказа и затем сам заголовок.
func (r *orderRepositoryInMemory) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderNotFound
	}
	if err := r.lineItems.DeleteByOrder(id); err != nil {
		return err
	}
	delete(r.items, id)
	return nil
}

// Count возвращает число заказов под фильтром независимо от пагинации.
func (r *orderRepositoryInMemory) Count(filter domain.OrderFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, order := range r.items {
		if matchOrder(order, filter) {
			count++
		}
	}
	return count, nil
}

// List возвращает страницу заказов в порядке возрастания ID.
func (r *orderRepositoryInMemory) List(filter domain.OrderFilter, perPage, page int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		if matchOrder(order, filter) {
			matched = append(matched, order)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return pageSlice(matched, perPage, page), nil
}

// matchOrder применяет непустые фильтры конъюнктивно как поиск по подстроке.
func matchOrder(order domain.Order, filter domain.OrderFilter) bool {
	if filter.CustomerID != "" && !strings.Contains(strconv.FormatInt(order.CustomerID, 10), filter.CustomerID) {
		return false
	}
	if filter.Status != "" && !strings.Contains(string(order.Status), filter.Status) {
		return false
	}
	if filter.CreatedAt != "" && !strings.Contains(order.CreatedAt.Format(timestampLayout), filter.CreatedAt) {
		return false
	}
	if filter.UpdatedAt != "" && !strings.Contains(order.UpdatedAt.Format(timestampLayout), filter.UpdatedAt) {
		return false
	}
	return true
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
