package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// timestampLayout повторяет строковое представление отметок времени,
// по которому работают LIKE-фильтры списков.
const timestampLayout = "2006-01-02 15:04:05"

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий для локальной
// разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[int64]domain.Product),
	}
}

// Create сохраняет товар, присваивая ID и отметки времени.
func (r *productRepositoryInMemory) Create(product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	now := time.Now().UTC()
	product.ID = r.seq
	product.CreatedAt = now
	product.UpdatedAt = now
	r.items[product.ID] = product
	return product, nil
}

// Get возвращает товар или ErrProductNotFound.
func (r *productRepositoryInMemory) Get(id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// Update перезаписывает товар и освежает updated_at.
func (r *productRepositoryInMemory) Update(product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[product.ID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	r.items[product.ID] = product
	return product, nil
}

// Delete удаляет товар или возвращает ErrProductNotFound.
func (r *productRepositoryInMemory) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.items, id)
	return nil
}

// Count возвращает число товаров под фильтром независимо от пагинации.
func (r *productRepositoryInMemory) Count(filter domain.ProductFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, product := range r.items {
		if matchProduct(product, filter) {
			count++
		}
	}
	return count, nil
}

// List возвращает страницу товаров в порядке возрастания ID.
func (r *productRepositoryInMemory) List(filter domain.ProductFilter, perPage, page int) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		if matchProduct(product, filter) {
			matched = append(matched, product)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return pageSlice(matched, perPage, page), nil
}

// matchProduct применяет непустые фильтры конъюнктивно как поиск по подстроке.
func matchProduct(product domain.Product, filter domain.ProductFilter) bool {
	if filter.Name != "" && !strings.Contains(product.Name, filter.Name) {
		return false
	}
	if filter.Price != "" && !strings.Contains(product.Price.String(), filter.Price) {
		return false
	}
	if filter.CreatedAt != "" && !strings.Contains(product.CreatedAt.Format(timestampLayout), filter.CreatedAt) {
		return false
	}
	if filter.UpdatedAt != "" && !strings.Contains(product.UpdatedAt.Format(timestampLayout), filter.UpdatedAt) {
		return false
	}
	return true
}

// pageSlice вырезает страницу page (с единицы) размера perPage.
func pageSlice[T any](all []T, perPage, page int) []T {
	if perPage <= 0 || page <= 0 {
		return []T{}
	}
	start := (page - 1) * perPage
	if start >= len(all) {
		return []T{}
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
