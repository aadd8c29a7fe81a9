package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]domain.Customer
}

// NewCustomerRepository возвращает in-memory репозиторий для локальной
// разработки и тестов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items: make(map[int64]domain.Customer),
	}
}

// Create сохраняет клиента, присваивая ID и отметки времени.
func (r *customerRepositoryInMemory) Create(customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.CPF == customer.CPF {
			return domain.Customer{}, domain.ErrCPFTaken
		}
	}

	r.seq++
	now := time.Now().UTC()
	customer.ID = r.seq
	customer.CreatedAt = now
	customer.UpdatedAt = now
	r.items[customer.ID] = customer
	return customer, nil
}

// Get возвращает клиента или ErrCustomerNotFound.
func (r *customerRepositoryInMemory) Get(id int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// GetByCPF возвращает клиента по CPF или ErrCustomerNotFound.
func (r *customerRepositoryInMemory) GetByCPF(cpf string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, customer := range r.items {
		if customer.CPF == cpf {
			return customer, nil
		}
	}
	return domain.Customer{}, domain.ErrCustomerNotFound
}

// List возвращает всех клиентов, отсортированных по ID.
func (r *customerRepositoryInMemory) List() ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Customer, 0, len(r.items))
	for _, customer := range r.items {
		result = append(result, customer)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update перезаписывает клиента и освежает updated_at.
func (r *customerRepositoryInMemory) Update(customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[customer.ID]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	customer.CreatedAt = current.CreatedAt
	customer.UpdatedAt = time.Now().UTC()
	r.items[customer.ID] = customer
	return customer, nil
}

// Delete удаляет клиента или возвращает ErrCustomerNotFound.
func (r *customerRepositoryInMemory) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
