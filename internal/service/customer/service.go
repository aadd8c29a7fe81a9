// Package customer реализует CRUD клиентов поверх доменного репозитория.
package customer

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// Service — сервис клиентов.
type Service struct {
	customers domain.CustomerRepository
	logger    *log.Entry
}

// NewService конструирует сервис с зависимостями.
func NewService(customers domain.CustomerRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "customer-service")
	}
	return &Service{customers: customers, logger: logger}
}

// CreateInput — поля создания клиента.
type CreateInput struct {
	Name string
	CPF  string
}

// UpdateInput — опциональные поля частичного обновления.
type UpdateInput struct {
	Name *string
	CPF  *string
}

// List возвращает всех клиентов.
func (s *Service) List() ([]domain.Customer, error) {
	return s.customers.List()
}

// Get возвращает клиента по идентификатору.
func (s *Service) Get(id int64) (domain.Customer, error) {
	return s.customers.Get(id)
}

// Create валидирует формат и уникальность CPF, затем сохраняет клиента.
func (s *Service) Create(in CreateInput) (domain.Customer, error) {
	if err := domain.ValidateCPF(in.CPF); err != nil {
		return domain.Customer{}, err
	}

	if _, err := s.customers.GetByCPF(in.CPF); err == nil {
		return domain.Customer{}, domain.ErrCPFTaken
	} else if !errors.Is(err, domain.ErrCustomerNotFound) {
		return domain.Customer{}, err
	}

	return s.customers.Create(domain.Customer{Name: in.Name, CPF: in.CPF})
}

// Update применяет частичное обновление; CPF при передаче валидируется заново.
func (s *Service) Update(id int64, in UpdateInput) (domain.Customer, error) {
	customer, err := s.customers.Get(id)
	if err != nil {
		return domain.Customer{}, err
	}

	if in.Name == nil && in.CPF == nil {
		return domain.Customer{}, domain.ErrNoUpdateData
	}

	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.CPF != nil {
		if err := domain.ValidateCPF(*in.CPF); err != nil {
			return domain.Customer{}, err
		}
		customer.CPF = *in.CPF
	}

	return s.customers.Update(customer)
}

// Delete удаляет клиента и возвращает его для сообщения об удалении.
func (s *Service) Delete(id int64) (domain.Customer, error) {
	customer, err := s.customers.Get(id)
	if err != nil {
		return domain.Customer{}, err
	}
	if err := s.customers.Delete(id); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}
