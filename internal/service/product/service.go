// Package product реализует CRUD товаров поверх доменного репозитория.
package product

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// DefaultPerPage — размер страницы списка товаров по умолчанию.
const DefaultPerPage = 3

// Service — сервис каталога товаров.
type Service struct {
	products domain.ProductRepository
	logger   *log.Entry
}

// NewService конструирует сервис с зависимостями.
func NewService(products domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "product-service")
	}
	return &Service{products: products, logger: logger}
}

// CreateInput — поля создания товара. Цена принимается строкой, чтобы
// поддержать и точку, и запятую в качестве разделителя.
type CreateInput struct {
	Name  string
	Price string
}

// UpdateInput — опциональные поля частичного обновления.
type UpdateInput struct {
	Name  *string
	Price *string
}

// ListParams — параметры постраничного списка.
type ListParams struct {
	PerPage int
	Page    int
	Filter  domain.ProductFilter
}

// Page — страница товаров с метаданными пагинации.
type Page struct {
	Products      []domain.Product
	CurrentPage   int
	PerPage       int
	TotalProducts int64
}

// Get возвращает товар по идентификатору.
func (s *Service) Get(id int64) (domain.Product, error) {
	return s.products.Get(id)
}

// Create нормализует и валидирует цену, затем сохраняет товар.
func (s *Service) Create(in CreateInput) (domain.Product, error) {
	price, err := domain.ParsePrice(in.Price)
	if err != nil {
		return domain.Product{}, err
	}
	return s.products.Create(domain.Product{Name: in.Name, Price: price})
}

// Update применяет частичное обновление; цена при передаче валидируется заново.
func (s *Service) Update(id int64, in UpdateInput) (domain.Product, error) {
	product, err := s.products.Get(id)
	if err != nil {
		return domain.Product{}, err
	}

	if in.Name == nil && in.Price == nil {
		return domain.Product{}, domain.ErrNoUpdateData
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Price != nil {
		price, err := domain.ParsePrice(*in.Price)
		if err != nil {
			return domain.Product{}, err
		}
		product.Price = price
	}

	return s.products.Update(product)
}

// Delete удаляет товар.
func (s *Service) Delete(id int64) error {
	if _, err := s.products.Get(id); err != nil {
		return err
	}
	return s.products.Delete(id)
}

// List возвращает страницу товаров; страница за пределами диапазона —
// не ошибка, а пустой список с честным total.
func (s *Service) List(params ListParams) (Page, error) {
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}

	total, err := s.products.Count(params.Filter)
	if err != nil {
		return Page{}, err
	}

	result := Page{
		Products:      []domain.Product{},
		CurrentPage:   page,
		PerPage:       perPage,
		TotalProducts: total,
	}

	totalPages := (total + int64(perPage) - 1) / int64(perPage)
	if total == 0 || int64(page) > totalPages {
		return result, nil
	}

	products, err := s.products.List(params.Filter, perPage, page)
	if err != nil {
		return Page{}, err
	}
	result.Products = products

	return result, nil
}
