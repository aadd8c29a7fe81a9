package domain

import "github.com/shopspring/decimal"

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// Create сохраняет нового клиента и возвращает его с присвоенным ID.
	Create(customer Customer) (Customer, error)
	// Get возвращает клиента или ErrCustomerNotFound, если его нет.
	Get(id int64) (Customer, error)
	// GetByCPF возвращает клиента по CPF или ErrCustomerNotFound.
	GetByCPF(cpf string) (Customer, error)
	// List возвращает всех клиентов, отсортированных по ID.
	List() ([]Customer, error)
	// Update перезаписывает данные клиента и освежает updated_at.
	Update(customer Customer) (Customer, error)
	// Delete удаляет клиента или возвращает ErrCustomerNotFound.
	Delete(id int64) error
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	Create(product Product) (Product, error)
	Get(id int64) (Product, error)
	Update(product Product) (Product, error)
	Delete(id int64) error
	// Count возвращает число товаров, удовлетворяющих фильтру,
	// независимо от пагинации.
	Count(filter ProductFilter) (int64, error)
	// List возвращает страницу товаров; page нумеруется с единицы.
	List(filter ProductFilter, perPage, page int) ([]Product, error)
}

// OrderRepository описывает требования к хранилищу заголовков заказов.
type OrderRepository interface {
	// CreateWithItems сохраняет заголовок и позиции как одну логическую
	// операцию: при сбое на любом шаге ни одна строка не остаётся в базе.
	CreateWithItems(order Order, items []OrderItem) (Order, []OrderItem, error)
	// Get возвращает заголовок заказа или ErrOrderNotFound.
	Get(id int64) (Order, error)
	// Update применяет новый статус (если status != nil) и в любом случае
	// освежает updated_at. Возвращает обновлённый заголовок.
	Update(id int64, status *OrderStatus) (Order, error)
	// Delete удаляет позиции заказа и затем сам заголовок; позиции не
	// должны переживать заказ.
	Delete(id int64) error
	// Count возвращает число заказов под фильтром независимо от пагинации.
	Count(filter OrderFilter) (int64, error)
	// List возвращает страницу заказов; page нумеруется с единицы.
	List(filter OrderFilter, perPage, page int) ([]Order, error)
}

// OrderItemRepository описывает требования к хранилищу позиций заказа.
type OrderItemRepository interface {
	// Insert добавляет позицию и возвращает её с присвоенным ID.
	Insert(item OrderItem) (OrderItem, error)
	// ListByOrder возвращает позиции заказа в порядке добавления.
	ListByOrder(orderID int64) ([]OrderItem, error)
	// FindByOrderAndProduct ищет позицию по паре (заказ, товар);
	// возвращает ErrOrderItemNotFound, если её нет.
	FindByOrderAndProduct(orderID, productID int64) (OrderItem, error)
	// UpdateByID заменяет количество и цену существующей позиции.
	UpdateByID(id int64, quantity int32, price decimal.Decimal) error
	// DeleteByOrder удаляет все позиции заказа; отсутствие позиций
	// ошибкой не считается.
	DeleteByOrder(orderID int64) error
}
