package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа в back office.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, оплата ещё не подтверждена.
	OrderStatusPending OrderStatus = "Pending"
	// OrderStatusPaid — оплата по заказу подтверждена.
	OrderStatusPaid OrderStatus = "Paid"
	// OrderStatusCanceled — заказ отменён.
	OrderStatusCanceled OrderStatus = "Canceled"
)

// ParseOrderStatus проверяет строку против допустимых статусов.
// Переходы между статусами намеренно не ограничены: любой статус можно
// сменить на любой другой, включая Canceled -> Paid.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCanceled:
		return OrderStatus(s), nil
	default:
		return "", ErrStatusInvalid
	}
}

// OrderItem представляет одну товарную позицию заказа. Позиции принадлежат
// заказу и не имеют собственного жизненного цикла: удаляются вместе с ним.
type OrderItem struct {
	ID      int64
	OrderID int64
	// ProductID — ссылка на товар; на пару (OrderID, ProductID)
	// существует не более одной строки.
	ProductID int64
	Quantity  int32
	// Price — цена за единицу, зафиксированная в момент добавления позиции.
	// При чтениях не пересчитывается из каталога, чтобы сохранять
	// историческую цену.
	Price decimal.Decimal
}

// Total возвращает стоимость позиции (quantity * price), округлённую
// до двух знаков.
func (i OrderItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt32(i.Quantity)).Round(2)
}

// Order — агрегирующая сущность; заголовок заказа без позиций.
type Order struct {
	ID         int64
	CustomerID int64
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ItemsTotal суммирует стоимость позиций с округлением до двух знаков.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total.Round(2)
}

// OrderFilter задаёт фильтры списка заказов. Непустые поля применяются
// конъюнктивно как поиск по подстроке, повторяя поведение LIKE-фильтров.
type OrderFilter struct {
	CustomerID string
	Status     string
	CreatedAt  string
	UpdatedAt  string
}

// IsZero сообщает, что ни один фильтр не задан.
func (f OrderFilter) IsZero() bool {
	return f == OrderFilter{}
}
