package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Маркеры таксономии ошибок. HTTP-слой сопоставляет их со статусами
// 400/404 через errors.Is; всё остальное трактуется как ошибка сервера.
var (
	// ErrValidation — некорректные или отсутствующие поля запроса.
	ErrValidation = errors.New("validation error")
	// ErrNotFound — запрошенная сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
)

var (
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = fmt.Errorf("%w: customer_id is required", ErrValidation)
	// Ошибка отсутствующего списка позиций заказа.
	ErrItemsRequired = fmt.Errorf("%w: items list is required", ErrValidation)
	// Ошибка позиции без идентификатора товара.
	ErrItemProductRequired = fmt.Errorf("%w: item product_id is required", ErrValidation)
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQuantityInvalid = fmt.Errorf("%w: item quantity must be greater than zero", ErrValidation)
	// Ошибка, если явно переданная цена позиции не положительная.
	ErrItemPriceInvalid = fmt.Errorf("%w: item price must be greater than zero", ErrValidation)
	// Ошибка недопустимого статуса заказа.
	ErrStatusInvalid = fmt.Errorf("%w: invalid or missing status value", ErrValidation)
	// Ошибка некорректного формата CPF.
	ErrCPFInvalid = fmt.Errorf("%w: invalid CPF format, the correct format is XXX.XXX.XXX-XX", ErrValidation)
	// Ошибка повторного использования CPF.
	ErrCPFTaken = fmt.Errorf("%w: CPF already exists in the system", ErrValidation)
	// Ошибка не положительной цены товара.
	ErrProductPriceInvalid = fmt.Errorf("%w: the price must be higher than 0", ErrValidation)
	// Ошибка пустого тела запроса на обновление.
	ErrNoUpdateData = fmt.Errorf("%w: no data provided for update", ErrValidation)

	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = fmt.Errorf("%w: order not found", ErrNotFound)
	// ErrOrderItemNotFound возвращается при отсутствии позиции (order, product).
	ErrOrderItemNotFound = fmt.Errorf("%w: order item not found", ErrNotFound)
	// ErrCustomerNotFound возвращается, если клиент не найден.
	ErrCustomerNotFound = fmt.Errorf("%w: customer not found", ErrNotFound)
	// ErrProductNotFound возвращается, если товар не найден.
	ErrProductNotFound = fmt.Errorf("%w: product not found", ErrNotFound)
)

// NewProductsNotFoundError собирает все неразрешённые идентификаторы товаров
// в одну ошибку, чтобы вызывающая сторона получила полную картину за один запрос.
func NewProductsNotFoundError(ids []int64) error {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return fmt.Errorf("%w: the following products were not found: %s", ErrNotFound, strings.Join(parts, ", "))
}

// IsNotFound проверяет, относится ли ошибка к классу "не найдено".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation проверяет, относится ли ошибка к классу ошибок валидации.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
