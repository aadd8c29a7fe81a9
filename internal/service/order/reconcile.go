package order

import (
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// reconcileItems сливает переданный список позиций с сохранённым состоянием.
//
// Алгоритм намеренно аддитивный, а не "удалить всё и вставить заново":
//   - для пары (заказ, товар) с существующей строкой количество (и цена,
//     если передана) обновляются на месте — дубликат не вставляется;
//   - пара без строки приводит к вставке новой позиции;
//   - позиции заказа, не упомянутые в запросе, остаются нетронутыми.
//
// Инвариант "не более одной строки на (заказ, товар)" сохраняется именно
// за счёт обновления на месте.
func (s *Service) reconcileItems(orderID int64, entries []ItemInput, products map[int64]domain.Product) error {
	for _, entry := range entries {
		existing, err := s.items.FindByOrderAndProduct(orderID, entry.ProductID)
		switch {
		case err == nil:
			// Цена меняется только при явной передаче: сохранённая
			// цена остаётся исторически достоверной.
			price := existing.Price
			if entry.Price != nil {
				price = *entry.Price
			}
			if err := s.items.UpdateByID(existing.ID, entry.Quantity, price); err != nil {
				return fmt.Errorf("update order item %d: %w", existing.ID, err)
			}
		case errors.Is(err, domain.ErrOrderItemNotFound):
			price := products[entry.ProductID].Price
			if entry.Price != nil {
				price = *entry.Price
			}
			if _, err := s.items.Insert(domain.OrderItem{
				OrderID:   orderID,
				ProductID: entry.ProductID,
				Quantity:  entry.Quantity,
				Price:     price,
			}); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		default:
			return fmt.Errorf("find order item: %w", err)
		}
	}
	return nil
}
