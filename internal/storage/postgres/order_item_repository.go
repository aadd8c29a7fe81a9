package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

type orderItemRepository struct {
	db *sql.DB
}

// NewOrderItemRepository создаёт PostgreSQL-реализацию OrderItemRepository.
func NewOrderItemRepository(store *Store) domain.OrderItemRepository {
	return &orderItemRepository{db: store.DB()}
}

func (r *orderItemRepository) Insert(item domain.OrderItem) (domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("insert order item: %w", err)
	}

	return item, nil
}

func (r *orderItemRepository) ListByOrder(orderID int64) ([]domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

func (r *orderItemRepository) FindByOrderAndProduct(orderID, productID int64) (domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var item domain.OrderItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		  AND product_id = $2
	`, orderID, productID).Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrderItem{}, domain.ErrOrderItemNotFound
		}
		return domain.OrderItem{}, fmt.Errorf("select order item: %w", err)
	}

	return item, nil
}

func (r *orderItemRepository) UpdateByID(id int64, quantity int32, price decimal.Decimal) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE order_items
		SET quantity = $1,
		    price = $2
		WHERE id = $3
	`, quantity, price, id)
	if err != nil {
		return fmt.Errorf("update order item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderItemNotFound
	}
	return nil
}

func (r *orderItemRepository) DeleteByOrder(orderID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}

var _ domain.OrderItemRepository = (*orderItemRepository)(nil)
