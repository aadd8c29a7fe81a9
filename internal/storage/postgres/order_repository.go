package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// CreateWithItems вставляет заголовок и позиции в одной транзакции:
// сбой на любом шаге не оставляет в базе частичного заказа.
func (r *orderRepository) CreateWithItems(order domain.Order, items []domain.OrderItem) (domain.Order, []domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, nil, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, status)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, order.CustomerID, string(order.Status)).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return domain.Order{}, nil, fmt.Errorf("insert order: %w", err)
	}

	inserted := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		item.OrderID = order.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID)
		if err != nil {
			return domain.Order{}, nil, fmt.Errorf("insert order item: %w", err)
		}
		inserted = append(inserted, item)
	}

	if err = tx.Commit(); err != nil {
		return domain.Order{}, nil, fmt.Errorf("commit create order: %w", err)
	}

	return order, inserted, nil
}

func (r *orderRepository) Get(id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		order  domain.Order
		status string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.CustomerID, &status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	order.Status = domain.OrderStatus(status)

	return order, nil
}

// Update применяет новый статус (если задан) и всегда освежает updated_at.
func (r *orderRepository) Update(id int64, status *domain.OrderStatus) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		order     domain.Order
		newStatus string
	)
	err := r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET status = COALESCE($1::text, status),
		    updated_at = NOW()
		WHERE id = $2
		RETURNING id, customer_id, status, created_at, updated_at
	`, statusArg(status), id).Scan(&order.ID, &order.CustomerID, &newStatus, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}
	order.Status = domain.OrderStatus(newStatus)

	return order, nil
}

// Delete удаляет позиции и затем заголовок в одной транзакции.
func (r *orderRepository) Delete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		err = domain.ErrOrderNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete order: %w", err)
	}

	return nil
}

func (r *orderRepository) Count(filter domain.OrderFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	where, args := orderWhere(filter)
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (r *orderRepository) List(filter domain.OrderFilter, perPage, page int) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	where, args := orderWhere(filter)
	offset := (page - 1) * perPage
	args = append(args, perPage, offset)
	limitPos := len(args) - 1
	query := fmt.Sprintf(`
		SELECT id, customer_id, status, created_at, updated_at
		FROM orders
		%s
		ORDER BY id ASC
		LIMIT $%d OFFSET $%d
	`, where, limitPos, limitPos+1)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var (
			order  domain.Order
			status string
		)
		if err := rows.Scan(&order.ID, &order.CustomerID, &status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		order.Status = domain.OrderStatus(status)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

// orderWhere собирает конъюнктивные LIKE-условия по непустым фильтрам.
func orderWhere(filter domain.OrderFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(expr, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	add("customer_id::text LIKE $%d", filter.CustomerID)
	add("status LIKE $%d", filter.Status)
	add("to_char(created_at, 'YYYY-MM-DD HH24:MI:SS') LIKE $%d", filter.CreatedAt)
	add("to_char(updated_at, 'YYYY-MM-DD HH24:MI:SS') LIKE $%d", filter.UpdatedAt)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// statusArg преобразует опциональный статус в NULL-совместимый аргумент.
func statusArg(status *domain.OrderStatus) any {
	if status == nil {
		return nil
	}
	return string(*status)
}

var _ domain.OrderRepository = (*orderRepository)(nil)
