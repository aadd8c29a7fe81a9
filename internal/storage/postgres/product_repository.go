package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, product.Name, product.Price).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

func (r *productRepository) Get(id int64) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var p domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}

	return p, nil
}

func (r *productRepository) Update(product domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $1,
		    price = $2,
		    updated_at = NOW()
		WHERE id = $3
		RETURNING created_at, updated_at
	`, product.Name, product.Price, product.ID).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

func (r *productRepository) Delete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Count(filter domain.ProductFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	where, args := productWhere(filter)
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (r *productRepository) List(filter domain.ProductFilter, perPage, page int) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	where, args := productWhere(filter)
	offset := (page - 1) * perPage
	args = append(args, perPage, offset)
	limitPos := len(args) - 1
	query := fmt.Sprintf(`
		SELECT id, name, price, created_at, updated_at
		FROM products
		%s
		ORDER BY id ASC
		LIMIT $%d OFFSET $%d
	`, where, limitPos, limitPos+1)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// productWhere собирает конъюнктивные LIKE-условия по непустым фильтрам.
func productWhere(filter domain.ProductFilter) (string, []any) {
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

	add("name LIKE $%d", filter.Name)
	add("price::text LIKE $%d", filter.Price)
	add("to_char(created_at, 'YYYY-MM-DD HH24:MI:SS') LIKE $%d", filter.CreatedAt)
	add("to_char(updated_at, 'YYYY-MM-DD HH24:MI:SS') LIKE $%d", filter.UpdatedAt)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var _ domain.ProductRepository = (*productRepository)(nil)
