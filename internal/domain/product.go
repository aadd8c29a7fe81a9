package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product — товар каталога.
type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParsePrice разбирает цену из строки, принимая и точку, и запятую
// в качестве десятичного разделителя ("20.00" и "20,00").
// Возвращает ErrProductPriceInvalid, если значение не число или <= 0.
func ParsePrice(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(raw, ",", ".")
	price, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, ErrProductPriceInvalid
	}
	if !price.IsPositive() {
		return decimal.Decimal{}, ErrProductPriceInvalid
	}
	return price, nil
}

// ProductFilter задаёт LIKE-фильтры списка товаров; применяются конъюнктивно.
type ProductFilter struct {
	Name      string
	Price     string
	CreatedAt string
	UpdatedAt string
}
