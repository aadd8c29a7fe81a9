package memory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/storage/memory"
)

func TestProductRepository_CreateGetUpdateDelete(t *testing.T) {
	repo := memory.NewProductRepository()

	created, err := repo.Create(domain.Product{Name: "Keyboard", Price: decimal.RequireFromString("35.90")})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected id to be assigned")
	}

	created.Price = decimal.RequireFromString("29.90")
	updated, err := repo.Update(created)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Price.StringFixed(2) != "29.90" {
		t.Fatalf("expected price 29.90, got %s", updated.Price.StringFixed(2))
	}

	if err := repo.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.Get(created.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_FiltersAndPagination(t *testing.T) {
	repo := memory.NewProductRepository()
	seed := []struct {
		name  string
		price string
	}{
		{"Keyboard", "35.90"},
		{"Mouse", "12.00"},
		{"Mousepad", "5.50"},
		{"Monitor", "120.00"},
	}
	for _, p := range seed {
		if _, err := repo.Create(domain.Product{Name: p.name, Price: decimal.RequireFromString(p.price)}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	count, err := repo.Count(domain.ProductFilter{Name: "Mouse"})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected substring match on 2 products, got %d", count)
	}

	// Фильтры конъюнктивны.
	products, err := repo.List(domain.ProductFilter{Name: "Mouse", Price: "12"}, 10, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Mouse" {
		t.Fatalf("expected only Mouse, got %+v", products)
	}

	page, err := repo.List(domain.ProductFilter{}, 3, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("expected 1 product on page 2, got %d", len(page))
	}

	empty, err := repo.List(domain.ProductFilter{}, 3, 5)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty out-of-range page, got %d", len(empty))
	}
}
