package memory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
	"github.com/vladislavdragonenkov/backoffice/internal/storage/memory"
)

func TestOrderItemRepository_InsertListByOrder(t *testing.T) {
	repo := memory.NewOrderItemRepository()

	for _, productID := range []int64{5, 6} {
		if _, err := repo.Insert(domain.OrderItem{
			OrderID:   1,
			ProductID: productID,
			Quantity:  1,
			Price:     decimal.RequireFromString("2.00"),
		}); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	if _, err := repo.Insert(domain.OrderItem{OrderID: 2, ProductID: 5, Quantity: 1, Price: decimal.RequireFromString("2.00")}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	items, err := repo.ListByOrder(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items for order 1, got %d", len(items))
	}
	if items[0].ID > items[1].ID {
		t.Fatal("expected items ordered by id")
	}
}

func TestOrderItemRepository_FindByOrderAndProduct(t *testing.T) {
	repo := memory.NewOrderItemRepository()
	inserted, err := repo.Insert(domain.OrderItem{OrderID: 1, ProductID: 5, Quantity: 2, Price: decimal.RequireFromString("7.50")})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	found, err := repo.FindByOrderAndProduct(1, 5)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.ID != inserted.ID {
		t.Fatalf("expected item %d, got %d", inserted.ID, found.ID)
	}

	if _, err := repo.FindByOrderAndProduct(1, 99); !errors.Is(err, domain.ErrOrderItemNotFound) {
		t.Fatalf("expected ErrOrderItemNotFound, got %v", err)
	}
}

func TestOrderItemRepository_UpdateByID(t *testing.T) {
	repo := memory.NewOrderItemRepository()
	inserted, err := repo.Insert(domain.OrderItem{OrderID: 1, ProductID: 5, Quantity: 1, Price: decimal.RequireFromString("1.00")})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := repo.UpdateByID(inserted.ID, 4, decimal.RequireFromString("2.25")); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	found, err := repo.FindByOrderAndProduct(1, 5)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Quantity != 4 || found.Price.StringFixed(2) != "2.25" {
		t.Fatalf("expected quantity 4 price 2.25, got %d %s", found.Quantity, found.Price.StringFixed(2))
	}

	if err := repo.UpdateByID(999, 1, decimal.Zero); !errors.Is(err, domain.ErrOrderItemNotFound) {
		t.Fatalf("expected ErrOrderItemNotFound, got %v", err)
	}
}

func TestOrderItemRepository_DeleteByOrder(t *testing.T) {
	repo := memory.NewOrderItemRepository()
	if _, err := repo.Insert(domain.OrderItem{OrderID: 1, ProductID: 5, Quantity: 1, Price: decimal.RequireFromString("1.00")}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := repo.DeleteByOrder(1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	items, err := repo.ListByOrder(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items left, got %d", len(items))
	}

	// Повторное удаление — не ошибка.
	if err := repo.DeleteByOrder(1); err != nil {
		t.Fatalf("repeated delete must not fail: %v", err)
	}
}
