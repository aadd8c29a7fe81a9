package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

func TestOrderItemTotal(t *testing.T) {
	item := domain.OrderItem{
		Quantity: 2,
		Price:    decimal.RequireFromString("10.00"),
	}

	if got := item.Total().StringFixed(2); got != "20.00" {
		t.Fatalf("expected total 20.00, got %s", got)
	}
}

func TestOrderItemTotalRoundsHalfUp(t *testing.T) {
	// 3 * 3.335 = 10.005 -> 10.01
	item := domain.OrderItem{
		Quantity: 3,
		Price:    decimal.RequireFromString("3.335"),
	}

	if got := item.Total().StringFixed(2); got != "10.01" {
		t.Fatalf("expected total 10.01, got %s", got)
	}
}

func TestItemsTotal(t *testing.T) {
	items := []domain.OrderItem{
		{Quantity: 2, Price: decimal.RequireFromString("10.00")},
		{Quantity: 1, Price: decimal.RequireFromString("0.99")},
	}

	if got := domain.ItemsTotal(items).StringFixed(2); got != "20.99" {
		t.Fatalf("expected total 20.99, got %s", got)
	}
}

func TestItemsTotalEmpty(t *testing.T) {
	if got := domain.ItemsTotal(nil); !got.IsZero() {
		t.Fatalf("expected zero total, got %s", got)
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "Paid", "Canceled"} {
		status, err := domain.ParseOrderStatus(valid)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", valid, err)
		}
		if string(status) != valid {
			t.Fatalf("expected status %q, got %q", valid, status)
		}
	}

	for _, invalid := range []string{"", "pending", "Shipped", "PAID"} {
		if _, err := domain.ParseOrderStatus(invalid); err == nil {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}

func TestOrderFilterIsZero(t *testing.T) {
	if !(domain.OrderFilter{}).IsZero() {
		t.Fatal("empty filter must be zero")
	}
	if (domain.OrderFilter{Status: "Paid"}).IsZero() {
		t.Fatal("filter with status must not be zero")
	}
}
